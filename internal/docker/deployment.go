package docker

import (
	"testing"

	"github.com/sdmx-contrib/conformance/client"
)

// ServiceDeployment represents a running data service in a container.
type ServiceDeployment struct {
	Image       string // e.g sdmx-data-service:latest
	BaseURL     string // e.g http://127.0.0.1:38646
	ContainerID string // e.g 10de45efba

	deployer *Deployer
}

// Destroy the deployment, killing the container. If the test failed, the
// container logs are printed first to help debugging.
func (dep *ServiceDeployment) Destroy(t *testing.T) {
	t.Helper()
	dep.deployer.Destroy(dep, t.Failed())
}

// Client returns a DataAPI client targeting the deployed container.
func (dep *ServiceDeployment) Client(t *testing.T) *client.DataAPI {
	t.Helper()
	return &client.DataAPI{
		BaseURL: dep.BaseURL,
		Client:  client.NewLoggedClient(t, dep.Image, nil),
	}
}
