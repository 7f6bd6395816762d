// Package docker deploys a containerized SDMX data service for the suite to
// run against, when a Docker image is configured instead of a live host.
package docker

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/docker/go-connections/nat"
	"github.com/sirupsen/logrus"

	"github.com/sdmx-contrib/conformance/config"
)

// servicePort is the port data service images must listen on inside the container.
const servicePort nat.Port = "8080/tcp"

type Deployer struct {
	Namespace string
	Docker    *client.Client
	config    *config.Conformance
	log       *logrus.Entry
}

// containerCounter spans deployer instances, so deployers built per test still
// hand out distinct container names within the process.
var containerCounter atomic.Int64

// nextContainerName returns a container name unique across deployers of this
// process and across test packages running in parallel.
func nextContainerName(namespace string) string {
	return fmt.Sprintf("sdmx_conformance_%s_%d_%d", namespace, os.Getpid(), containerCounter.Add(1))
}

func NewDeployer(namespace string, cfg *config.Conformance) (*Deployer, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, err
	}
	return &Deployer{
		Namespace: namespace,
		Docker:    cli,
		config:    cfg,
		log:       logrus.WithField("component", "deployer"),
	}, nil
}

// Deploy starts a fresh container from the given image and waits until the
// service inside responds to HTTP, up to the configured spawn timeout.
func (d *Deployer) Deploy(ctx context.Context, imageURI string) (*ServiceDeployment, error) {
	containerName := nextContainerName(d.Namespace)
	created, err := d.Docker.ContainerCreate(ctx, &container.Config{
		Image:        imageURI,
		ExposedPorts: nat.PortSet{servicePort: struct{}{}},
		Labels: map[string]string{
			"sdmx_conformance": d.Namespace,
		},
	}, &container.HostConfig{
		PortBindings: nat.PortMap{
			servicePort: []nat.PortBinding{{HostIP: "127.0.0.1", HostPort: "0"}},
		},
	}, nil, nil, containerName)
	if err != nil {
		return nil, fmt.Errorf("Deploy: failed to create container from %s: %w", imageURI, err)
	}
	dep := &ServiceDeployment{
		Image:       imageURI,
		ContainerID: created.ID,
		deployer:    d,
	}
	if err = d.Docker.ContainerStart(ctx, created.ID, container.StartOptions{}); err != nil {
		d.Destroy(dep, false)
		return nil, fmt.Errorf("Deploy: failed to start container %s: %w", created.ID, err)
	}
	inspect, err := d.Docker.ContainerInspect(ctx, created.ID)
	if err != nil {
		d.Destroy(dep, false)
		return nil, fmt.Errorf("Deploy: failed to inspect container %s: %w", created.ID, err)
	}
	bindings := inspect.NetworkSettings.Ports[servicePort]
	if len(bindings) == 0 {
		d.Destroy(dep, true)
		return nil, fmt.Errorf("Deploy: container %s has no host binding for %s", created.ID, servicePort)
	}
	dep.BaseURL = fmt.Sprintf("http://127.0.0.1:%s", bindings[0].HostPort)
	if err = waitUntilResponsive(ctx, dep.BaseURL, d.config.SpawnServiceTimeout); err != nil {
		d.printLogs(dep)
		d.Destroy(dep, false)
		return nil, fmt.Errorf("Deploy: %w", err)
	}
	d.log.Debugf("%s -> %s (%s)", imageURI, dep.BaseURL, dep.ContainerID)
	return dep, nil
}

// Destroy a deployment. This will kill the running container.
func (d *Deployer) Destroy(dep *ServiceDeployment, printServerLogs bool) {
	if printServerLogs {
		d.printLogs(dep)
	}
	err := d.Docker.ContainerKill(context.Background(), dep.ContainerID, "KILL")
	if err != nil {
		d.log.Warnf("Destroy: failed to kill container %s: %s", dep.ContainerID, err)
	}
	err = d.Docker.ContainerRemove(context.Background(), dep.ContainerID, container.RemoveOptions{
		Force: true,
	})
	if err != nil {
		d.log.Warnf("Destroy: failed to remove container %s: %s", dep.ContainerID, err)
	}
}

func (d *Deployer) printLogs(dep *ServiceDeployment) {
	reader, err := d.Docker.ContainerLogs(context.Background(), dep.ContainerID, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
	})
	if err != nil {
		d.log.Warnf("printLogs: failed to read logs of %s: %s", dep.ContainerID, err)
		return
	}
	defer reader.Close()
	fmt.Fprintf(os.Stderr, "============== %s : START LOGS ==============\n", dep.ContainerID)
	stdcopy.StdCopy(os.Stderr, os.Stderr, reader)
	fmt.Fprintf(os.Stderr, "============== %s : END LOGS ==============\n", dep.ContainerID)
}

// waitUntilResponsive polls the data resource until the service answers with
// any HTTP status, or the timeout passes.
func waitUntilResponsive(ctx context.Context, baseURL string, timeout time.Duration) error {
	probeURL := baseURL + "/service/data/EXR/D.USD.EUR.SP00.A"
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		req, err := http.NewRequestWithContext(ctx, "GET", probeURL, nil)
		if err != nil {
			return err
		}
		res, err := http.DefaultClient.Do(req)
		if err == nil {
			res.Body.Close()
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(250 * time.Millisecond):
		}
	}
	return fmt.Errorf("service at %s still unresponsive after %s", baseURL, timeout)
}
