package config

import (
	"os"
	"strconv"
	"time"
)

// The config for running the conformance suite. This is configured using environment variables.
type Conformance struct {
	// Name: SDMX_CONFORMANCE_HOST
	// Description: The host of a live or staging data service to run the suite against, e.g.
	// `data-api.ecb.europa.eu`. Fixture URL paths are rebased onto this host, with the fixture
	// protocol preserved. When unset, the suite deploys its own target: a container if
	// SDMX_CONFORMANCE_BASE_IMAGE is set, else an in-process mock service.
	TargetHost string
	// Name: SDMX_CONFORMANCE_BASE_IMAGE
	// Description: The name of a Docker image serving the SDMX data REST resources on port 8080.
	// When set (and no live host is configured), each test deploys a fresh container from this
	// image and runs against it.
	BaseImageURI string
	// Name: SDMX_CONFORMANCE_DEBUG
	// Default: 0
	// Description: If 1, prints out more verbose logging such as HTTP request/response bodies.
	DebugLoggingEnabled bool
	// Name: SDMX_CONFORMANCE_FIXTURES
	// Description: Path to the fixture JSON document. Defaults to the testdata file shipped with
	// the tests package.
	FixturePath string
	// Name: SDMX_CONFORMANCE_SPAWN_TIMEOUT_SECS
	// Default: 30
	// Description: The number of seconds to wait for a deployed service container to respond
	// before failing the deployment.
	SpawnServiceTimeout time.Duration
	// Name: SDMX_CONFORMANCE_SNAPSHOT_FILE
	// Description: If set, the latency tests write their measurements to this JSON file so they
	// can be graphed with cmd/latencygraph.
	SnapshotFile string

	// The namespace for all containers created by this run of the suite.
	PackageNamespace string
}

// NewConfigFromEnvVars reads the suite configuration from the environment.
// The package namespace must be unique among test packages which may run in
// parallel, to avoid containers stepping on each other.
func NewConfigFromEnvVars(pkgNamespace string) *Conformance {
	cfg := &Conformance{}
	cfg.TargetHost = os.Getenv("SDMX_CONFORMANCE_HOST")
	cfg.BaseImageURI = os.Getenv("SDMX_CONFORMANCE_BASE_IMAGE")
	cfg.DebugLoggingEnabled = os.Getenv("SDMX_CONFORMANCE_DEBUG") == "1"
	cfg.FixturePath = os.Getenv("SDMX_CONFORMANCE_FIXTURES")
	cfg.SnapshotFile = os.Getenv("SDMX_CONFORMANCE_SNAPSHOT_FILE")
	cfg.SpawnServiceTimeout = time.Duration(parseEnvWithDefault("SDMX_CONFORMANCE_SPAWN_TIMEOUT_SECS", 30)) * time.Second
	cfg.PackageNamespace = pkgNamespace
	if cfg.PackageNamespace == "" {
		panic("package namespace must be set")
	}
	return cfg
}

func parseEnvWithDefault(key string, def int) int {
	s := os.Getenv(key)
	if s != "" {
		i, err := strconv.Atoi(s)
		if err != nil {
			// Don't bother trying to report it
			return def
		}
		return i
	}
	return def
}
