package docker

import (
	"strings"
	"testing"
)

func TestContainerNamesDoNotCollide(t *testing.T) {
	a := nextContainerName("conformance")
	b := nextContainerName("conformance")
	if a == b {
		t.Fatalf("consecutive container names collide: %s", a)
	}
	for _, name := range []string{a, b} {
		if !strings.HasPrefix(name, "sdmx_conformance_conformance_") {
			t.Errorf("container name %s is missing the namespace prefix", name)
		}
	}
}
