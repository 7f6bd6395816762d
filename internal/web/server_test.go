package web

import (
	"io"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
)

func TestServerServesConfiguredRoutes(t *testing.T) {
	srv := NewServer(t, func(r *mux.Router) {
		r.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("pong"))
		}).Methods("GET")
	})
	defer srv.Close()

	res, err := http.Get(srv.URL + "/ping")
	if err != nil {
		t.Fatalf("GET /ping: %s", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("GET /ping returned status %d, want 200", res.StatusCode)
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("reading body: %s", err)
	}
	if string(body) != "pong" {
		t.Errorf("GET /ping body = %q, want %q", string(body), "pong")
	}
}
