// Package web runs throwaway HTTP servers on a random local port, used to host
// the in-process mock data service.
package web

import (
	"fmt"
	"net"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
)

type Server struct {
	URL      string
	Port     int
	server   *http.Server
	listener net.Listener
}

func NewServer(t *testing.T, configFunc func(router *mux.Router)) *Server {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Could not create listener for web server: %s", err)
	}

	port := listener.Addr().(*net.TCPAddr).Port

	r := mux.NewRouter()

	configFunc(r)

	server := &http.Server{Handler: r}

	go server.Serve(listener)

	return &Server{
		URL:      fmt.Sprintf("http://127.0.0.1:%d", port),
		Port:     port,
		server:   server,
		listener: listener,
	}
}

func (s *Server) Close() {
	s.server.Close()
	s.listener.Close()
}
