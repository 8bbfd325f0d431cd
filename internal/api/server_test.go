package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/wonpil/sentrev/pkg/config"
	"github.com/wonpil/sentrev/pkg/logger"
)

func TestServerTimeouts(t *testing.T) {
	cfg := &config.Config{Env: "test", Port: "8080", LogLevel: "error", LogFormat: "json"}
	log := logger.New(cfg)

	srv := New(cfg, log, http.NewServeMux())

	if srv.httpServer.Addr != ":8080" {
		t.Errorf("Addr = %q, want %q", srv.httpServer.Addr, ":8080")
	}
	if srv.httpServer.ReadHeaderTimeout != 5*time.Second {
		t.Errorf("ReadHeaderTimeout = %v, want 5s", srv.httpServer.ReadHeaderTimeout)
	}
	if srv.httpServer.ReadTimeout != 10*time.Second {
		t.Errorf("ReadTimeout = %v, want 10s", srv.httpServer.ReadTimeout)
	}
	if srv.httpServer.WriteTimeout != 10*time.Second {
		t.Errorf("WriteTimeout = %v, want 10s", srv.httpServer.WriteTimeout)
	}
	if srv.httpServer.MaxHeaderBytes != 1<<16 {
		t.Errorf("MaxHeaderBytes = %d, want %d", srv.httpServer.MaxHeaderBytes, 1<<16)
	}
}
