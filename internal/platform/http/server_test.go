package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		addr        string
		origins     string
		wantAddr    string
		wantOrigins []string
	}{
		{name: "defaults", wantAddr: ":8080"},
		{name: "wildcard means all", origins: "*", wantAddr: ":8080"},
		{
			name:        "explicit values",
			addr:        "127.0.0.1:9000",
			origins:     "http://localhost:3000, https://app.example.com,",
			wantAddr:    "127.0.0.1:9000",
			wantOrigins: []string{"http://localhost:3000", "https://app.example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvKeyAddr, tt.addr)
			t.Setenv(EnvKeyCORSOrigins, tt.origins)

			cfg := LoadConfig()
			assert.Equal(t, tt.wantAddr, cfg.Addr)
			assert.Equal(t, tt.wantOrigins, cfg.AllowOrigins)
		})
	}
}

func TestNewServer(t *testing.T) {
	t.Parallel()

	h := http.NewServeMux()
	srv := NewServer(Config{Addr: ":1234"}, h)

	assert.Equal(t, ":1234", srv.Addr)
	assert.Equal(t, h, srv.Handler)
	assert.NotZero(t, srv.ReadHeaderTimeout)
	assert.NotZero(t, srv.WriteTimeout)
}
