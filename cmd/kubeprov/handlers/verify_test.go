package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kubeconfigFor(server string) []byte {
	return []byte(fmt.Sprintf(`apiVersion: v1
kind: Config
clusters:
- name: kubernetes
  cluster:
    server: %s
contexts:
- name: admin
  context:
    cluster: kubernetes
    user: admin
current-context: admin
users:
- name: admin
  user:
    token: abc
`, server))
}

func TestHealthCheck_UnresponsiveServerTimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/version" {
			http.NotFound(w, r)
			return
		}
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	orig := probeTimeout
	probeTimeout = 200 * time.Millisecond
	t.Cleanup(func() { probeTimeout = orig })

	start := time.Now()
	health, err := probeHealth(context.Background(), kubeconfigFor(srv.URL), 0)

	require.Error(t, err)
	assert.Nil(t, health)
	assert.Less(t, time.Since(start), 5*time.Second)
}
