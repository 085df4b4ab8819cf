package opensearch

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/mstgnz/goepay/infra/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCluster records requests and answers like a minimal OpenSearch node.
type fakeCluster struct {
	mu       sync.Mutex
	requests []string
	bodies   map[string][]string
	existing map[string]bool
	status   int
	search   string
}

func newFakeCluster(t *testing.T) (*fakeCluster, *httptest.Server) {
	t.Helper()
	fc := &fakeCluster{
		bodies:   make(map[string][]string),
		existing: make(map[string]bool),
		status:   http.StatusCreated,
	}
	server := httptest.NewServer(http.HandlerFunc(fc.serve))
	t.Cleanup(server.Close)
	return fc, server
}

func (fc *fakeCluster) serve(w http.ResponseWriter, r *http.Request) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.requests = append(fc.requests, r.Method+" "+r.URL.Path)
	body, _ := io.ReadAll(r.Body)
	fc.bodies[r.URL.Path] = append(fc.bodies[r.URL.Path], string(body))

	w.Header().Set("Content-Type", "application/json")
	index := strings.Split(strings.TrimPrefix(r.URL.Path, "/"), "/")[0]

	switch {
	case r.Method == http.MethodHead:
		if fc.existing[index] {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	case r.Method == http.MethodPut:
		fc.existing[index] = true
		_, _ = w.Write([]byte(`{"acknowledged":true}`))
	case strings.HasSuffix(r.URL.Path, "/_search"):
		_, _ = w.Write([]byte(fc.search))
	default:
		w.WriteHeader(fc.status)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	}
}

func (fc *fakeCluster) seen(request string) bool {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	for _, r := range fc.requests {
		if r == request {
			return true
		}
	}
	return false
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.AppConfig
	}{
		{
			name: "valid_config_no_auth",
			cfg:  &config.AppConfig{OpenSearchURL: "http://localhost:9200"},
		},
		{
			name: "valid_config_with_auth",
			cfg: &config.AppConfig{
				OpenSearchURL:  "http://localhost:9200",
				OpenSearchUser: "admin",
				OpenSearchPass: "admin",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, client.GetClient())
			assert.Equal(t, tt.cfg, client.config)
			assert.False(t, client.IsEnabled())
		})
	}
}

func TestNewClient_CreatesMissingIndices(t *testing.T) {
	fc, server := newFakeCluster(t)
	fc.existing[SystemLogIndex] = true

	client, err := NewClient(&config.AppConfig{OpenSearchURL: server.URL, EnableLogging: true})
	require.NoError(t, err)
	assert.True(t, client.IsEnabled())

	assert.True(t, fc.seen("HEAD /"+SystemLogIndex))
	assert.True(t, fc.seen("HEAD /"+NotificationIndex))
	assert.False(t, fc.seen("PUT /"+SystemLogIndex))
	assert.True(t, fc.seen("PUT /"+NotificationIndex))

	fc.mu.Lock()
	mapping := fc.bodies["/"+NotificationIndex]
	fc.mu.Unlock()
	require.NotEmpty(t, mapping)
	assert.Contains(t, mapping[len(mapping)-1], `"acknowledgement"`)
}

func TestNewClient_LoggingDisabledSkipsSetup(t *testing.T) {
	fc, server := newFakeCluster(t)

	_, err := NewClient(&config.AppConfig{OpenSearchURL: server.URL, EnableLogging: false})
	require.NoError(t, err)

	fc.mu.Lock()
	defer fc.mu.Unlock()
	assert.Empty(t, fc.requests)
}
