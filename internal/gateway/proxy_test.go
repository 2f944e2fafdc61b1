// File: internal/gateway/proxy_test.go
package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lafoken/withfy-backend-open/internal/config"
)

// closeNotifyRecorder adds the CloseNotify method httputil.ReverseProxy
// requires when the request context is not cancellable; the plain
// httptest.ResponseRecorder lacks it and gin panics without it.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func newCloseNotifyRecorder() *closeNotifyRecorder {
	return &closeNotifyRecorder{httptest.NewRecorder(), make(chan bool, 1)}
}

func (r *closeNotifyRecorder) CloseNotify() <-chan bool { return r.closed }

func TestProxy_RoutesByLongestPrefix(t *testing.T) {
	identity := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("identity:" + r.URL.Path))
	}))
	defer identity.Close()
	user := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("user:" + r.URL.Path))
	}))
	defer user.Close()

	p, err := NewProxy([]config.GatewayRoute{
		{Prefix: "/api/v1/identity/", Upstream: identity.URL},
		{Prefix: "/api/v1/", Upstream: user.URL},
	}, zap.NewNop())
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.NoRoute(p.Handler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/identity/auth/me", nil)
	w := newCloseNotifyRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "identity:/api/v1/identity/auth/me", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/v1/song/list", nil)
	w = newCloseNotifyRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "user:/api/v1/song/list", w.Body.String())
}

func TestProxy_NoRouteIs404(t *testing.T) {
	p, err := NewProxy(nil, zap.NewNop())
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.NoRoute(p.Handler())

	req := httptest.NewRequest(http.MethodGet, "/nothing/here", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProxy_InvalidUpstreamRejected(t *testing.T) {
	_, err := NewProxy([]config.GatewayRoute{
		{Prefix: "/api/", Upstream: "://bad"},
	}, zap.NewNop())
	assert.Error(t, err)
}
