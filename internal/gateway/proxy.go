// File: internal/gateway/proxy.go
package gateway

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lafoken/withfy-backend-open/internal/config"
)

// route is one compiled prefix -> upstream proxy.
type route struct {
	prefix string
	proxy  *httputil.ReverseProxy
}

// Proxy forwards requests to the upstream service owning the longest
// matching route prefix.
type Proxy struct {
	routes []route
	logger *zap.Logger
}

// NewProxy compiles the configured route table. Upstream URLs must parse.
func NewProxy(routes []config.GatewayRoute, logger *zap.Logger) (*Proxy, error) {
	p := &Proxy{logger: logger}
	for _, r := range routes {
		target, err := url.Parse(r.Upstream)
		if err != nil {
			return nil, fmt.Errorf("invalid upstream %q for prefix %q: %w", r.Upstream, r.Prefix, err)
		}
		rp := httputil.NewSingleHostReverseProxy(target)
		rp.ErrorHandler = func(w http.ResponseWriter, req *http.Request, err error) {
			logger.Error("Upstream request failed",
				zap.String("path", req.URL.Path),
				zap.String("upstream", target.String()),
				zap.Error(err),
			)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":"upstream unavailable"}`))
		}
		p.routes = append(p.routes, route{prefix: r.Prefix, proxy: rp})
	}
	// Longest prefix wins.
	sort.Slice(p.routes, func(i, j int) bool {
		return len(p.routes[i].prefix) > len(p.routes[j].prefix)
	})
	return p, nil
}

// Match returns the proxy owning the path, if any.
func (p *Proxy) Match(path string) (*httputil.ReverseProxy, bool) {
	for _, r := range p.routes {
		if strings.HasPrefix(path, r.prefix) {
			return r.proxy, true
		}
	}
	return nil, false
}

// Handler terminates every request that survived the auth filter.
func (p *Proxy) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		proxy, ok := p.Match(c.Request.URL.Path)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no route"})
			return
		}
		proxy.ServeHTTP(c.Writer, c.Request)
	}
}
