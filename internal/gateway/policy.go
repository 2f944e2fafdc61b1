// File: internal/gateway/policy.go
package gateway

import "strings"

// Decision classifies a request path for the auth filter.
type Decision int

const (
	// DecisionPublic lets the request through without a token.
	DecisionPublic Decision = iota
	// DecisionProtected requires a verified access token.
	DecisionProtected
	// DecisionDefault applies the policy's fallback.
	DecisionDefault
)

// Policy is the declarative route classification: an exact allow-list of
// public paths and a set of protected prefixes. Everything else falls back to
// DefaultAllow.
type Policy struct {
	// PublicPaths are matched exactly; a query string never takes part.
	PublicPaths map[string]struct{}
	// ProtectedPrefixes are matched by prefix, longest semantics irrelevant
	// since any match protects.
	ProtectedPrefixes []string
	// DefaultAllow defines what happens to paths matching neither list. The
	// historical behavior is to let them through; setting this to false turns
	// the filter into a strict allow-list.
	DefaultAllow bool
}

// DefaultPolicy is the shipped classification for the platform's route map.
func DefaultPolicy() *Policy {
	return &Policy{
		PublicPaths: exactSet(
			"/api/v1/identity/auth/register",
			"/api/v1/identity/auth/login",
			"/api/v1/identity/auth/refresh",
			"/api/v1/identity/auth/forgot-password",
			"/api/v1/identity/auth/reset-password",
			"/api/v1/identity/auth/oauth2/login/google",
			"/api/v1/identity/admin/init-fixed-admin",
			"/oauth2/authorization/google",
			"/login/oauth2/code/google",
			"/health",
			"/metrics",
		),
		ProtectedPrefixes: []string{
			"/api/v1/identity/",
			"/api/v1/user/",
			"/api/v1/song/",
			"/api/v1/playlist/",
			"/api/v1/billing/",
		},
		DefaultAllow: true,
	}
}

func exactSet(paths ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return set
}

// Classify decides how the filter treats the path. Public beats protected so
// the auth endpoints stay reachable under the protected identity prefix.
func (p *Policy) Classify(path string) Decision {
	if _, ok := p.PublicPaths[path]; ok {
		return DecisionPublic
	}
	for _, prefix := range p.ProtectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return DecisionProtected
		}
	}
	return DecisionDefault
}
