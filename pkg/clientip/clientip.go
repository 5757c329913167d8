package clientip

import (
	"context"
	"net"
	"net/http"
	"strings"
)

// Forwarding headers consulted when proxies are trusted, in priority order.
var proxyHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// FromRequest returns the client address of r. With trustProxy set the
// forwarding headers are consulted before RemoteAddr; X-Forwarded-For yields
// its first valid entry. Returns "" when no valid address is found.
func FromRequest(r *http.Request, trustProxy bool) string {
	if trustProxy {
		for _, h := range proxyHeaders {
			for candidate := range strings.SplitSeq(r.Header.Get(h), ",") {
				if ip := normalize(candidate); ip != "" {
					return ip
				}
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return normalize(r.RemoteAddr)
	}
	return normalize(host)
}

func normalize(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}

type ctxKey struct{}

// WithContext stores the client address in ctx.
func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKey{}, ip)
}

// FromContext returns the stored client address, or "".
func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(ctxKey{}).(string)
	return ip
}

// Middleware resolves the client address of every request and stores it in the
// request context.
func Middleware(trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithContext(r.Context(), FromRequest(r, trustProxy))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
