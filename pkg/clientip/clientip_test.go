package clientip_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formrules/pkg/clientip"
)

func TestFromRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{name: "remote addr with port", remoteAddr: "203.0.113.7:5100", want: "203.0.113.7"},
		{name: "remote addr without port", remoteAddr: "203.0.113.7", want: "203.0.113.7"},
		{name: "ipv6 remote addr", remoteAddr: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "invalid remote addr", remoteAddr: "not-an-ip", want: ""},
		{
			name:       "headers ignored without trust",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.4"},
			want:       "10.0.0.1",
		},
		{
			name:       "first valid forwarded entry",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "garbage, 198.51.100.4, 10.0.0.2"},
			trustProxy: true,
			want:       "198.51.100.4",
		},
		{
			name:       "cloudflare header wins",
			remoteAddr: "10.0.0.1:80",
			headers: map[string]string{
				"CF-Connecting-IP": "192.0.2.9",
				"X-Forwarded-For":  "198.51.100.4",
			},
			trustProxy: true,
			want:       "192.0.2.9",
		},
		{
			name:       "falls back to remote addr",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Real-IP": "bogus"},
			trustProxy: true,
			want:       "10.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.FromRequest(r, tt.trustProxy))
		})
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.Middleware(true)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))

	r := httptest.NewRequest(http.MethodPost, "/validate", nil)
	r.Header.Set("X-Real-IP", "198.51.100.23")
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.Equal(t, "198.51.100.23", got)
	assert.Empty(t, clientip.FromContext(context.Background()))
}
