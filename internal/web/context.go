package web

import (
	"context"
	"net"
	"net/http"

	"github.com/JonMunkholm/laptops/internal/core"
)

// withClient adds the client IP and User-Agent to ctx for edit logging.
func withClient(ctx context.Context, r *http.Request) context.Context {
	return core.ContextWithClient(ctx, core.Client{
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
	})
}

// clientIP returns the host part of RemoteAddr, which TrustedRealIP has
// already replaced with the forwarded address for trusted proxies.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
