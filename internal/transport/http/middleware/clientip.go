package middleware

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ProxyTrust is the set of proxy networks whose forwarding headers are believed.
type ProxyTrust []netip.Prefix

// ParseProxyTrust parses CIDRs or bare addresses. Invalid entries are
// skipped and reported together in the error; the valid ones are returned.
func ParseProxyTrust(entries []string) (ProxyTrust, error) {
	var (
		trust ProxyTrust
		errs  []error
	)
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if p, err := netip.ParsePrefix(e); err == nil {
			trust = append(trust, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(e)
		if err != nil {
			errs = append(errs, fmt.Errorf("trusted proxy %q: %w", e, err))
			continue
		}
		addr = addr.Unmap()
		trust = append(trust, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return trust, errors.Join(errs...)
}

func (t ProxyTrust) contains(addr netip.Addr) bool {
	addr = addr.Unmap()
	for _, p := range t {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// Resolve returns the client address of r. Forwarding headers count only
// when the peer itself is a trusted proxy; X-Forwarded-For is then read
// right to left and the first untrusted hop wins.
func (t ProxyTrust) Resolve(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	peer, err := netip.ParseAddr(host)
	if err != nil || !t.contains(peer) {
		return host
	}

	if xff := r.Header.Values("X-Forwarded-For"); len(xff) > 0 {
		hops := strings.Split(strings.Join(xff, ","), ",")
		var leftmost string
		for i := len(hops) - 1; i >= 0; i-- {
			addr, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
			if err != nil {
				break
			}
			leftmost = addr.Unmap().String()
			if !t.contains(addr) {
				return leftmost
			}
		}
		if leftmost != "" {
			return leftmost
		}
	}
	if addr, err := netip.ParseAddr(strings.TrimSpace(r.Header.Get("X-Real-Ip"))); err == nil {
		return addr.Unmap().String()
	}
	return host
}

type clientIPKey struct{}

// RealIP stores the resolved client address in the request context for
// ClientIP.
func RealIP(trust ProxyTrust) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), clientIPKey{}, trust.Resolve(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientIP returns the address stored by RealIP. Without RealIP in the chain
// it falls back to the peer address and ignores forwarding headers.
func ClientIP(r *http.Request) string {
	if ip, ok := r.Context().Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ProxyTrust(nil).Resolve(r)
}
