package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	h "eventsapi/internal/delivery/http/helpers"
)

// TrustedProxies honours X-Forwarded-Proto and X-Forwarded-Host only when the
// connection comes from one of the given CIDRs (a bare IP is a single host). With no
// trusted proxies the headers are never used for generated links.
func TrustedProxies(cidrs []string, next http.Handler) http.Handler {
	nets := parseTrustedCIDRs(cidrs)
	if len(nets) == 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proto := firstForwarded(r.Header.Get("X-Forwarded-Proto"))
		host := firstForwarded(r.Header.Get("X-Forwarded-Host"))
		if (proto != "" || host != "") && isTrustedProxy(r.RemoteAddr, nets) {
			if proto != "http" && proto != "https" {
				proto = ""
			}
			r = r.WithContext(h.WithForwardedOrigin(r.Context(), proto, host))
		}
		next.ServeHTTP(w, r)
	})
}

func parseTrustedCIDRs(cidrs []string) []*net.IPNet {
	var nets []*net.IPNet
	for _, c := range cidrs {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if !strings.Contains(c, "/") {
			if ip := net.ParseIP(c); ip != nil {
				bits := 128
				if ip.To4() != nil {
					bits = 32
				}
				c += "/" + strconv.Itoa(bits)
			}
		}
		if _, n, err := net.ParseCIDR(c); err == nil {
			nets = append(nets, n)
		}
	}
	return nets
}

func isTrustedProxy(remoteAddr string, nets []*net.IPNet) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	for _, n := range nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// firstForwarded returns the left-most value of a comma-separated forwarded header.
func firstForwarded(v string) string {
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}
