package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

const (
	dialTimeout    = 10 * time.Second
	requestTimeout = 30 * time.Second
	maxRedirects   = 10
)

// isBlockedIP returns true if the IP is private, loopback, link-local, or unspecified.
func isBlockedIP(ip net.IP) bool {
	return ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}

// resolveAllowedAddrs resolves host and rejects the lookup when any resolved
// address is blocked. Checking every address closes the gap where a public
// name also resolves to an internal one.
func resolveAllowedAddrs(ctx context.Context, host string) ([]net.IPAddr, error) {
	ips, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}
	if len(ips) == 0 {
		return nil, fmt.Errorf("no IP addresses found for host: %s", host)
	}
	for _, addr := range ips {
		if isBlockedIP(addr.IP) {
			return nil, fmt.Errorf("blocked request to private/loopback IP: %s (%s)", host, addr.IP)
		}
	}
	return ips, nil
}

// newSafeHTTPClient creates an HTTP client for url model inputs that refuses
// to reach private, loopback, or link-local targets, including across
// redirects. Model URLs arrive from MCP clients, so the host network must not
// be reachable through them.
func newSafeHTTPClient() *http.Client {
	dialer := &net.Dialer{Timeout: dialTimeout}

	return &http.Client{
		Timeout: requestTimeout,
		Transport: &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				host, port, err := net.SplitHostPort(addr)
				if err != nil {
					return nil, err
				}
				ips, err := resolveAllowedAddrs(ctx, host)
				if err != nil {
					return nil, err
				}
				return dialer.DialContext(ctx, network, net.JoinHostPort(ips[0].IP.String(), port))
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			_, err := resolveAllowedAddrs(req.Context(), req.URL.Hostname())
			return err
		},
	}
}
