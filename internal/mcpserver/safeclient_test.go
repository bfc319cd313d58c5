package mcpserver

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBlockedIP(t *testing.T) {
	tests := []struct {
		name    string
		ip      string
		blocked bool
	}{
		{name: "loopback v4", ip: "127.0.0.1", blocked: true},
		{name: "loopback v6", ip: "::1", blocked: true},
		{name: "private 10", ip: "10.0.0.5", blocked: true},
		{name: "private 172", ip: "172.16.1.1", blocked: true},
		{name: "private 192", ip: "192.168.1.1", blocked: true},
		{name: "link local", ip: "169.254.0.1", blocked: true},
		{name: "unspecified", ip: "0.0.0.0", blocked: true},
		{name: "public v4", ip: "93.184.216.34", blocked: false},
		{name: "public v6", ip: "2606:2800:220:1:248:1893:25c8:1946", blocked: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ip := net.ParseIP(tt.ip)
			require.NotNil(t, ip)
			assert.Equal(t, tt.blocked, isBlockedIP(ip))
		})
	}
}

func TestNewSafeHTTPClient(t *testing.T) {
	client := newSafeHTTPClient()
	require.NotNil(t, client)
	assert.Equal(t, requestTimeout, client.Timeout)
	assert.NotNil(t, client.Transport)
	assert.NotNil(t, client.CheckRedirect)
}

func TestResolveAllowedAddrs_BlocksLoopbackHost(t *testing.T) {
	_, err := resolveAllowedAddrs(context.Background(), "localhost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked")
}
