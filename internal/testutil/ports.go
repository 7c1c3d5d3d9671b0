// Package testutil holds helpers shared by tests.
package testutil

import (
	"net"
	"sync"
	"testing"
)

var (
	portMutex sync.Mutex
	usedPorts = make(map[string]struct{})
)

// ListenAddress returns a free loopback address. Addresses are never handed out twice in one
// test binary, so parallel tests do not race for the same port.
func ListenAddress(t *testing.T) string {
	t.Helper()
	portMutex.Lock()
	defer portMutex.Unlock()

	for range 10 {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatalf("Failed to get a free port: %v", err)
		}
		addr := l.Addr().String()
		if err := l.Close(); err != nil {
			t.Fatalf("Failed to close listener: %v", err)
		}
		if _, ok := usedPorts[addr]; ok {
			continue
		}
		usedPorts[addr] = struct{}{}
		return addr
	}
	t.Fatal("No unused port found")
	return ""
}
