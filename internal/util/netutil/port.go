// Package netutil provides network utility functions for port checking.
package netutil

import (
	"errors"
	"fmt"
	"net"
	"sort"
	"strconv"
)

// PortAvailable reports an error when nothing can listen on the TCP port
// on host. An empty host checks every interface.
func PortAvailable(host string, port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("port %d is out of range", port)
	}
	address := net.JoinHostPort(host, strconv.Itoa(port))
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("port %d is not available: %w", port, err)
	}
	return ln.Close()
}

// BusyPorts returns, in ascending order, the ports from the set that cannot
// be bound on host. Ports listed in skip are not checked.
func BusyPorts(host string, ports map[int]bool, skip map[int]bool) []int {
	var busy []int
	for port := range ports {
		if skip[port] {
			continue
		}
		if err := PortAvailable(host, port); err != nil {
			busy = append(busy, port)
		}
	}
	sort.Ints(busy)
	return busy
}

// ErrPortsBusy is returned by CheckPorts when at least one port is taken.
var ErrPortsBusy = errors.New("ports already in use")

// CheckPorts returns ErrPortsBusy, wrapped with the port list, when any of
// the ports cannot be bound on host.
func CheckPorts(host string, ports map[int]bool, skip map[int]bool) error {
	busy := BusyPorts(host, ports, skip)
	if len(busy) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrPortsBusy, busy)
}
