package config

import (
	"encoding/binary"
	"fmt"
	"net"
)

// CIDRHost returns the address of host number hostnum inside prefix.
// A negative hostnum counts back from the end of the range.
// Only IPv4 prefixes are supported.
func CIDRHost(prefix string, hostnum int) (string, error) {
	network, err := parseIPv4Prefix(prefix)
	if err != nil {
		return "", err
	}

	maskSize, totalBits := network.Mask.Size()
	maxHosts := uint64(1) << (totalBits - maskSize)

	var offset uint64
	if hostnum < 0 {
		abs := uint64(-hostnum)
		if abs > maxHosts {
			return "", fmt.Errorf("host number %d exceeds max hosts %d", hostnum, maxHosts)
		}
		offset = maxHosts - abs
	} else {
		offset = uint64(hostnum)
		if offset >= maxHosts {
			return "", fmt.Errorf("host number %d exceeds max hosts %d", hostnum, maxHosts)
		}
	}

	return uintToIP(ipToUint(network.IP.To4()) + offset).String(), nil
}

// CIDRContains reports whether ip lies inside prefix.
func CIDRContains(prefix, ip string) (bool, error) {
	network, err := parseIPv4Prefix(prefix)
	if err != nil {
		return false, err
	}
	addr := net.ParseIP(ip)
	if addr == nil || addr.To4() == nil {
		return false, fmt.Errorf("invalid IPv4 address %q", ip)
	}
	return network.Contains(addr), nil
}

// parseIPv4Prefix parses prefix and rejects IPv6 ranges.
func parseIPv4Prefix(prefix string) (*net.IPNet, error) {
	_, network, err := net.ParseCIDR(prefix)
	if err != nil {
		return nil, fmt.Errorf("invalid CIDR prefix: %w", err)
	}
	if network.IP.To4() == nil {
		return nil, fmt.Errorf("only IPv4 addresses are supported, got IPv6: %s", prefix)
	}
	return network, nil
}

// ipToUint converts an IPv4 address to its integer form.
func ipToUint(ip net.IP) uint64 {
	if ip4 := ip.To4(); ip4 != nil {
		return uint64(binary.BigEndian.Uint32(ip4))
	}
	return 0
}

// uintToIP converts an integer back to an IPv4 address.
func uintToIP(val uint64) net.IP {
	ip := make(net.IP, 4)
	// #nosec G115
	binary.BigEndian.PutUint32(ip, uint32(val))
	return ip
}
