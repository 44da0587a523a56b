package util

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// IsValidIPv4 checks if a string is a valid IPv4 address
func IsValidIPv4(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	return ip != nil && ip.To4() != nil
}

// DefaultGateway derives the conventional gateway for an address: the
// first three octets with a host octet of 1.
// "192.168.10.37" -> "192.168.10.1". Returns "" for non-IPv4 input.
func DefaultGateway(ipStr string) string {
	parts := strings.Split(ipStr, ".")
	if len(parts) != 4 || !IsValidIPv4(ipStr) {
		return ""
	}
	return fmt.Sprintf("%s.%s.%s.1", parts[0], parts[1], parts[2])
}

// ShiftLastOctet returns the address with its last octet advanced by
// delta modulo 254, wrapping 0 to 1. Used to propose replacement
// addresses when resolving conflicts.
func ShiftLastOctet(ipStr string, delta int) string {
	parts := strings.Split(ipStr, ".")
	if len(parts) != 4 {
		return ipStr
	}
	last, err := strconv.Atoi(parts[3])
	if err != nil {
		return ipStr
	}
	next := (last + delta) % 254
	if next <= 0 {
		next = 1
	}
	return fmt.Sprintf("%s.%s.%s.%d", parts[0], parts[1], parts[2], next)
}
