package hostrouter

import "strings"

// Normalize strips the port, drops a trailing root dot and lowercases host.
// IPv6 literals keep their brackets: "[::1]:8080" becomes "[::1]".
func Normalize(host string) string {
	host = strings.TrimSpace(host)
	if i := strings.LastIndexByte(host, ':'); i != -1 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}
	return strings.ToLower(strings.TrimSuffix(host, "."))
}

// Subdomain returns everything left of ".baseDomain" in host, so
// "austin-tx.example.com" gives "austin-tx" and "a.b.example.com" gives
// "a.b". The apex, foreign hosts and an empty baseDomain give "".
func Subdomain(host, baseDomain string) string {
	host, base := Normalize(host), Normalize(baseDomain)
	if base == "" {
		return ""
	}
	sub, ok := strings.CutSuffix(host, "."+base)
	if !ok {
		return ""
	}
	return sub
}

// IsApex reports whether host is baseDomain itself.
func IsApex(host, baseDomain string) bool {
	base := Normalize(baseDomain)
	return base != "" && Normalize(host) == base
}
