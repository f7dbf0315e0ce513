// Package privacy masks personally identifying request data before it is
// logged or published.
package privacy

import "net/netip"

// AnonymizeIP masks an address to its /24 (IPv4) or /48 (IPv6) network.
// IPv4-mapped IPv6 addresses are treated as IPv4. Ports are accepted and dropped.
//
// Returns "unknown" for empty input and "invalid" for unparseable input.
func AnonymizeIP(raw string) string {
	if raw == "" || raw == "unknown" {
		return "unknown"
	}

	addr, err := netip.ParseAddr(raw)
	if err != nil {
		ap, perr := netip.ParseAddrPort(raw)
		if perr != nil {
			return "invalid"
		}
		addr = ap.Addr()
	}
	addr = addr.Unmap()

	bits := 48
	if addr.Is4() {
		bits = 24
	}
	prefix, err := addr.Prefix(bits)
	if err != nil {
		return "invalid"
	}
	return prefix.Addr().String()
}
