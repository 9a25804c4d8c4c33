package main

import (
	"net"
	"regexp"
	"strconv"
)

// peerFilter selects the peers that end up as A records. It has no state
// between records.
type peerFilter struct {
	port uint16
	re   *regexp.Regexp
}

// newPeerFilter builds a filter that only accepts dotted quad ipv4
// addresses on the given port
func newPeerFilter(port uint16) *peerFilter {
	p := strconv.Itoa(int(port))
	return &peerFilter{
		port: port,
		re:   regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)\.(\d+):` + regexp.QuoteMeta(p) + `$`),
	}
}

// accept returns the ip address of the peer if it should be advertised,
// otherwise nil and the reason it was rejected.
func (f *peerFilter) accept(p peerRecord) (ip net.IP, reason string) {

	if p.banScore > 0 {
		return nil, "banscore " + strconv.FormatInt(p.banScore, 10)
	}
	if p.inbound {
		return nil, "inbound connection"
	}

	m := f.re.FindStringSubmatch(p.addr)
	if m == nil {
		return nil, "not ipv4 on port " + strconv.Itoa(int(f.port))
	}

	var b [4]byte
	for i, s := range m[1:] {
		// \d+ guarantees digits, only overflow can fail here
		n, err := strconv.Atoi(s)
		if err != nil || n > 255 {
			return nil, "octet out of range: " + s
		}
		b[i] = byte(n)
	}

	return net.IPv4(b[0], b[1], b[2], b[3]).To4(), ""
}

// filterPeers runs every record through the filter and returns the accepted
// addresses in the order they were received. Duplicates are kept.
func filterPeers(f *peerFilter, peers []peerRecord, source string) ([]net.IP, error) {

	var ips []net.IP

	for _, p := range peers {
		ip, reason := f.accept(p)
		if ip == nil {
			log.Debugf("skipping peer %q: %s", p.addr, reason)
			continue
		}
		ips = append(ips, ip)
	}

	log.Infof("%v of %v peers accepted from %s", len(ips), len(peers), source)

	if len(ips) == 0 {
		return nil, &seedError{kind: errNoOutboundPeers, source: source}
	}
	return ips, nil
}
