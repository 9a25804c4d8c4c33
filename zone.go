package main

import (
	"bytes"
	"fmt"
	"net"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/miekg/dns"
)

const (
	serialTimestamp = "timestamp" // YYYYMMDDHHmmss
	serialUnix      = "unix"      // seconds since the epoch, fits the 32 bit field
)

// zoneData is everything the zone template needs. It is built once the
// peers have been filtered and is not changed afterwards.
type zoneData struct {
	Domain string // zone name without the trailing dot
	TTL    uint32
	Serial string
	SOA    *dns.SOA
	NS     []*dns.NS
	A      []*dns.A
}

var zoneTemplate = template.Must(template.New("zone").Parse(`;
; BIND data for {{.Domain}}
;
$TTL	{{.TTL}}
@	IN	SOA {{.SOA.Ns}} {{.SOA.Mbox}} (
			{{.Serial}} ; Serial
			{{.SOA.Refresh}}		; Refresh
			{{.SOA.Retry}}		; Retry
			{{.SOA.Expire}}		; Expire
			{{.SOA.Minttl}} )		; Negative Cache TTL
{{range .NS}}		NS	{{.Ns}}
{{end}}{{range .A}}		A	{{.A}}
{{end}}`))

// makeSerial formats the SOA serial for the given time
func makeSerial(format string, now time.Time) (string, error) {
	switch format {
	case serialTimestamp, "":
		return now.Format("20060102150405"), nil
	case serialUnix:
		return strconv.FormatInt(now.Unix(), 10), nil
	default:
		return "", fmt.Errorf("unknown serial format %q", format)
	}
}

// mailbox turns a hostmaster address into the SOA rname form.
// hostmaster@example.org becomes hostmaster.example.org.
func mailbox(hostmaster string) string {
	if i := strings.LastIndex(hostmaster, "@"); i >= 0 {
		local := strings.ReplaceAll(hostmaster[:i], ".", `\.`)
		hostmaster = local + "." + hostmaster[i+1:]
	}
	return dns.Fqdn(hostmaster)
}

// buildZone collects the zone records for the accepted peer addresses
func buildZone(cfg *Config, ips []net.IP, now time.Time) (*zoneData, error) {

	serial, err := makeSerial(cfg.SerialFormat, now)
	if err != nil {
		return nil, err
	}

	apex := dns.Fqdn(cfg.Domain)
	hdr := func(t uint16) dns.RR_Header {
		return dns.RR_Header{Name: apex, Rrtype: t, Class: dns.ClassINET, Ttl: cfg.TTL}
	}

	z := &zoneData{
		Domain: strings.TrimSuffix(apex, "."),
		TTL:    cfg.TTL,
		Serial: serial,
		SOA: &dns.SOA{
			Hdr:     hdr(dns.TypeSOA),
			Ns:      dns.Fqdn(cfg.Master),
			Mbox:    mailbox(cfg.Hostmaster),
			Refresh: cfg.Refresh,
			Retry:   cfg.Retry,
			Expire:  cfg.Expire,
			Minttl:  cfg.NegativeTTL,
		},
	}

	// master first then the slaves in the order they were configured
	for _, ns := range append([]string{cfg.Master}, cfg.Slaves...) {
		r := new(dns.NS)
		r.Hdr = hdr(dns.TypeNS)
		r.Ns = dns.Fqdn(ns)
		z.NS = append(z.NS, r)
	}

	for _, ip := range ips {
		r := new(dns.A)
		r.Hdr = hdr(dns.TypeA)
		r.A = ip
		z.A = append(z.A, r)
	}

	return z, nil
}

// renderZone returns the BIND zone file text for z
func renderZone(z *zoneData) (string, error) {
	var buf bytes.Buffer
	if err := zoneTemplate.Execute(&buf, z); err != nil {
		return "", fmt.Errorf("rendering zone %s: %v", z.Domain, err)
	}
	return buf.String(), nil
}
