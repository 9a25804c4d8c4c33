package main

import (
	"context"
	"time"
)

// seeder turns the peer list of one node into a zone file
type seeder struct {
	cfg    *Config
	source peerSource
	now    func() time.Time // clock for the SOA serial
}

func newSeeder(cfg *Config) *seeder {
	return &seeder{
		cfg:    cfg,
		source: newPeerSource(cfg),
		now:    time.Now,
	}
}

// generate fetches, filters and renders in one pass. Nothing is written
// unless every step succeeds.
func (s *seeder) generate(ctx context.Context) (string, error) {

	peers, err := s.source.fetchPeers(ctx)
	if err != nil {
		return "", err
	}

	ips, err := filterPeers(newPeerFilter(s.cfg.Port), peers, s.source.String())
	if err != nil {
		return "", err
	}

	z, err := buildZone(s.cfg, ips, s.now())
	if err != nil {
		return "", err
	}

	log.Infof("zone %s: serial %s with %v A records", z.Domain, z.Serial, len(z.A))

	return renderZone(z)
}
