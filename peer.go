package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"

	"github.com/antonholmquist/jason"
	"github.com/btcsuite/btcd/btcjson"
)

// peerRecord holds the parts of one getpeerinfo entry the seeder cares about
type peerRecord struct {
	addr     string // host:port as reported by the node
	banScore int64  // misbehaviour score, anything above 0 is not advertised
	inbound  bool   // true if the remote end connected to us
}

// decodePeers parses the raw getpeerinfo output into peer records. source
// is only used to label errors.
func decodePeers(raw []byte, source string) ([]peerRecord, error) {

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &seedError{kind: errNoResponse, source: source}
	}

	// jason stops after the first value, anything trailing it must fail too
	if !json.Valid(raw) {
		return nil, &seedError{kind: errDecode, source: source, err: errors.New("invalid json")}
	}

	v, err := jason.NewValueFromBytes(raw)
	if err != nil {
		return nil, &seedError{kind: errDecode, source: source, err: err}
	}

	list, err := v.Array()
	if err != nil {
		return nil, &seedError{kind: errNotAnArray, source: source}
	}

	peers := make([]peerRecord, 0, len(list))
	for i, item := range list {
		obj, err := item.Object()
		if err != nil {
			// keep the slot so the filter can report it
			log.Debugf("entry %d is not an object: %v", i, err)
			peers = append(peers, peerRecord{})
			continue
		}
		peers = append(peers, recordFromObject(obj))
	}

	return peers, nil
}

// recordFromObject reads addr, banscore and inbound. Missing or mistyped
// addr and banscore are left at their zero value, inbound follows truthy.
func recordFromObject(obj *jason.Object) peerRecord {
	var p peerRecord

	if s, err := obj.GetString("addr"); err == nil {
		p.addr = s
	}
	// banscore is compared as a number so 0.5 still counts as banned
	if f, err := obj.GetFloat64("banscore"); err == nil && f > 0 {
		p.banScore = math.MaxInt64
		if f < math.MaxInt64 {
			p.banScore = max(1, int64(math.Ceil(f)))
		}
	}
	if v, err := obj.GetValue("inbound"); err == nil {
		p.inbound = truthy(v)
	}

	return p
}

// truthy reports whether v counts as set: true, a non zero number, a non
// empty string other than "0", a non empty array or any object.
func truthy(v *jason.Value) bool {
	if b, err := v.Boolean(); err == nil {
		return b
	}
	if f, err := v.Float64(); err == nil {
		return f != 0
	}
	if s, err := v.String(); err == nil {
		return s != "" && s != "0"
	}
	if a, err := v.Array(); err == nil {
		return len(a) > 0
	}
	if _, err := v.Object(); err == nil {
		return true
	}
	return false
}

// recordsFromRPC converts the btcjson results returned by an rpc client
func recordsFromRPC(res []btcjson.GetPeerInfoResult) []peerRecord {
	peers := make([]peerRecord, len(res))
	for i, r := range res {
		peers[i] = peerRecord{
			addr:     r.Addr,
			banScore: int64(r.BanScore),
			inbound:  r.Inbound,
		}
	}
	return peers
}
