package main

import (
	"math"
	"testing"

	"github.com/antonholmquist/jason"
	"github.com/btcsuite/btcd/btcjson"
)

func TestDecodePeersErrors(t *testing.T) {

	var td = []struct {
		raw  string
		kind int
	}{
		{"", errNoResponse},
		{" \n\t", errNoResponse},
		{"not json", errDecode},
		{"[{\"addr\":", errDecode},
		{"[] junk", errDecode},
		{"[{\"addr\":\"1.2.3.4:7333\",\"banscore\":0,\"inbound\":false}] not json", errDecode},
		{"[] []", errDecode},
		{"{\"addr\":\"1.2.3.4:7333\"}", errNotAnArray},
		{"null", errNotAnArray},
		{"42", errNotAnArray},
		{"\"[]\"", errNotAnArray},
		{"true", errNotAnArray},
	}

	for _, atest := range td {
		peers, err := decodePeers([]byte(atest.raw), "cmd")
		if err == nil {
			t.Errorf("raw: %q decoded to %v, expected an error", atest.raw, peers)
			continue
		}
		se, ok := err.(*seedError)
		if !ok {
			t.Errorf("raw: %q error %v is not a seedError", atest.raw, err)
			continue
		}
		if se.kind != atest.kind {
			t.Errorf("raw: %q kind: %s expected: %s", atest.raw, se.kind2str(), (&seedError{kind: atest.kind}).kind2str())
		}
	}
}

func TestDecodePeers(t *testing.T) {

	raw := `[
		{"id": 1, "addr": "1.2.3.4:7333", "services": "00000001", "banscore": 0, "inbound": false},
		{"addr": "5.6.7.8:7333", "banscore": 10, "inbound": true, "subver": "/Satoshi:0.8.6/"},
		{"addr": "9.9.9.9:7333", "banscore": 0.5},
		{"banscore": "high", "inbound": "yes"},
		17,
		null,
		{"addr": "8.8.8.8:7333", "banscore": 1e19},
		{"addr": "7.7.7.7:7333", "banscore": -3, "inbound": 1},
		{"addr": "6.6.6.6:7333", "inbound": "0"},
		{"addr": "4.4.4.4:7333", "inbound": null}
	]`

	expected := []peerRecord{
		{addr: "1.2.3.4:7333"},
		{addr: "5.6.7.8:7333", banScore: 10, inbound: true},
		{addr: "9.9.9.9:7333", banScore: 1},
		{inbound: true},
		{},
		{},
		{addr: "8.8.8.8:7333", banScore: math.MaxInt64},
		{addr: "7.7.7.7:7333", inbound: true},
		{addr: "6.6.6.6:7333"},
		{addr: "4.4.4.4:7333"},
	}

	peers, err := decodePeers([]byte(raw), "cmd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(peers) != len(expected) {
		t.Fatalf("decoded %v peers expected %v", len(peers), len(expected))
	}
	for i, p := range peers {
		if p != expected[i] {
			t.Errorf("peer %v: %+v expected: %+v", i, p, expected[i])
		}
	}
}

func TestDecodePeersEmptyArray(t *testing.T) {
	peers, err := decodePeers([]byte("[]\n"), "cmd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(peers) != 0 {
		t.Errorf("expected no peers, got %v", peers)
	}
}

func TestRecordsFromRPC(t *testing.T) {
	res := []btcjson.GetPeerInfoResult{
		{Addr: "1.2.3.4:8333", BanScore: 0, Inbound: false},
		{Addr: "5.6.7.8:8333", BanScore: 7, Inbound: true},
	}
	peers := recordsFromRPC(res)
	if len(peers) != 2 {
		t.Fatalf("got %v peers", len(peers))
	}
	if peers[0] != (peerRecord{addr: "1.2.3.4:8333"}) {
		t.Errorf("peer 0: %+v", peers[0])
	}
	if peers[1] != (peerRecord{addr: "5.6.7.8:8333", banScore: 7, inbound: true}) {
		t.Errorf("peer 1: %+v", peers[1])
	}
}

func TestDecodedBannedPeersRejected(t *testing.T) {

	var td = []string{
		`[{"addr":"1.2.3.4:7333","banscore":1e19,"inbound":false}]`,
		`[{"addr":"1.2.3.4:7333","banscore":9223372036854775808,"inbound":false}]`,
		`[{"addr":"1.2.3.4:7333","banscore":1e308,"inbound":false}]`,
		`[{"addr":"1.2.3.4:7333","banscore":0.5,"inbound":false}]`,
		`[{"addr":"1.2.3.4:7333","banscore":0,"inbound":1}]`,
		`[{"addr":"1.2.3.4:7333","banscore":0,"inbound":"true"}]`,
	}

	for _, raw := range td {
		peers, err := decodePeers([]byte(raw), "cmd")
		if err != nil {
			t.Errorf("raw: %s unexpected error: %v", raw, err)
			continue
		}
		ips, err := filterPeers(newPeerFilter(7333), peers, "cmd")
		if se, ok := err.(*seedError); !ok || se.kind != errNoOutboundPeers {
			t.Errorf("raw: %s advertised %v err: %v", raw, ips, err)
		}
	}
}

func TestTruthy(t *testing.T) {

	var td = []struct {
		raw string
		set bool
	}{
		{"true", true},
		{"false", false},
		{"1", true},
		{"0", false},
		{"0.0", false},
		{"-2", true},
		{`"yes"`, true},
		{`""`, false},
		{`"0"`, false},
		{"[]", false},
		{"[0]", true},
		{"{}", true},
		{"null", false},
	}

	for _, atest := range td {
		v, err := jason.NewValueFromBytes([]byte(atest.raw))
		if err != nil {
			t.Fatalf("raw: %s: %v", atest.raw, err)
		}
		if got := truthy(v); got != atest.set {
			t.Errorf("raw: %s truthy: %v expected: %v", atest.raw, got, atest.set)
		}
	}
}
