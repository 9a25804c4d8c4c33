package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
)

// network struct holds the details of a network the generator knows about
type network struct {
	id          wire.BitcoinNet // Magic number - Unique ID for this network. Sent in header of all messages
	port        uint16          // default network port, peers on other ports are not advertised
	name        string          // Short name for the network
	description string          // Long description for the network
}

// getNetworkNames returns a slice of the networks that have been configured
func getNetworkNames() []string {
	return []string{"i0coin", "i0coin-testnet", "bitcoin", "bitcoin-testnet"}
}

// selectNetwork will return a network struct for a given network
func selectNetwork(name string) (*network, error) {
	switch name {
	case "i0coin":
		return &network{
			id:          0xd4b3b2f1,
			port:        7333,
			name:        "I0MainNet",
			description: "I0Coin Main Net",
		}, nil
	case "i0coin-testnet":
		return &network{
			id:          0x0709110b,
			port:        17333,
			name:        "I0TestNet",
			description: "I0Coin Test Net",
		}, nil
	case "bitcoin":
		return fromParams(&chaincfg.MainNetParams, "BitcoinMainNet", "Bitcoin Main Net")
	case "bitcoin-testnet":
		return fromParams(&chaincfg.TestNet3Params, "BitcoinTestNet", "Bitcoin Test Net")
	default:
		return nil, fmt.Errorf("unknown network %q, known networks: %v", name, getNetworkNames())
	}
}

// fromParams builds a network from the btcd chain parameters
func fromParams(p *chaincfg.Params, name, desc string) (*network, error) {
	port, err := strconv.ParseUint(p.DefaultPort, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("bad default port %q for %s: %v", p.DefaultPort, p.Name, err)
	}
	return &network{
		id:          p.Net,
		port:        uint16(port),
		name:        name,
		description: desc,
	}, nil
}

// listNetworks writes one line per preset so operators can match a node
// to a preset by its message start bytes
func listNetworks(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\tPORT\tMAGIC\tDESCRIPTION\n")
	for _, n := range getNetworkNames() {
		nw, err := selectNetwork(n)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%v\t0x%08x\t%s\n", n, nw.port, uint32(nw.id), nw.description)
	}
	return tw.Flush()
}
