package main

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/rpcclient"
)

// peerSource provides the current peer list of a node
type peerSource interface {
	fetchPeers(ctx context.Context) ([]peerRecord, error)
	// String names the source in error messages
	String() string
}

// commandSource runs a shell command that prints getpeerinfo json
type commandSource struct {
	command string
	timeout time.Duration // 0 waits forever
}

func (c *commandSource) String() string { return c.command }

// run executes the command and returns whatever it wrote to stdout
func (c *commandSource) run(ctx context.Context) []byte {

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", c.command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// children of the shell may hold stdout open after it is killed
	cmd.WaitDelay = time.Second

	log.Debugf("running %s", c.command)
	st := time.Now()

	if err := cmd.Run(); err != nil {
		// the output is still used if there is any
		log.Warningf("%s: %v %s", c.command, err, bytes.TrimSpace(stderr.Bytes()))
	}

	log.Debugf("%s returned %v bytes in %s", c.command, stdout.Len(), time.Since(st).String())
	return stdout.Bytes()
}

func (c *commandSource) fetchPeers(ctx context.Context) ([]peerRecord, error) {
	return decodePeers(c.run(ctx), c.command)
}

// peerInfoClient is the part of the rpc client we use
type peerInfoClient interface {
	GetPeerInfo() ([]btcjson.GetPeerInfoResult, error)
	Shutdown()
}

// rpcSource asks the node for getpeerinfo over json-rpc
type rpcSource struct {
	host string
	// dial is replaced in tests
	dial func() (peerInfoClient, error)
}

// newRPCSource returns a source talking to a bitcoind style rpc server
func newRPCSource(cfg *Config) *rpcSource {
	connCfg := &rpcclient.ConnConfig{
		Host:         cfg.RPC.Host,
		User:         cfg.RPC.User,
		Pass:         cfg.RPC.Pass,
		Proxy:        cfg.RPC.Proxy,
		HTTPPostMode: true, // bitcoind style nodes only support HTTP POST mode
		DisableTLS:   !cfg.RPC.TLS,
	}
	return &rpcSource{
		host: cfg.RPC.Host,
		dial: func() (peerInfoClient, error) {
			return rpcclient.New(connCfg, nil)
		},
	}
}

func (r *rpcSource) String() string { return r.host }

func (r *rpcSource) fetchPeers(_ context.Context) ([]peerRecord, error) {

	client, err := r.dial()
	if err != nil {
		return nil, &seedError{kind: errNoResponse, source: r.host, err: err}
	}
	defer client.Shutdown()

	// rpcclient has no per request deadline, --timeout only covers commands
	res, err := client.GetPeerInfo()
	if err != nil {
		return nil, &seedError{kind: errNoResponse, source: r.host, err: err}
	}

	log.Debugf("rpc %s returned %v peers", r.host, len(res))
	return recordsFromRPC(res), nil
}

// newPeerSource picks the rpc source when a host is configured and the
// command otherwise
func newPeerSource(cfg *Config) peerSource {
	if cfg.RPC.Host != "" {
		return newRPCSource(cfg)
	}
	return &commandSource{command: cfg.Command, timeout: cfg.Timeout}
}
