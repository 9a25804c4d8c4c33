package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fail(err)
	}
}

// fail prints err on cli.ErrWriter and exits with status 1
func fail(err error) {
	cli.HandleExitCoder(cli.Exit(color.RedString("error - %v", err), 1))
}

// newApp returns the cli application. The zone is written to app.Writer.
func newApp() *cli.App {
	return &cli.App{
		Name:      "seedzone",
		Usage:     "write a BIND zone advertising the outbound peers of a node",
		UsageText: "seedzone [options] > seed.zone",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "yaml config file"},
			&cli.StringFlag{Name: "network", Aliases: []string{"n"}, Usage: fmt.Sprintf("network preset %v", getNetworkNames())},
			&cli.BoolFlag{Name: "list-networks", Usage: "print the network presets and exit"},
			&cli.StringFlag{Name: "command", Usage: "shell command printing getpeerinfo json"},
			&cli.DurationFlag{Name: "timeout", Usage: "kill the command after this long (0 waits forever)"},
			&cli.UintFlag{Name: "port", Aliases: []string{"p"}, Usage: "only advertise peers on this port"},
			&cli.StringFlag{Name: "domain", Usage: "zone name"},
			&cli.StringFlag{Name: "master", Usage: "primary nameserver"},
			&cli.StringSliceFlag{Name: "slave", Usage: "secondary nameserver, repeat for more"},
			&cli.StringFlag{Name: "hostmaster", Usage: "zone contact, user@domain or user.domain"},
			&cli.UintFlag{Name: "ttl", Usage: "default record ttl"},
			&cli.UintFlag{Name: "refresh", Usage: "SOA refresh"},
			&cli.UintFlag{Name: "retry", Usage: "SOA retry"},
			&cli.UintFlag{Name: "expire", Usage: "SOA expire"},
			&cli.UintFlag{Name: "negative-ttl", Usage: "SOA negative cache ttl"},
			&cli.StringFlag{Name: "serial-format", Usage: "SOA serial: timestamp or unix"},
			&cli.StringFlag{Name: "rpc-host", Usage: "query getpeerinfo over json-rpc at host:port instead of running the command"},
			&cli.StringFlag{Name: "rpc-user", Usage: "rpc username"},
			&cli.StringFlag{Name: "rpc-pass", Usage: "rpc password", EnvVars: []string{"SEEDZONE_RPC_PASS"}},
			&cli.BoolFlag{Name: "rpc-tls", Usage: "use TLS for rpc"},
			&cli.StringFlag{Name: "rpc-proxy", Usage: "socks5 proxy for rpc"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Display verbose output"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "Display debug output"},
			&cli.StringFlag{Name: "log-file", Usage: "also log to this file"},
		},
		Action: runSeeder,
	}
}

func runSeeder(c *cli.Context) error {

	setupLogging(c.Bool("verbose"), c.Bool("debug"), c.String("log-file"))

	if c.Bool("list-networks") {
		return listNetworks(c.App.Writer)
	}

	cfg, err := loadConfig(c.String("config"), c.String("network"))
	if err != nil {
		return err
	}
	if err := applyFlags(c, cfg); err != nil {
		return err
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	nw, err := selectNetwork(cfg.Network)
	if err != nil {
		return err
	}
	log.Infof("generating zone %s for %s (magic 0x%08x) peers on port %v", cfg.Domain, nw.description, uint32(nw.id), cfg.Port)

	zone, err := newSeeder(cfg).generate(context.Background())
	if err != nil {
		if se, ok := err.(*seedError); ok {
			log.Debugf("failed with %s", se.kind2str())
		}
		return err
	}

	_, err = fmt.Fprint(c.App.Writer, zone)
	return err
}

// applyFlags copies every flag given on the command line into cfg
func applyFlags(c *cli.Context, cfg *Config) error {

	str := map[string]*string{
		"command":       &cfg.Command,
		"domain":        &cfg.Domain,
		"master":        &cfg.Master,
		"hostmaster":    &cfg.Hostmaster,
		"serial-format": &cfg.SerialFormat,
		"rpc-host":      &cfg.RPC.Host,
		"rpc-user":      &cfg.RPC.User,
		"rpc-pass":      &cfg.RPC.Pass,
		"rpc-proxy":     &cfg.RPC.Proxy,
	}
	for name, v := range str {
		if c.IsSet(name) {
			*v = c.String(name)
		}
	}

	u32 := map[string]*uint32{
		"ttl":          &cfg.TTL,
		"refresh":      &cfg.Refresh,
		"retry":        &cfg.Retry,
		"expire":       &cfg.Expire,
		"negative-ttl": &cfg.NegativeTTL,
	}
	for name, v := range u32 {
		if c.IsSet(name) {
			n := c.Uint(name)
			if uint64(n) > 0xffffffff {
				return fmt.Errorf("--%s %v does not fit in 32 bits", name, n)
			}
			*v = uint32(n)
		}
	}

	if c.IsSet("port") {
		p := c.Uint("port")
		if p == 0 || p > 65535 {
			return fmt.Errorf("--port %v must be between 1 and 65535", p)
		}
		cfg.Port = uint16(p)
	}
	if c.IsSet("slave") {
		cfg.Slaves = c.StringSlice("slave")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if c.IsSet("rpc-tls") {
		cfg.RPC.TLS = c.Bool("rpc-tls")
	}

	return nil
}
