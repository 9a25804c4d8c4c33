package main

import (
	"fmt"
	"os"
	"time"

	"github.com/miekg/dns"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Config is everything needed to produce one zone file. It is filled from
// the defaults, the network preset, the config file and the command line
// in that order and not changed afterwards.
type Config struct {
	Network      string        `yaml:"network"`
	Command      string        `yaml:"command"`
	Timeout      time.Duration `yaml:"timeout"`
	Port         uint16        `yaml:"port"`
	Domain       string        `yaml:"domain"`
	Master       string        `yaml:"master"`
	Slaves       []string      `yaml:"slaves"`
	Hostmaster   string        `yaml:"hostmaster"`
	TTL          uint32        `yaml:"ttl"`
	Refresh      uint32        `yaml:"refresh"`
	Retry        uint32        `yaml:"retry"`
	Expire       uint32        `yaml:"expire"`
	NegativeTTL  uint32        `yaml:"negative_ttl"`
	SerialFormat string        `yaml:"serial_format"`
	RPC          RPCConfig     `yaml:"rpc"`
}

// RPCConfig holds the json-rpc connection details. An empty Host means
// the command is used instead.
type RPCConfig struct {
	Host  string `yaml:"host"`
	User  string `yaml:"user"`
	Pass  string `yaml:"pass"`
	TLS   bool   `yaml:"tls"`
	Proxy string `yaml:"proxy"`
}

const defaultNetwork = "i0coin"

// defaultConfig returns the settings of the i0seed.snel.it zone
func defaultConfig() *Config {
	return &Config{
		Network:      defaultNetwork,
		Command:      "i0coind getpeerinfo",
		Port:         7333,
		Domain:       "i0seed.snel.it",
		Master:       "eniac.snel.it",
		Slaves:       []string{"penta.snel.it"},
		Hostmaster:   "hostmaster.snel.it",
		TTL:          600,
		Refresh:      28800,
		Retry:        7200,
		Expire:       2419200,
		NegativeTTL:  86400,
		SerialFormat: serialTimestamp,
	}
}

// loadConfig builds the config from the defaults, the named network and
// the optional yaml file at path. Values in the file win over the preset.
func loadConfig(path, netName string) (*Config, error) {

	cfg := defaultConfig()

	var raw []byte
	if path != "" {
		p, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("expanding config path %s: %v", path, err)
		}
		raw, err = os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %v", err)
		}
		// the network decides the default port so it is needed first
		var peek struct {
			Network string `yaml:"network"`
		}
		if err := yaml.Unmarshal(raw, &peek); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %v", p, err)
		}
		if netName == "" {
			netName = peek.Network
		}
	}

	if netName == "" {
		netName = defaultNetwork
	}
	nw, err := selectNetwork(netName)
	if err != nil {
		return nil, err
	}
	cfg.Network = netName
	cfg.Port = nw.port
	log.Debugf("network %s: %s magic %v default port %v", nw.name, nw.description, nw.id, nw.port)

	if raw != nil {
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %v", path, err)
		}
		// a network flag overrides the file
		cfg.Network = netName
	}

	return cfg, nil
}

// validate checks the config before anything is run
func (c *Config) validate() error {

	if c.Command == "" && c.RPC.Host == "" {
		return fmt.Errorf("no peer source: set a command or an rpc host")
	}
	if c.Port == 0 {
		return fmt.Errorf("port must be between 1 and 65535")
	}

	if c.Hostmaster == "" {
		return fmt.Errorf("hostmaster is not set")
	}

	names := map[string]string{
		"domain":     c.Domain,
		"master":     c.Master,
		"hostmaster": mailbox(c.Hostmaster),
	}
	for i, s := range c.Slaves {
		names[fmt.Sprintf("slave %d", i+1)] = s
	}
	for what, name := range names {
		if name == "" {
			return fmt.Errorf("%s is not set", what)
		}
		if _, ok := dns.IsDomainName(name); !ok {
			return fmt.Errorf("%s %q is not a valid domain name", what, name)
		}
	}

	if _, err := makeSerial(c.SerialFormat, time.Time{}); err != nil {
		return err
	}

	return nil
}
