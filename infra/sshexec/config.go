package sshexec

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config defines how to reach and authenticate against a remote host.
type Config struct {
	Hostname string `json:"hostname"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	// KeyFile is the path of a PEM encoded private key.
	KeyFile string `json:"key_file"`
	// PEM is accepted as an alias of KeyFile.
	PEM           string `json:"pem"`
	KeyPassphrase string `json:"key_passphrase"`
	// KnownHostsFile lists the trusted host keys. Defaults to
	// ~/.ssh/known_hosts.
	KnownHostsFile string `json:"known_hosts_file"`
	// InsecureIgnoreHostKey accepts any host key. Only meant for throwaway
	// test hosts.
	InsecureIgnoreHostKey bool `json:"insecure_ignore_host_key"`
}

// SetDefaults applies default host, port, key and known_hosts locations.
func (c *Config) SetDefaults() {
	if c.Hostname == "" {
		c.Hostname = "localhost"
	}
	if c.Port == 0 {
		c.Port = 22
	}
	if c.KeyFile == "" {
		c.KeyFile = c.PEM
	}
	if c.KnownHostsFile == "" && !c.InsecureIgnoreHostKey {
		if home, err := os.UserHomeDir(); err == nil {
			c.KnownHostsFile = filepath.Join(home, ".ssh", "known_hosts")
		}
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Username == "" {
		return errors.New("username is required")
	}
	if c.Password == "" && c.KeyFile == "" {
		return errors.New("password or key_file is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if !c.InsecureIgnoreHostKey && c.KnownHostsFile == "" {
		return errors.New("known_hosts_file is required unless insecure_ignore_host_key is set")
	}
	return nil
}
