// Package config loads the curve and key parameters the CLI needs from a
// TOML file, falling back to the pedagogical defaults used throughout the
// worked examples (p = 103, A = 1, B = 0, a = 7).
package config

import (
	"math/big"

	"github.com/BurntSushi/toml"

	"github.com/vybium/bls-tate/pkg/blscore/blserr"
)

// Config is the on-disk representation of BLS setup parameters.
type Config struct {
	P          string `toml:"p"`
	A          int64  `toml:"a"`
	B          int64  `toml:"b"`
	PrivateKey string `toml:"private_key"`
	LogLevel   string `toml:"log_level"`
}

// Default returns the scenario used throughout the worked examples:
// p = 103, A = 1, B = 0, private key 7.
func Default() Config {
	return Config{
		P:          "103",
		A:          1,
		B:          0,
		PrivateKey: "7",
		LogLevel:   "info",
	}
}

// Load reads a TOML file at path and merges it over Default, so a config
// file only needs to set the fields it wants to override.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, blserr.New(blserr.InvalidParameter, "reading config %s: %v", path, err)
	}
	return cfg, nil
}

// PrimeModulus parses the configured field modulus.
func (c Config) PrimeModulus() (*big.Int, error) {
	p, ok := new(big.Int).SetString(c.P, 10)
	if !ok {
		return nil, blserr.New(blserr.InvalidParameter, "invalid field modulus %q", c.P)
	}
	return p, nil
}

// PrivateScalar parses the configured private key.
func (c Config) PrivateScalar() (*big.Int, error) {
	a, ok := new(big.Int).SetString(c.PrivateKey, 10)
	if !ok {
		return nil, blserr.New(blserr.InvalidParameter, "invalid private key %q", c.PrivateKey)
	}
	return a, nil
}
