package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/ed25519"
)

// Config holds the construction-time parameters for a ledger core
// instance: network selection, storage location, and the knobs the
// validation engine consults (epoch-signer keys, work difficulty, pruning).
type Config struct {
	Network                  string                      `json:"network"`
	DataDir                  string                       `json:"data_dir"`
	Pruning                  bool                         `json:"pruning"`
	BootstrapWeightMaxBlocks uint64                       `json:"bootstrap_weight_max_blocks"`
	EpochSignerKeys          map[uint8]ed25519.PublicKey  `json:"-"`
	MaxWorkGenerateDifficulty uint64                      `json:"max_work_generate_difficulty"`
	LogLevel                 string                       `json:"log_level"`
}

var allowedNetworks = map[string]struct{}{
	"live": {},
	"beta": {},
	"test": {},
}

// difficultyForNetwork returns the default work-validation threshold for a
// network. Live uses the full production bar; beta and test lower it so a
// CLI or test suite can generate valid work by brute force in a reasonable
// time instead of needing dedicated mining hardware.
func difficultyForNetwork(network string) uint64 {
	switch network {
	case "live":
		return 0xffffffc000000000
	case "beta":
		return 0xfff0000000000000
	default:
		return 0xff00000000000000
	}
}

var allowedLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// DefaultDataDir mirrors the "always return a usable path, never fail"
// habit: fall back to a relative directory if the home directory can't be
// resolved rather than erroring out of config construction.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".lattice-ledger"
	}
	return filepath.Join(home, ".lattice-ledger")
}

// DefaultConfig returns a safe, non-production default: test network,
// pruning disabled, a conservative work difficulty.
func DefaultConfig() Config {
	return Config{
		Network:                   "test",
		DataDir:                   DefaultDataDir(),
		Pruning:                   false,
		BootstrapWeightMaxBlocks:  100_000,
		EpochSignerKeys:           map[uint8]ed25519.PublicKey{},
		MaxWorkGenerateDifficulty: difficultyForNetwork("test"),
		LogLevel:                  "info",
	}
}

// NetworkDefaults returns DefaultConfig with Network and its matching
// work-difficulty threshold set to network. Callers that only want to pick
// a network (rather than build a Config field by field) should start here.
func NetworkDefaults(network string) Config {
	cfg := DefaultConfig()
	cfg.Network = network
	cfg.MaxWorkGenerateDifficulty = difficultyForNetwork(network)
	return cfg
}

// ValidateConfig reports the first invalid field, following the
// accumulate-nothing, fail-on-first-problem style used throughout this
// codebase's config validation.
func ValidateConfig(cfg Config) error {
	network := strings.ToLower(strings.TrimSpace(cfg.Network))
	if _, ok := allowedNetworks[network]; !ok {
		return fmt.Errorf("invalid network %q", cfg.Network)
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		return errors.New("data_dir is required")
	}
	logLevel := strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if _, ok := allowedLogLevels[logLevel]; !ok {
		return fmt.Errorf("invalid log_level %q", cfg.LogLevel)
	}
	if cfg.MaxWorkGenerateDifficulty == 0 {
		return errors.New("max_work_generate_difficulty must be > 0")
	}
	for epoch, key := range cfg.EpochSignerKeys {
		if len(key) != ed25519.PublicKeySize {
			return fmt.Errorf("epoch %d signer key: expected %d bytes, got %d", epoch, ed25519.PublicKeySize, len(key))
		}
	}
	return nil
}
