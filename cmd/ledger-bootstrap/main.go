package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/crypto/ed25519"

	"lattice.dev/ledger/blockcodec"
	"lattice.dev/ledger/internal/config"
	"lattice.dev/ledger/ledger"
	"lattice.dev/ledger/ledgercache"
	"lattice.dev/ledger/primitives"
	"lattice.dev/ledger/store"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	defaults := config.NetworkDefaults("test")

	fs := flag.NewFlagSet("ledger-bootstrap", flag.ContinueOnError)
	fs.SetOutput(stderr)

	network := fs.String("network", defaults.Network, "network name (live|beta|test)")
	dataDir := fs.String("datadir", defaults.DataDir, "ledger data directory")
	logLevel := fs.String("log-level", defaults.LogLevel, "log level: debug|info|warn|error")
	genesisSeedHex := fs.String("genesis-seed", "", "hex-encoded 32-byte ed25519 seed for the genesis account (generated and printed if omitted)")
	dryRun := fs.Bool("dry-run", false, "print the effective config and generated genesis account, then exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.NetworkDefaults(*network)
	cfg.DataDir = *dataDir
	cfg.LogLevel = *logLevel
	if err := config.ValidateConfig(cfg); err != nil {
		_, _ = fmt.Fprintf(stderr, "invalid config: %v\n", err)
		return 2
	}

	var seed []byte
	if *genesisSeedHex != "" {
		s, err := hex.DecodeString(*genesisSeedHex)
		if err != nil || len(s) != ed25519.SeedSize {
			_, _ = fmt.Fprintf(stderr, "invalid -genesis-seed: expected %d hex-encoded bytes\n", ed25519.SeedSize)
			return 2
		}
		seed = s
	} else {
		s := make([]byte, ed25519.SeedSize)
		if _, err := rand.Read(s); err != nil {
			_, _ = fmt.Fprintf(stderr, "seed generation failed: %v\n", err)
			return 1
		}
		seed = s
	}
	priv := ed25519.NewKeyFromSeed(seed)
	var account primitives.Account
	copy(account[:], priv.Public().(ed25519.PublicKey))

	_, _ = fmt.Fprintf(stdout, "genesis_seed: %s\n", hex.EncodeToString(seed))
	_, _ = fmt.Fprintf(stdout, "genesis_account: %s\n", account.String())
	_, _ = fmt.Fprintf(stdout, "network: %s  datadir: %s  work_difficulty: %#x\n", cfg.Network, cfg.DataDir, cfg.MaxWorkGenerateDifficulty)
	if *dryRun {
		return 0
	}

	st, err := store.Open(cfg.DataDir)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "store open failed: %v\n", err)
		return 2
	}
	defer st.Close()

	blk := &blockcodec.Block{
		Kind:           blockcodec.KindState,
		Account:        account,
		Representative: account,
		Balance:        primitives.GenesisAmount,
	}
	hash, err := blk.Hash()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "genesis block hash failed: %v\n", err)
		return 1
	}
	blk.Work = primitives.GenerateWork(blk.Root(), cfg.MaxWorkGenerateDifficulty)
	kp := primitives.KeyPair{Public: priv.Public().(ed25519.PublicKey), Private: priv}
	blk.Signature = kp.Sign(hash)

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	cache := ledgercache.New()
	led := ledger.New(st, cache, cfg, logger)

	result, err := led.BootstrapAndCommit(blk)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "bootstrap failed: %v\n", err)
		return 1
	}
	if result.Code != ledger.VerdictProgress {
		_, _ = fmt.Fprintf(stderr, "bootstrap rejected: %s\n", result.Code)
		return 1
	}

	if err := st.InitManifest(&store.Manifest{
		SchemaVersion:  store.SchemaVersion,
		Network:        cfg.Network,
		GenesisAccount: account.String(),
	}); err != nil {
		_, _ = fmt.Fprintf(stderr, "manifest write failed: %v\n", err)
		return 1
	}

	_, _ = fmt.Fprintf(stdout, "genesis_hash: %s\n", hash.String())
	_, _ = fmt.Fprintf(stdout, "account_count=%d block_count=%d cemented_count=%d weight=%s\n",
		cache.AccountCount(), cache.BlockCount(), cache.CementedCount(), cache.Weight(account).String())
	return 0
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
