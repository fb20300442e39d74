// Command ledger runs the Base Blockchain Transaction System: an
// account-balance chain with proof-of-work mining, RSA-signed
// transactions, and AES-GCM sealed backups, driven by an interactive
// console menu or a handful of scripting subcommands.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ardanlabs/conf/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/cli"
	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/cli/cmd"
	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/consoleui"
	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/foundation/clock"
	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/foundation/logger"
	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/ledger"
	"github.com/MatthewNaumenko/base-blockchain-transaction-system/internal/oracle"
)

// build is the git version of this program, set at build time with
// -ldflags "-X main.build=...".
var build = "develop"

func main() {
	log, err := logger.New("LEDGER")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Ledger struct {
			Difficulty int    `conf:"default:4"`
			Workers    int    `conf:"default:0"`
			DataDir    string `conf:"default:zblock/"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "copyright information here",
		},
	}

	const prefix = "LEDGER"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	traceID := uuid.New().String()
	log = log.With("trace_id", traceID)

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	if err := os.MkdirAll(cfg.Ledger.DataDir, 0o700); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	// =========================================================================
	// Ledger Support

	ui := consoleui.New()
	ui.Banner()

	o := oracle.NewRSAGCM()

	l, err := ledger.New(ledger.Config{
		Clock:      clock.System{},
		Oracle:     o,
		Miner:      ledger.NewMiner(cfg.Ledger.Workers),
		Difficulty: cfg.Ledger.Difficulty,
	})
	if err != nil {
		return fmt.Errorf("initializing ledger: %w", err)
	}
	log.Infow("startup", "status", "genesis block mined", "height", l.Height())

	app, err := cli.NewApp(l, o, ui, log, cfg.Ledger.DataDir)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}

	// =========================================================================
	// Run the CLI

	return cmd.Execute(app)
}
