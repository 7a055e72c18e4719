package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/angristan/hue-scenes/internal/api"
	"github.com/angristan/hue-scenes/internal/audio"
	"github.com/angristan/hue-scenes/internal/config"
	"github.com/angristan/hue-scenes/internal/logging"
	"github.com/angristan/hue-scenes/internal/tui"
)

const (
	appName          = "hue-scenes#cli"
	discoveryTimeout = 5 * time.Second
	pairingTimeout   = 30 * time.Second
)

const usage = `usage: hue-scenes [--demo] [--no-audio]
       hue-scenes pair [host]`

type cliOptions struct {
	demo     bool
	noAudio  bool
	pair     bool
	pairHost string
}

func parseArgs(args []string) (cliOptions, error) {
	var opts cliOptions
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--demo", "-demo":
			opts.demo = true
		case "--no-audio", "-no-audio":
			opts.noAudio = true
		case "pair":
			opts.pair = true
			if i+1 < len(args) {
				opts.pairHost = args[i+1]
				i++
			}
		default:
			return opts, fmt.Errorf("unknown argument %q", arg)
		}
	}
	return opts, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n%s\n", err, usage)
		os.Exit(2)
	}

	// A .env file is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if opts.demo {
		cfg.Demo = true
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if opts.pair {
		if err := pair(cfg, logger, opts.pairHost); err != nil {
			fmt.Fprintf(os.Stderr, "Error pairing: %v\n", err)
			_ = logger.Sync()
			os.Exit(1)
		}
		return
	}

	if cfg.Demo {
		fmt.Fprintln(os.Stderr, "[hue-scenes] Demo mode enabled")
	}

	model := tui.NewModel(tui.Options{
		Config: cfg,
		Bridge: selectBridge(cfg, logger),
		Player: selectPlayer(opts.noAudio),
		Logger: logger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting", zap.Bool("demo", cfg.Demo), zap.Bool("audio", !opts.noAudio))
	if _, err := p.Run(); err != nil {
		logger.Error("program failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

// selectBridge returns the demo bridge, the last paired bridge, or nil
// to run without lighting
func selectBridge(cfg *config.Config, logger *zap.Logger) api.BridgeClient {
	if cfg.Demo {
		return api.NewDemoBridge()
	}

	bridgeCfg, err := cfg.GetLastBridge()
	if err != nil {
		logger.Info("no bridge paired, running without lighting", zap.Error(err))
		return nil
	}
	logger.Info("using bridge", zap.String("host", bridgeCfg.Host), zap.String("bridge_id", bridgeCfg.BridgeID))
	return api.NewHueBridge(bridgeCfg.Host, bridgeCfg.Username, bridgeCfg.BridgeID)
}

func selectPlayer(noAudio bool) audio.Player {
	if noAudio {
		return &audio.Silent{}
	}
	return audio.NewSpeakerPlayer()
}

// pair creates an app key on host, discovering a bridge when host is
// empty, and saves it as the bridge to use
func pair(cfg *config.Config, logger *zap.Logger, host string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if host == "" {
		fmt.Println("Searching for Hue bridges...")
		bridges, err := api.Discover(ctx, discoveryTimeout)
		if err != nil {
			return fmt.Errorf("discovery failed: %w", err)
		}
		if len(bridges) == 0 {
			return errors.New("no bridges found, pass the bridge address: hue-scenes pair <host>")
		}
		for _, b := range bridges {
			fmt.Printf("  %s %s (%s)\n", b.Host, b.BridgeID, b.Source)
		}
		host = bridges[0].Host
	}

	fmt.Printf("Press the link button on the bridge at %s\n", host)
	appKey, err := api.CreateAppKey(ctx, host, appName, pairingTimeout)
	if err != nil {
		return err
	}

	bridgeID, err := api.BridgeIDFor(ctx, host, appKey)
	if err != nil {
		return err
	}

	cfg.AddBridge(config.BridgeConfig{
		Host:     host,
		Username: appKey,
		BridgeID: bridgeID,
	})
	cfg.LastBridgeID = bridgeID
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	logger.Info("bridge paired", zap.String("host", host), zap.String("bridge_id", bridgeID))
	fmt.Printf("Paired with bridge %s at %s\n", bridgeID, host)
	return nil
}
