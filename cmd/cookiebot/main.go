// Package main runs cookiebot: it opens Cookie Clicker in a browser and plays
// it until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/entrhq/cookiebot/pkg/browser"
	"github.com/entrhq/cookiebot/pkg/config"
	"github.com/entrhq/cookiebot/pkg/game"
	"github.com/entrhq/cookiebot/pkg/logging"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigFile  string
	Headless    bool
	ShowVersion bool
}

func main() {
	cli := parseFlags()

	if cli.ShowVersion {
		fmt.Printf("cookiebot v%s\n", version)
		return
	}

	out := newConsole(os.Stdout)

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		out.interrupted()
		cancel()
	}()

	if err := run(ctx, cli, out); err != nil {
		cancel()
		out.failed(err)
		os.Exit(1)
	}
	cancel()
}

// parseFlags parses command line flags
func parseFlags() *CLIConfig {
	cli := &CLIConfig{}

	flag.StringVar(&cli.ConfigFile, "config", "", "Path to configuration file (YAML)")
	flag.BoolVar(&cli.Headless, "headless", false, "Run the browser without a window")
	flag.BoolVar(&cli.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cookiebot - plays Cookie Clicker until you stop it\n\n")
		fmt.Fprintf(os.Stderr, "Usage: cookiebot [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	return cli
}

// run plays until ctx is cancelled. The browser is closed on every return
// path; a cancellation is a normal exit.
func run(ctx context.Context, cli *CLIConfig, out *console) error {
	cfg, err := config.Load(cli.ConfigFile)
	if err != nil {
		return err
	}
	if cli.Headless {
		cfg.Browser.Headless = true
	}

	if cfg.Logging.Dir != "" {
		logging.SetLogDirectory(cfg.Logging.Dir)
	}
	logger, logErr := logging.NewLogger("cookiebot")
	defer logger.Close()
	logger.SetLevel(logging.ParseLevel(cfg.Logging.Verbosity))
	if logErr != nil {
		logger.Warnf("file logging unavailable: %v", logErr)
	}

	out.banner(cfg.URL, cfg.BakeryName, logger.LogPath())

	session, err := browser.Launch(browser.Options{
		Headless: cfg.Browser.Headless,
		Viewport: &browser.Viewport{
			Width:  cfg.Browser.ViewportWidth,
			Height: cfg.Browser.ViewportHeight,
		},
		ClickTimeout: cfg.ClickTimeout,
		SkipInstall:  cfg.Browser.SkipInstall,
		Logger:       logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Quit(); err != nil {
			logger.Warnf("teardown: %v", err)
		}
	}()

	if err := startGame(ctx, session, cfg); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	bot := game.NewBot(session,
		game.WithLocators(cfg.Locators),
		game.WithClickWindow(cfg.ClickWindow),
		game.WithClickInterval(cfg.ClickInterval),
		game.WithLogger(logger),
		game.WithObserver(out),
	)

	err = bot.Run(ctx, cfg.BakeryName)
	if errors.Is(err, context.Canceled) {
		logger.Infof("stopped by user")
		return nil
	}
	if err != nil {
		logger.Errorf("run failed: %v", err)
	}
	return err
}

// startGame opens the game and waits until it is ready to be clicked.
func startGame(ctx context.Context, session *browser.Session, cfg *config.Config) error {
	if err := session.Open(cfg.URL); err != nil {
		return err
	}
	if err := session.WaitUntilPresent(cfg.Locators.PrimaryAction, cfg.StartupTimeout); err != nil {
		return err
	}

	// Clicking the instant the game appears sometimes fails.
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(cfg.SettleDelay):
		return nil
	}
}
