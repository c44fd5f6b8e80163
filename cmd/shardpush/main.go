// Command shardpush uploads a raw (non-embedded) image-folder dataset to
// the Hugging Face Hub. Unlike shardset, labels are derived from file
// names rather than folder names and emitted into a metadata.csv per the
// imagefolder convention.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/backmassage/shardset/internal/config"
	"github.com/backmassage/shardset/internal/display"
	"github.com/backmassage/shardset/internal/hub"
	"github.com/backmassage/shardset/internal/logging"
)

var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Token resolution: .env (if present) feeds HF_TOKEN into the
	// environment before flags are parsed; --token still wins.
	_ = godotenv.Load()

	cfg := config.DefaultPushConfig()
	if err := config.ParsePushFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "shardpush: %v\n", err)
		return 1
	}
	if cfg.Token == "" {
		cfg.Token = os.Getenv("HF_TOKEN")
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "shardpush: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(cfg.ColorMode, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shardpush: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner()

	if _, err := os.Stat(cfg.DataDir); err != nil {
		log.Error("Data directory not found: %s", cfg.DataDir)
		return 1
	}

	log.Info("=== Shardpush v%s (%s) ===", version, commit)
	log.Info("Dir:  %s", cfg.DataDir)
	log.Info("Repo: %s", cfg.RepoID)
	if cfg.DryRun {
		log.Warn("DRY RUN — nothing will be uploaded")
	}
	log.Info("")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping…")
		cancel()
	}()

	client := hub.NewClient(cfg.BaseURL, cfg.Token)
	if err := hub.PushImageFolder(ctx, client, cfg.DataDir, cfg.RepoID, cfg.CommitMessage, cfg.DryRun, cfg.Verbose, log); err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}
