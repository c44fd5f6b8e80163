package config

// Flag parsing for the shardpush binary. Kept alongside the shardset flags
// so both binaries share the same defaults and color handling.

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
)

// PushConfig holds runtime settings for shardpush.
type PushConfig struct {
	// Positional args.
	DataDir string // Image-folder dataset root.
	RepoID  string // Hub dataset repo, e.g. "org/name".

	// Hub access.
	Token   string // From --token or HF_TOKEN (possibly via .env).
	BaseURL string // Default: https://huggingface.co. Overridable for tests/mirrors.

	// Behavior and display.
	CommitMessage string // Default: "Upload image folder dataset".
	DryRun        bool
	Verbose       bool
	ColorMode     ColorMode
	LogFile       string
}

// DefaultPushConfig returns a PushConfig with defaults applied.
func DefaultPushConfig() PushConfig {
	return PushConfig{
		BaseURL:       "https://huggingface.co",
		CommitMessage: "Upload image folder dataset",
		ColorMode:     ColorAuto,
	}
}

// ParsePushFlags parses os.Args into cfg for the shardpush binary.
func ParsePushFlags(cfg *PushConfig, version string) error {
	fs := flag.NewFlagSet("shardpush", flag.ContinueOnError)
	fs.Usage = func() { printPushUsage(version) }

	var showVersion, showHelp, forceColor, noColor bool

	fs.StringVar(&cfg.Token, "token", "", "Hub API token (default: HF_TOKEN env)")
	fs.StringVar(&cfg.Token, "t", "", "Same as --token")
	fs.StringVar(&cfg.CommitMessage, "message", cfg.CommitMessage, "Commit message")
	fs.StringVar(&cfg.CommitMessage, "m", cfg.CommitMessage, "Same as --message")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "List the upload plan; do not contact the Hub")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&showVersion, "V", false, "Same as --version")
	fs.BoolVar(&showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&showHelp, "h", false, "Same as --help")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	if noColor {
		cfg.ColorMode = ColorNever
	} else if forceColor {
		cfg.ColorMode = ColorAlways
	}

	if showHelp {
		printPushUsage(version)
		os.Exit(0)
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, "shardpush v"+version)
		os.Exit(0)
	}

	args := fs.Args()
	if len(args) != 2 {
		return fmt.Errorf("need exactly data_dir and repo_id")
	}
	cfg.DataDir = NormalizeDirArg(args[0])
	cfg.RepoID = args[1]
	return nil
}

// Validate checks the repo id shape and, outside dry-run, the token.
func (c *PushConfig) Validate() error {
	if c.DataDir == "" || c.RepoID == "" {
		return errors.New("need exactly data_dir and repo_id")
	}
	if strings.Count(c.RepoID, "/") != 1 {
		return fmt.Errorf("invalid repo id %q (use 'owner/name')", c.RepoID)
	}
	if !c.DryRun && c.Token == "" {
		return errors.New("no Hub token (pass --token or set HF_TOKEN)")
	}
	return nil
}

// printPushUsage writes the shardpush help text to stderr.
func printPushUsage(version string) {
	const col1 = 28
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "Shardpush v" + version + " — push an image-folder dataset to the Hub"},
		{"", ""},
		{"  shardpush [OPTIONS] <data_dir> <owner/name>", ""},
		{"", ""},
		{"  -t, --token <token>", "Hub API token (default: HF_TOKEN env)"},
		{"  -m, --message <text>", "Commit message"},
		{"  -d, --dry-run", "List the upload plan; do not contact the Hub"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
