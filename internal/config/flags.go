package config

// This file implements CLI flag parsing and help text for shardset.
// Flags are grouped into sharding, encoding, behavior, display, and utility.
// Negated flags (e.g. --no-stats) are applied after Parse so Config defaults
// hold unless set.

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error it returns non-nil (e.g. unknown flag, missing positional
// args). version is shown in --version and in the usage header.
func ParseFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("shardset", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	// Negated/override flags: we capture bools then apply to cfg after Parse,
	// so that defaults from DefaultConfig() hold unless the user passes the flag.
	var negated negatedFlags

	defineShardingFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg, &negated)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "shardset v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
// These either invert a default (e.g. noStats -> ShowSplitStats=false) or
// trigger exit (showHelp, showVersion).
type negatedFlags struct {
	noStats     bool
	skipExist   bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineShardingFlags registers --shard-size, --sample-size, --jpeg-quality.
func defineShardingFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var(&mebibytesValue{&cfg.TargetShardSize}, "shard-size", "Target shard size in MiB")
	fs.Var(&mebibytesValue{&cfg.TargetShardSize}, "s", "Same as --shard-size")
	fs.IntVar(&cfg.SampleSize, "sample-size", cfg.SampleSize, "Max examples sampled for size estimation")
	fs.IntVar(&cfg.JPEGQuality, "jpeg-quality", cfg.JPEGQuality, "JPEG quality for re-encoded output (1-100)")
}

// defineBehaviorFlags registers dry-run and skip-existing.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not write shards or side files")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&n.skipExist, "skip-existing", false, "Keep shard files that already exist")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.noStats, "no-stats", false, "Hide per-split statistics")
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run dataset diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated and override flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noStats {
		cfg.ShowSplitStats = false
	}
	if n.skipExist {
		cfg.SkipExisting = true
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets InputDir and OutputDir from the positional args.
// CheckOnly mode takes just the input directory.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		if len(args) != 1 {
			return fmt.Errorf("need exactly input_dir with --check")
		}
		cfg.InputDir = NormalizeDirArg(args[0])
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("need exactly input_dir and output_dir")
	}
	cfg.InputDir = NormalizeDirArg(args[0])
	cfg.OutputDir = NormalizeDirArg(args[1])
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "Shardset v" + version + " — image-folder dataset to sharded parquet"},
		{"", ""},
		{"  shardset [OPTIONS] <input_dir> <output_dir>", ""},
		{"", ""},
		{"Sharding", ""},
		{"  -s, --shard-size <MiB>", "Target shard size (default: 420)"},
		{"  --sample-size <n>", "Examples sampled for size estimation (default: 100)"},
		{"  --jpeg-quality <1-100>", "Quality for JPEG re-encodes (default: 95)"},
		{"", ""},
		{"Output & behavior", ""},
		{"  -d, --dry-run", "Preview only; do not write shards or side files"},
		{"  --skip-existing", "Keep shard files that already exist"},
		{"", ""},
		{"Display", ""},
		{"  --no-stats", "Hide per-split statistics"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check <input_dir>", "Dataset diagnostics (layout, labels, decode)"},
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

// mebibytesValue is a flag.Value adapter that parses a MiB count into a byte
// count, so --shard-size 420 sets TargetShardSize to 420*1024*1024.
type mebibytesValue struct{ p *int64 }

func (m *mebibytesValue) String() string {
	if m.p == nil || *m.p == 0 {
		return ""
	}
	return strconv.FormatInt(*m.p/(1024*1024), 10)
}

func (m *mebibytesValue) Set(s string) error {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return fmt.Errorf("invalid shard size %q (use positive MiB value, e.g. 420)", s)
	}
	*m.p = n * 1024 * 1024
	return nil
}
