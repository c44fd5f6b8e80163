package config

import (
	"strings"
	"testing"
)

// --- Config.Validate tests ---

func TestValidate_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InputDir = "/data/in"
	cfg.OutputDir = "/data/out"
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidate_MissingPaths(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without positional paths")
	}

	cfg.CheckOnly = true
	if err := cfg.Validate(); err == nil {
		t.Error("check mode still needs input_dir")
	}
	cfg.InputDir = "/data/in"
	if err := cfg.Validate(); err != nil {
		t.Errorf("check mode with input_dir should validate: %v", err)
	}
}

func TestValidate_Ranges(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero shard size", func(c *Config) { c.TargetShardSize = 0 }},
		{"negative sample size", func(c *Config) { c.SampleSize = -1 }},
		{"jpeg quality too low", func(c *Config) { c.JPEGQuality = 0 }},
		{"jpeg quality too high", func(c *Config) { c.JPEGQuality = 101 }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		cfg.InputDir = "/in"
		cfg.OutputDir = "/out"
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

// --- Path handling tests ---

func TestNormalizeDirArg(t *testing.T) {
	if got := NormalizeDirArg("/data/in///"); got != "/data/in" {
		t.Errorf("got %q, want /data/in", got)
	}
	if got := NormalizeDirArg("/"); got != "/" {
		t.Errorf("root: got %q, want /", got)
	}
}

func TestValidatePaths(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ValidatePaths("/data/in", "/data/in/out"); err == nil {
		t.Error("output inside input should be rejected")
	}
	if err := cfg.ValidatePaths("/data/in", "/data/in"); err == nil {
		t.Error("output equal to input should be rejected")
	}
	if err := cfg.ValidatePaths("/data/in", "/data/inout"); err != nil {
		t.Errorf("sibling with shared prefix should be accepted: %v", err)
	}
	if err := cfg.ValidatePaths("/data/in", "/data/out"); err != nil {
		t.Errorf("disjoint output should be accepted: %v", err)
	}
}

// --- Flag value adapter tests ---

func TestMebibytesValue(t *testing.T) {
	var bytes int64
	v := mebibytesValue{&bytes}
	if err := v.Set("420"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if bytes != 420*1024*1024 {
		t.Errorf("got %d, want %d", bytes, 420*1024*1024)
	}
	if v.String() != "420" {
		t.Errorf("String: got %q, want 420", v.String())
	}

	for _, bad := range []string{"", "abc", "-1", "0"} {
		if err := v.Set(bad); err == nil {
			t.Errorf("Set(%q): expected error", bad)
		}
	}
}

// --- PushConfig tests ---

func TestPushValidate(t *testing.T) {
	cfg := DefaultPushConfig()
	cfg.DataDir = "/data"
	cfg.RepoID = "owner/name"
	cfg.Token = "tok"
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid push config rejected: %v", err)
	}

	cfg.Token = ""
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "token") {
		t.Errorf("missing token should be rejected, got %v", err)
	}

	cfg.DryRun = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("dry run without token should validate: %v", err)
	}

	cfg.RepoID = "justname"
	if err := cfg.Validate(); err == nil {
		t.Error("repo id without owner should be rejected")
	}
	cfg.RepoID = "a/b/c"
	if err := cfg.Validate(); err == nil {
		t.Error("repo id with two slashes should be rejected")
	}
}
