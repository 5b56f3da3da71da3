package config

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

var testStrategies = []string{"cached", "golden", "linear", "walk"}

func parse(t *testing.T, args ...string) (AppConfig, error) {
	t.Helper()
	var errBuf bytes.Buffer
	return ParseConfig("miles2km", args, &errBuf, testStrategies)
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("ParseConfig() returned error: %v", err)
	}
	if cfg.Strategy != DefaultStrategy {
		t.Errorf("Strategy = %q, want %q", cfg.Strategy, DefaultStrategy)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %q, want %q", cfg.Port, DefaultPort)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.HasWork() {
		t.Error("empty invocation should have no work")
	}
}

func TestParseConfig_FibPath(t *testing.T) {
	cfg, err := parse(t, "--fib", "10")
	if err != nil {
		t.Fatalf("ParseConfig() returned error: %v", err)
	}
	if !cfg.FibSet || cfg.Fib != 10 {
		t.Errorf("Fib = %d (set=%v), want 10 (set)", cfg.Fib, cfg.FibSet)
	}
	if !cfg.HasWork() {
		t.Error("--fib should count as work")
	}
}

func TestParseConfig_FibShortAlias(t *testing.T) {
	cfg, err := parse(t, "-f", "7")
	if err != nil {
		t.Fatalf("ParseConfig() returned error: %v", err)
	}
	if !cfg.FibSet || cfg.Fib != 7 {
		t.Errorf("Fib = %d (set=%v), want 7 (set)", cfg.Fib, cfg.FibSet)
	}
}

func TestParseConfig_FibOutOfRange(t *testing.T) {
	if _, err := parse(t, "--fib", "94"); err == nil {
		t.Error("--fib 94 should be rejected (F(95) overflows uint64)")
	}
	if _, err := parse(t, "--fib", "-3"); err == nil {
		t.Error("--fib -3 should be rejected")
	}
	if _, err := parse(t, "--fib", "0"); err == nil {
		t.Error("--fib 0 should be rejected")
	}
	if _, err := parse(t, "--fib", "93"); err != nil {
		t.Errorf("--fib 93 is the maximum and should parse, got %v", err)
	}
}

func TestParseConfig_FibAndBasicAreExclusive(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := ParseConfig("miles2km", []string{"--fib", "5", "--basic", "2.5"}, &errBuf, testStrategies)
	if err == nil {
		t.Fatal("--fib and --basic together should be rejected")
	}
	if !strings.Contains(errBuf.String(), "both") {
		t.Errorf("error output %q should mention the conflicting options", errBuf.String())
	}
}

func TestParseConfig_NegativeBasicRejected(t *testing.T) {
	if _, err := parse(t, "--basic", "-1.5"); err == nil {
		t.Error("--basic -1.5 should be rejected")
	}
}

func TestParseConfig_UnknownStrategyRejected(t *testing.T) {
	if _, err := parse(t, "--strategy", "warp", "--basic", "2"); err == nil {
		t.Error("unknown strategy should be rejected")
	}
}

func TestParseConfig_StrategyAllAccepted(t *testing.T) {
	cfg, err := parse(t, "--strategy", "all", "--basic", "10")
	if err != nil {
		t.Fatalf("ParseConfig() returned error: %v", err)
	}
	if cfg.Strategy != "all" {
		t.Errorf("Strategy = %q, want all", cfg.Strategy)
	}
}

func TestParseConfig_StrategyIsCaseInsensitive(t *testing.T) {
	cfg, err := parse(t, "--strategy", "WALK", "--basic", "10")
	if err != nil {
		t.Fatalf("ParseConfig() returned error: %v", err)
	}
	if cfg.Strategy != "walk" {
		t.Errorf("Strategy = %q, want walk", cfg.Strategy)
	}
}

func TestParseConfig_Positionals(t *testing.T) {
	cfg, err := parse(t, "1.5", "abc", "10")
	if err != nil {
		t.Fatalf("ParseConfig() returned error: %v", err)
	}
	// Invalid positional values are skipped at conversion time, not here.
	if len(cfg.Positionals) != 3 {
		t.Errorf("Positionals = %v, want 3 entries", cfg.Positionals)
	}
}

func TestParseConfig_EnvOverride(t *testing.T) {
	t.Setenv(EnvPrefix+"STRATEGY", "golden")
	t.Setenv(EnvPrefix+"TIMEOUT", "2m")

	cfg, err := parse(t, "--basic", "10")
	if err != nil {
		t.Fatalf("ParseConfig() returned error: %v", err)
	}
	if cfg.Strategy != "golden" {
		t.Errorf("Strategy = %q, want env override golden", cfg.Strategy)
	}
	if cfg.Timeout != 2*time.Minute {
		t.Errorf("Timeout = %v, want env override 2m", cfg.Timeout)
	}
}

func TestParseConfig_FlagBeatsEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"STRATEGY", "golden")

	cfg, err := parse(t, "--strategy", "walk", "--basic", "10")
	if err != nil {
		t.Fatalf("ParseConfig() returned error: %v", err)
	}
	if cfg.Strategy != "walk" {
		t.Errorf("Strategy = %q, CLI flag must beat the environment", cfg.Strategy)
	}
}

func TestParseConfig_QuietBoolEnvForms(t *testing.T) {
	for _, val := range []string{"1", "true", "YES"} {
		t.Run(val, func(t *testing.T) {
			t.Setenv(EnvPrefix+"QUIET", val)
			cfg, err := parse(t, "--basic", "1")
			if err != nil {
				t.Fatalf("ParseConfig() returned error: %v", err)
			}
			if !cfg.Quiet {
				t.Errorf("QUIET=%s should enable quiet mode", val)
			}
		})
	}
}
