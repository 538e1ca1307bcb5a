package main

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spharm/spharm"
	"github.com/cwbudde/algo-spharm/wind"
)

// config carries the settings shared by every subcommand.
type config struct {
	UVar       string  `koanf:"u_var"`
	VVar       string  `koanf:"v_var"`
	Truncation int     `koanf:"truncation"`
	Omega      float64 `koanf:"omega"`
	Radius     float64 `koanf:"radius"`
}

func defaultConfig() config {
	return config{
		UVar:       "u",
		VVar:       "v",
		Truncation: wind.NoTruncation,
		Omega:      wind.DefaultOmega,
		Radius:     spharm.EarthRadius,
	}
}

// loadConfig merges a YAML file (if present) with SPHWIND_* environment
// variables over the defaults. Flags are applied afterwards by
// applyFlagOverrides.
func loadConfig(path string) (config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return config{}, err
		}
	}
	_ = k.Load(env.Provider("SPHWIND_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SPHWIND_"))
	}), nil)

	cfg := defaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return config{}, err
	}
	return cfg, nil
}

// applyFlagOverrides copies explicitly set flags into cfg, giving the
// command line the last word.
func applyFlagOverrides(cmd *cobra.Command, cfg *config) {
	flags := cmd.Root().PersistentFlags()
	if flags.Changed("u") {
		cfg.UVar, _ = flags.GetString("u")
	}
	if flags.Changed("v") {
		cfg.VVar, _ = flags.GetString("v")
	}
	if flags.Changed("truncation") {
		cfg.Truncation, _ = flags.GetInt("truncation")
	}
	if flags.Changed("omega") {
		cfg.Omega, _ = flags.GetFloat64("omega")
	}
	if flags.Changed("radius") {
		cfg.Radius, _ = flags.GetFloat64("radius")
	}
}
