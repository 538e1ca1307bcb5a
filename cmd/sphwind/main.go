// Command sphwind computes spherical harmonic wind diagnostics from
// NetCDF files.
//
// Usage:
//
//	sphwind [command] [flags] input.nc
//
// Commands: sfvp, vrtdiv, helmholtz, rws. Variable names, truncation and
// physical constants come from flags, a YAML config file or SPHWIND_*
// environment variables, in that order of precedence.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose    bool
	configPath string
	outPath    string

	cfg    config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sphwind",
	Short: "Spherical harmonic vector wind analysis",
	Long: `sphwind decomposes global wind fields with spherical harmonics.

It reads zonal and meridional wind components from a NetCDF file, infers
the grid layout from the latitude coordinate, and writes the requested
diagnostics to a new NetCDF file with coordinates attached.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}

		cfg, err = loadConfig(configPath)
		if err != nil {
			return err
		}
		applyFlagOverrides(cmd, &cfg)
		logger.Debug("configuration resolved",
			zap.String("u_var", cfg.UVar),
			zap.String("v_var", cfg.VVar),
			zap.Int("truncation", cfg.Truncation),
			zap.Float64("omega", cfg.Omega),
			zap.Float64("radius", cfg.Radius))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVarP(&outPath, "output", "o", "", "output file (default <command>.nc)")
	rootCmd.PersistentFlags().String("u", defaultConfig().UVar, "zonal wind variable name")
	rootCmd.PersistentFlags().String("v", defaultConfig().VVar, "meridional wind variable name")
	rootCmd.PersistentFlags().Int("truncation", defaultConfig().Truncation, "triangular truncation (negative keeps full resolution)")
	rootCmd.PersistentFlags().Float64("omega", defaultConfig().Omega, "planetary rotation rate in rad/s")
	rootCmd.PersistentFlags().Float64("radius", defaultConfig().Radius, "sphere radius in meters")

	rootCmd.AddCommand(sfvpCmd, vrtdivCmd, helmholtzCmd, rwsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sphwind: %v\n", err)
		os.Exit(1)
	}
}

// output returns the destination path for a subcommand's results.
func output(cmdName string) string {
	if outPath != "" {
		return outPath
	}
	return cmdName + ".nc"
}
