package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-spharm/ncwind"
	"github.com/cwbudde/algo-spharm/wind"
)

var sfvpCmd = &cobra.Command{
	Use:   "sfvp input.nc",
	Short: "Compute streamfunction and velocity potential",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vw, err := open(args[0])
		if err != nil {
			return err
		}
		sf, vp, err := vw.SFVP(cfg.Truncation)
		if err != nil {
			return err
		}
		return write(output("sfvp"), sf, vp)
	},
}

var vrtdivCmd = &cobra.Command{
	Use:   "vrtdiv input.nc",
	Short: "Compute relative vorticity and divergence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vw, err := open(args[0])
		if err != nil {
			return err
		}
		vrt, div, err := vw.VrtDiv(cfg.Truncation)
		if err != nil {
			return err
		}
		return write(output("vrtdiv"), vrt, div)
	},
}

var helmholtzCmd = &cobra.Command{
	Use:   "helmholtz input.nc",
	Short: "Decompose the wind into irrotational and non-divergent parts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vw, err := open(args[0])
		if err != nil {
			return err
		}
		uchi, vchi, upsi, vpsi, err := vw.Helmholtz(cfg.Truncation)
		if err != nil {
			return err
		}
		return write(output("helmholtz"), uchi, vchi, upsi, vpsi)
	},
}

var rwsCmd = &cobra.Command{
	Use:   "rws input.nc",
	Short: "Compute the Rossby wave source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vw, err := open(args[0])
		if err != nil {
			return err
		}
		s, err := vw.RossbyWaveSource(cfg.Omega, cfg.Truncation)
		if err != nil {
			return err
		}
		return write(output("rws"), s)
	},
}

func open(path string) (*ncwind.VectorWind, error) {
	logger.Debug("opening wind components",
		zap.String("file", path),
		zap.String("u", cfg.UVar),
		zap.String("v", cfg.VVar))
	vw, err := ncwind.OpenVectorWind(path, cfg.UVar, cfg.VVar, wind.WithRadius(cfg.Radius))
	if err != nil {
		return nil, err
	}
	logger.Info("wind loaded",
		zap.String("file", path),
		zap.Stringer("gridtype", vw.GridType()),
		zap.Int("nlat", len(vw.Latitudes())))
	return vw, nil
}

func write(path string, fields ...*ncwind.Field) error {
	if err := ncwind.WriteFields(path, fields...); err != nil {
		return err
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	logger.Info("diagnostics written", zap.String("file", path), zap.Strings("fields", names))
	return nil
}
