package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/bessplan/config"
	"github.com/kilianp07/bessplan/connectors/ninja"
)

var profileOut string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Fetch the PV generation profile and write it as CSV",
	RunE:  fetchProfile,
}

func init() {
	profileCmd.Flags().StringVarP(&profileOut, "out", "o", "", "output file (defaults to stdout)")
	rootCmd.AddCommand(profileCmd)
}

func fetchProfile(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ti := cfg.Scenario.TimeIndex()
	profile := ninja.NewClient(cfg.Ninja.Token).FetchOrFallback(ctx, cfg.Ninja, ti.Len())
	if profile.Synthetic {
		fmt.Fprintln(os.Stderr, "warning: profile fetch failed, emitting synthetic data")
	}

	out := os.Stdout
	if profileOut != "" {
		f, err := os.Create(profileOut)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	cw := csv.NewWriter(out)
	if err := cw.Write([]string{"timestamp", "per_unit_output"}); err != nil {
		return err
	}
	for i, v := range profile.Values {
		rec := []string{
			ti.Time(i).Format(time.RFC3339),
			strconv.FormatFloat(v, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
