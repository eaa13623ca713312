package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"hermes-payment-tracker/config"
	"hermes-payment-tracker/internal/adapter/storage"
	redisStorage "hermes-payment-tracker/internal/adapter/storage/redis"
	"hermes-payment-tracker/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var errNonDurable = errors.New("payment tracker is not durable")

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "trackerctl",
		Short:         "trackerctl - operator tool for the Hermes payment tracker",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to config file")

	rootCmd.AddCommand(probeCmd())
	rootCmd.AddCommand(getCmd())

	return rootCmd
}

// openTracker runs the same backend selection as the API server.
func openTracker(cmd *cobra.Command) (storage.Selection, *config.Config, func(), error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return storage.Selection{}, nil, nil, err
	}

	log := logger.NewWithWriter(cfg.Log.Level, cmd.ErrOrStderr())
	rdb := redisStorage.NewClient(cfg.Redis)
	sel := storage.NewPaymentTracker(cmd.Context(), rdb, cfg.Redis, cfg.Tracker, log)
	return sel, cfg, func() { rdb.Close() }, nil
}

func probeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Report which tracker backend the service would select",
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, cfg, closeFn, err := openTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "redis:   %s\n", cfg.Redis.Addr())
			if sel.Durable {
				fmt.Fprintln(out, "backend: redis (durable)")
				return nil
			}
			fmt.Fprintln(out, "backend: memory (NOT durable)")
			fmt.Fprintf(out, "reason:  %v\n", sel.Reason)

			if strict, _ := cmd.Flags().GetBool("strict"); strict {
				return errNonDurable
			}
			return nil
		},
	}

	cmd.Flags().Bool("strict", false, "Exit non-zero when only the in-memory backend is available")

	return cmd
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [payment-id]",
		Short: "Print a tracked payment as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paymentID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid payment id %q: %w", args[0], err)
			}

			sel, _, closeFn, err := openTracker(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			if !sel.Durable {
				return fmt.Errorf("%w: %v", errNonDurable, sel.Reason)
			}

			p, err := sel.Tracker.Payment(cmd.Context(), paymentID)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		},
	}
}
