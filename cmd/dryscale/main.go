package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/niksy79/smart-scale-for-meat-dryer/internal/bootstrap"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/platform/config"
	"github.com/niksy79/smart-scale-for-meat-dryer/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string
	var logLevel string

	root := &cobra.Command{
		Use:           "dryscale",
		Short:         "Smart drying scale: session tracking, front panel, web monitor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", ".", "data directory")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: trace|debug|info|warn|error")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newServeCmd(&dataDir, &logLevel))
	root.AddCommand(newSessionCmd(&dataDir))
	root.AddCommand(newScaleCmd(&dataDir))
	root.AddCommand(newWipeCmd(&dataDir))
	return root
}

func loadApp(dataDir, logLevel string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, logging.New(logLevel))
}

// loadQuietApp is for one-shot commands whose stdout is the result.
func loadQuietApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, logging.Discard())
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal front panel",
		RunE: func(_ *cobra.Command, _ []string) error {
			// The TUI owns the terminal, so logs are discarded.
			app, err := loadQuietApp(*dataDir)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newServeCmd(dataDir, logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the device loop and web monitor headless",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir, *logLevel)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := bootstrap.RunServe(ctx, app); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}
}

func newSessionCmd(dataDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Drying session commands"}

	var target float64
	startCmd := &cobra.Command{
		Use:   "start <weight-grams>",
		Short: "Start a new drying session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadQuietApp(*dataDir)
			if err != nil {
				return err
			}
			weight, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid weight %q", args[0])
			}
			out, err := app.SessionCLI.Start(context.Background(), weight, target)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session %s started at %.1fg, target loss %.1f%%\n",
				out.SessionID, out.InitialWeight, out.TargetLoss)
			return nil
		},
	}
	startCmd.Flags().Float64Var(&target, "target", 0, "target loss percent (default 40)")

	recordCmd := &cobra.Command{
		Use:   "record <weight-grams>",
		Short: "Record today's weight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadQuietApp(*dataDir)
			if err != nil {
				return err
			}
			weight, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid weight %q", args[0])
			}
			out, err := app.SessionCLI.Record(context.Background(), weight)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "day %d: %.1fg, loss %.1f%%, change %.1fg\n",
				out.Day, out.Weight, out.LossPercent, out.DayChange)
			return nil
		},
	}

	endCmd := &cobra.Command{
		Use:   "end",
		Short: "End the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadQuietApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.SessionCLI.End(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session ended")
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show session status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadQuietApp(*dataDir)
			if err != nil {
				return err
			}
			s, err := app.SessionCLI.Status(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !s.Active {
				_, _ = fmt.Fprintln(w, "no active session")
				return nil
			}
			_, _ = fmt.Fprintf(w, "session %s, day %d\n", s.SessionID, s.CurrentDay)
			_, _ = fmt.Fprintf(w, "initial %.1fg, loss %.1f%% of %.1f%% (%.1f%% to go)\n",
				s.InitialWeight, s.CurrentLossPercent, s.TargetLossPercent, s.RemainingPercent)
			if s.DaysRemaining >= 0 {
				_, _ = fmt.Fprintf(w, "estimated %d day(s) remaining\n", s.DaysRemaining)
			} else {
				_, _ = fmt.Fprintln(w, "not enough data to estimate remaining days")
			}
			if s.Ready {
				_, _ = fmt.Fprintln(w, "target reached, ready")
			}
			return nil
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadQuietApp(*dataDir)
			if err != nil {
				return err
			}
			records, err := app.SessionCLI.History(context.Background())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no records")
				return nil
			}
			for _, r := range records {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "day %d\t%.1fg\tloss %.1f%%\tchange %.1fg\n",
					r.Day, r.Weight, r.LossPercent, r.DayChange)
			}
			return nil
		},
	}

	session.AddCommand(startCmd, recordCmd, endCmd, statusCmd, historyCmd)
	return session
}

func newScaleCmd(dataDir *string) *cobra.Command {
	scale := &cobra.Command{Use: "scale", Short: "Scale commands"}

	scale.AddCommand(&cobra.Command{
		Use:   "tare",
		Short: "Zero the scale",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadQuietApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.ScaleCLI.Tare(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "tared")
			return nil
		},
	})

	scale.AddCommand(&cobra.Command{
		Use:   "unit",
		Short: "Cycle the display unit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadQuietApp(*dataDir)
			if err != nil {
				return err
			}
			unit, err := app.ScaleCLI.CycleUnit(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "unit: %s\n", unit)
			return nil
		},
	})

	return scale
}

func newWipeCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "wipe",
		Short: "Delete all persisted session data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadQuietApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.SessionCLI.Wipe(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "all session data wiped")
			return nil
		},
	}
}
