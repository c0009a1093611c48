// Command newstriage classifies a batch of news articles and splits them into
// featured, best, worst and strictly objective sets.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"NewsTriage/internal/app"
	"NewsTriage/internal/config"
	"NewsTriage/internal/logging"
	"NewsTriage/internal/usecase"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "newstriage",
	Short:         "Multi-signal news classification and triage",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		cfg = config.Load(configFile)
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Logging.Level = level
		}
		logger = logging.New(cfg.Logging.Level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: $NEWS_TRIAGE_CONFIG)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	fetchCmd.Flags().String("source", "gnews", "article source strategy (gnews, rss)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(versionCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Analyze the input articles and write the bucket artifacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.New(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := application.Close(); cerr != nil {
				logger.Warn("shutdown", "error", cerr)
			}
		}()

		report, err := application.Run(cmd.Context())
		printReport(cmd.OutOrStdout(), report)
		if err != nil {
			return fmt.Errorf("run failed: %w", err)
		}
		return nil
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download raw articles into the input artifact",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")
		n, err := app.NewFetcher(cfg, source, logger).Run(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d articles to %s\n", n, cfg.Files.Input)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "newstriage %s (%s)\n", version, commit)
	},
}

func printReport(w io.Writer, r usecase.Report) {
	if r.Empty {
		fmt.Fprintln(w, r.Notice)
		return
	}
	if r.Loaded == 0 {
		return
	}
	fmt.Fprintf(w, "Run %s\n", r.RunID)
	fmt.Fprintf(w, "  loaded:        %d\n", r.Loaded)
	fmt.Fprintf(w, "  analyzed:      %d (skipped %d, low confidence %d)\n", r.Analyzed, r.Skipped, r.LowConfidence)
	fmt.Fprintf(w, "  featured:      %d\n", r.Featured)
	fmt.Fprintf(w, "  best:          %d\n", r.Best)
	fmt.Fprintf(w, "  worst:         %d\n", r.Worst)
	if r.Inconclusive > 0 {
		fmt.Fprintf(w, "  inconclusive:  %d\n", r.Inconclusive)
	}
	fmt.Fprintf(w, "  unrouted:      %d\n", r.Dropped)
	fmt.Fprintf(w, "  objective:     %d\n", r.Objective)
	if r.Archived > 0 {
		fmt.Fprintf(w, "  archived:      %d (%d seen before)\n", r.Archived, r.PreviouslySeen)
	}
}
