package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/hasherdb/internal/server/models"
	"github.com/dmitrijs2005/hasherdb/internal/server/poller"
)

var (
	lookback     time.Duration
	pollInterval time.Duration
)

// deletionsCmd represents the deletions command
var deletionsCmd = &cobra.Command{
	Use:   "deletions",
	Short: "Show assets deleted within the lookback window",
	Long: `Show deletion audit entries newer than now minus --lookback, oldest
first. Without --lookback the configured HASHER_DELETION_LOOKBACK is used.`,
	Args: cobra.NoArgs,
	RunE: runDeletions,
}

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the deletion audit log and print each new entry once",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func init() {
	deletionsCmd.Flags().DurationVarP(&lookback, "lookback", "l", 0, "Lookback window (e.g. 2m)")
	watchCmd.Flags().DurationVarP(&lookback, "lookback", "l", 0, "Lookback window (e.g. 2m)")
	watchCmd.Flags().DurationVarP(&pollInterval, "interval", "i", 0, "Delay between polls (e.g. 1m)")
}

// effectiveLookback prefers the flag over the configured window.
func effectiveLookback(cmd *cobra.Command) time.Duration {
	if cmd.Flags().Changed("lookback") {
		return lookback
	}
	return cfg.DeletionLookback
}

type deletionsResult struct {
	Entries []models.DeletionAuditEntry `json:"entries" yaml:"entries"`
	Count   int                         `json:"count" yaml:"count"`
}

func runDeletions(cmd *cobra.Command, args []string) error {
	entries, err := deletions.ListRecentDeletions(cmd.Context(), effectiveLookback(cmd))
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), outputFormat, deletionsResult{Entries: entries, Count: len(entries)})
}

func runWatch(cmd *cobra.Command, args []string) error {
	interval := cfg.PollInterval
	if cmd.Flags().Changed("interval") {
		interval = pollInterval
	}

	out := cmd.OutOrStdout()
	handler := poller.HandlerFunc(func(ctx context.Context, entries []models.DeletionAuditEntry) error {
		for _, e := range entries {
			if err := render(out, outputFormat, e); err != nil {
				return err
			}
		}
		return nil
	})

	p, err := poller.New(deletions, handler, logger, interval, effectiveLookback(cmd))
	if err != nil {
		return err
	}

	return p.Run(cmd.Context())
}
