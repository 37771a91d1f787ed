package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"veritext/internal/history"
	"veritext/internal/output"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past analysis and humanization runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the full stored report for a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize stored runs",
	RunE:  runHistoryStats,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete runs older than a cutoff",
	RunE:  runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd, historyStatsCmd, historyPruneCmd)

	historyListCmd.Flags().Int("limit", 20, "maximum runs to list")
	historyPruneCmd.Flags().Duration("older-than", 30*24*time.Hour, "delete runs older than this")
}

func openStore() (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, fmt.Errorf("history is disabled in configuration")
	}
	return history.NewStore(cfg.History.Path)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		printer().Info("No runs recorded")
		return nil
	}

	table := output.NewTable([]string{"ID", "KIND", "WHEN", "SCORE", "VERDICT"})
	for _, rec := range records {
		table.AddRow([]string{
			rec.ID,
			rec.Kind,
			rec.CreatedAt.Local().Format("2006-01-02 15:04"),
			strconv.Itoa(int(rec.Score)),
			rec.RiskLevel,
		})
	}
	table.Render()
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(args[0]); err != nil {
		return err
	}
	printer().Success("deleted %s", args[0])
	return nil
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	st, err := store.Stats()
	if err != nil {
		return err
	}
	p := printer()
	p.Header("History")
	fmt.Printf("  Total runs:    %d\n", st.Total)
	fmt.Printf("  Detections:    %d\n", st.DetectRuns)
	fmt.Printf("  Humanizations: %d\n", st.HumanizeRuns)
	fmt.Printf("  Average score: %.1f\n", st.AverageScore)
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	olderThan, _ := cmd.Flags().GetDuration("older-than")

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.PruneOlderThan(time.Now().Add(-olderThan))
	if err != nil {
		return err
	}
	printer().Success("pruned %d run(s)", n)
	return nil
}
