package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"veritext/internal/detect"
	"veritext/internal/output"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Score text for machine-generation likelihood",
	Long: `Analyze scores text with the full detection ensemble and prints the
overall verdict plus a per-analyzer breakdown.

The input comes from a file argument (.txt, .pdf, or .docx), the --text
flag, or stdin when the argument is "-".

Examples:
  veritext analyze essay.txt
  veritext analyze report.pdf
  veritext analyze --text "The text to score..."
  cat draft.txt | veritext analyze -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("text", "", "analyze this text instead of a file")
	analyzeCmd.Flags().Bool("json", false, "output the full report as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	inline, _ := cmd.Flags().GetString("text")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	svc, closer, err := buildService(0)
	if err != nil {
		return err
	}
	defer closer()

	ctx := context.Background()
	var report detect.Report

	switch {
	case inline != "":
		report, err = svc.Analyze(ctx, inline)
	case len(args) == 1 && args[0] == "-":
		raw, readErr := io.ReadAll(os.Stdin)
		if readErr != nil {
			return fmt.Errorf("read stdin: %w", readErr)
		}
		report, err = svc.Analyze(ctx, string(raw))
	case len(args) == 1 && isDocument(args[0]):
		_, report, err = svc.AnalyzeFile(ctx, args[0])
	case len(args) == 1:
		raw, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return fmt.Errorf("read file: %w", readErr)
		}
		report, err = svc.Analyze(ctx, string(raw))
	default:
		return fmt.Errorf("provide a file argument, --text, or - for stdin")
	}
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return printReport(report)
}

func isDocument(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".docx":
		return true
	}
	return false
}

func printReport(report detect.Report) error {
	p := printer()

	p.Header("Detection Report")
	fmt.Printf("  Score:      %d/100\n", report.OverallScore)
	fmt.Printf("  Confidence: %d%%\n", report.Confidence)
	fmt.Printf("  Verdict:    %s\n", p.RiskBadge(report.RiskLevel))
	fmt.Println()

	table := newScoreTable(report.Scores)
	table.Render()
	fmt.Println()

	if len(report.EvidenceHighlights) > 0 {
		p.Header("Evidence")
		for _, h := range report.EvidenceHighlights {
			fmt.Printf("  - %s\n", h)
		}
		fmt.Println()
	}
	if len(report.Recommendations) > 0 {
		p.Header("Recommendations")
		for _, r := range report.Recommendations {
			fmt.Printf("  - %s\n", r)
		}
		fmt.Println()
	}
	if len(report.Degraded) > 0 {
		p.Warning("degraded analyzers: %s", strings.Join(report.Degraded, ", "))
	}
	return nil
}

func newScoreTable(s detect.AnalyzerScores) *output.Table {
	t := output.NewTable([]string{"ANALYZER", "RISK"})
	rows := []struct {
		name string
		risk int
	}{
		{"perplexity", s.Perplexity.Risk},
		{"burstiness", s.Burstiness.Risk},
		{"syntactic", s.Syntactic.Risk},
		{"coherence", s.Coherence.Risk},
		{"aiPhrases", s.AIPhrases.Risk},
		{"structural", s.Structural.Risk},
		{"vocabulary", s.Vocabulary.Risk},
		{"punctuation", s.Punctuation.Risk},
		{"consistency", s.Consistency.Risk},
		{"depth", s.Depth.Risk},
	}
	for _, r := range rows {
		t.AddRow([]string{r.name, strconv.Itoa(r.risk)})
	}
	return t
}
