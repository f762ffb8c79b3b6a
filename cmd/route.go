package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/catalog"
	"github.com/abhisek/lexiz/internal/lesson"
	"github.com/abhisek/lexiz/internal/perf"
)

var routeCmd = &cobra.Command{
	Use:   "route --report <report.json> [--last-mode <mode>] <lesson-file>...",
	Short: "Pick the next lesson for an exported performance report",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRoute,
}

func init() {
	routeCmd.Flags().String("report", "", "Exported performance report (required)")
	routeCmd.Flags().String("last-mode", "", "Mode the report was recorded in (room2d, floatingBubble, picSelection)")
	_ = routeCmd.MarkFlagRequired("report")
}

func runRoute(cmd *cobra.Command, args []string) error {
	reportPath, _ := cmd.Flags().GetString("report")
	lastMode, _ := cmd.Flags().GetString("last-mode")
	mode := lesson.UIMode(lastMode)
	if mode != "" && !mode.Valid() {
		return fmt.Errorf("unknown mode %q", lastMode)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}
	rep, err := perf.DecodeReport(data)
	if err != nil {
		return err
	}

	cat, err := catalog.LoadFiles(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("load lessons: %w", err)
	}
	sum := rep.Summary()
	sum.LastMode = mode
	doc, d, ok := cat.Next(sum)
	if !ok {
		return fmt.Errorf("no lessons to route between")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "next:   %s (%s)\n", doc.LessonID, doc.Title)
	if d.Mode != "" {
		fmt.Fprintf(out, "mode:   %s\n", d.Mode)
	}
	fmt.Fprintf(out, "reason: %s\n", d.Reason)
	return nil
}
