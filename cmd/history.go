package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List exported performance reports",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().String("lesson", "", "Only show reports for this lesson id")
	historyCmd.Flags().Int("limit", 20, "Maximum number of reports (0 = all)")
	historyCmd.Flags().Int("prune", 0, "Keep only the N newest reports before listing")
}

func runHistory(cmd *cobra.Command, args []string) error {
	lessonID, _ := cmd.Flags().GetString("lesson")
	limit, _ := cmd.Flags().GetInt("limit")
	keep, _ := cmd.Flags().GetInt("prune")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	repo := st.ReportRepo()

	ctx := cmd.Context()
	if keep > 0 {
		if err := repo.Prune(ctx, keep); err != nil {
			return err
		}
	}
	reports, err := repo.List(ctx, store.QueryOpts{LessonID: lessonID, Limit: limit})
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No reports yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tLESSON\tFOUND\tPOPPED\tPICTURES\tSENTENCES\tATTEMPTS")
	for _, r := range reports {
		rep := r.Report
		fmt.Fprintf(w, "%d\t%s\t%s\t%d/%d\t%d/%d\t%d/%d\t%d\t%d\n",
			r.ID, rep.Timestamp, rep.LessonID,
			rep.Room2DFound, rep.Room2DTargets,
			rep.BubblePopped, rep.BubbleTotal,
			rep.PicCorrect, rep.PicTotal,
			rep.SentenceCorrect, rep.Attempts)
	}
	return w.Flush()
}
