package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/lesson"
	"github.com/abhisek/lexiz/internal/variant"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a lesson variant from the master template",
	Long: `Restrict the built-in classroom lesson to the chosen activities and print
it as JSON. Modes: room2d, picSelection, floatingBubble, sentenceBuilder.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringSlice("modes", nil, "Activities to keep, e.g. room2d,picSelection (required)")
	buildCmd.Flags().StringP("output", "o", "", "Write the lesson here instead of stdout")
	_ = buildCmd.MarkFlagRequired("modes")
}

func runBuild(cmd *cobra.Command, args []string) error {
	keys, _ := cmd.Flags().GetStringSlice("modes")
	outPath, _ := cmd.Flags().GetString("output")

	modes, err := variant.ParseModes(keys)
	if err != nil {
		return err
	}
	doc, err := variant.Build(modes)
	if err != nil {
		return err
	}
	data, err := lesson.Encode(doc)
	if err != nil {
		return fmt.Errorf("encode lesson: %w", err)
	}
	data = append(data, '\n')

	if outPath == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write lesson: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%s)\n", outPath, doc.LessonID)
	return nil
}
