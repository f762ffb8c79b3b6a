package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/lesson"
)

var validateCmd = &cobra.Command{
	Use:   "validate <lesson-file>...",
	Short: "Check lesson files",
	Long: `Decode and validate each lesson the way the player does. With --strict,
JSON lessons are also checked against the authoring schema.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Bool("strict", false, "Also lint JSON lessons against the authoring schema")
}

var errInvalidLessons = errors.New("some lessons are invalid")

func runValidate(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("strict")
	out := cmd.OutOrStdout()

	failed := 0
	for _, path := range args {
		if err := validateFile(path, strict); err != nil {
			failed++
			fmt.Fprintf(out, "FAIL  %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(out, "ok    %s\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d: %w", failed, len(args), errInvalidLessons)
	}
	return nil
}

func validateFile(path string, strict bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	format := lesson.FormatOf(path)
	if strict && format == "json" {
		if err := lesson.Lint(data); err != nil {
			return err
		}
	}
	_, err = lesson.Parse(data, format)
	return err
}
