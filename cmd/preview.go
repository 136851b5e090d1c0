package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathsheet/internal/problemgen"
	"github.com/abhisek/mathsheet/internal/ui"
	"github.com/abhisek/mathsheet/internal/worksheet"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview questions for a single skill (no database)",
	Long: `Generate sample questions for one skill code and print them with
their options, correct answer marked. A stateless developer tool for
evaluating question quality and distractor plausibility.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("skill", "", "Skill code, e.g. 2A1C (required)")
	previewCmd.Flags().Int("count", 5, "Number of questions to generate")
	previewCmd.Flags().Uint64("seed", 0, "Random seed (0 picks a random one)")
	_ = previewCmd.MarkFlagRequired("skill")
}

func runPreview(cmd *cobra.Command, args []string) error {
	code, _ := cmd.Flags().GetString("skill")
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetUint64("seed")

	registry := problemgen.NewRegistry()
	if !registry.Has(code) {
		return fmt.Errorf("unknown skill code %q: known codes are %s",
			code, strings.Join(registry.Codes(), ", "))
	}
	if seed == 0 {
		seed = rand.Uint64()
	}

	b := worksheet.NewBuilder()
	b.Logf = func(format string, a ...any) {
		fmt.Fprintf(os.Stderr, format+"\n", a...)
	}

	ws, err := b.Build(context.Background(), seed, []worksheet.SkillCount{{Code: code, Count: count}})
	if err != nil {
		return err
	}

	fmt.Printf("Skill %s, seed %d (* marks the correct option)\n\n", code, seed)
	for i, q := range ws.Questions {
		fmt.Print(ui.RenderQuestion(i+1, q))
		fmt.Println()
	}
	return nil
}
