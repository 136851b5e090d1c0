package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathsheet/internal/distractor"
	"github.com/abhisek/mathsheet/internal/llm"
	"github.com/abhisek/mathsheet/internal/skills"
	"github.com/abhisek/mathsheet/internal/store"
	"github.com/abhisek/mathsheet/internal/worksheet"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a worksheet",
	Long: `Generate a multiple-choice worksheet and write it as JSON.

The skill distribution is given as CODE:COUNT pairs, e.g.
--skills "2A1:5,2S1:5,T5:5,2M1:5". Without --skills the standard
20-question mix is used. A fixed --seed reproduces the exact worksheet.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("skills", "", "Skill distribution as CODE:COUNT,CODE:COUNT")
	generateCmd.Flags().Uint64("seed", 0, "Random seed (0 picks a random one)")
	generateCmd.Flags().String("out", "", "Output file (default stdout)")
	generateCmd.Flags().Bool("ai", false, "Supplement distractors via an LLM (needs an API key)")
	generateCmd.Flags().Bool("save", false, "Save the worksheet to the history database")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	distFlag, _ := cmd.Flags().GetString("skills")
	seed, _ := cmd.Flags().GetUint64("seed")
	outPath, _ := cmd.Flags().GetString("out")
	useAI, _ := cmd.Flags().GetBool("ai")
	save, _ := cmd.Flags().GetBool("save")

	dist := worksheet.DefaultDistribution()
	if distFlag != "" {
		var err error
		dist, err = worksheet.ParseDistribution(distFlag)
		if err != nil {
			return err
		}
	}

	if seed == 0 {
		seed = rand.Uint64()
	}

	ctx := context.Background()

	b := worksheet.NewBuilder()
	b.Logf = func(format string, a ...any) {
		fmt.Fprintf(os.Stderr, format+"\n", a...)
	}

	// The catalog is optional: it only enriches the AI prompt.
	if cachePath, err := skills.DefaultCachePath(); err == nil {
		if catalog, err := skills.Load(cachePath); err == nil {
			b.Catalog = catalog
		}
	}

	if useAI {
		cfg := llm.ConfigFromEnv()
		if cfg.Validate() != nil {
			discovered, ok := llm.DiscoverConfig()
			if !ok {
				return fmt.Errorf("--ai needs an API key: set MATHSHEET_LLM_PROVIDER and its key, or GEMINI_API_KEY / OPENAI_API_KEY / ANTHROPIC_API_KEY")
			}
			cfg = discovered
		}
		provider, err := llm.NewProvider(ctx, cfg)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}
		b.AI = distractor.NewAIGenerator(provider)
	}

	ws, err := b.Build(ctx, seed, dist)
	if err != nil {
		return err
	}

	if save {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return err
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.SaveWorksheet(ctx, ws); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved worksheet %s\n", ws.ID)
	}

	data, err := json.MarshalIndent(ws, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if outPath != "" {
		return os.WriteFile(outPath, data, 0o644)
	}
	_, err = os.Stdout.Write(data)
	return err
}
