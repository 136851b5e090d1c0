package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathsheet/internal/skills"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Manage the skill catalog",
}

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the cached skill catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := skillsCachePath(cmd)
		if err != nil {
			return err
		}
		catalog, err := skills.Load(path)
		if err != nil {
			return fmt.Errorf("no skill catalog at %s (run 'mathsheet skills update' or 'skills import'): %w", path, err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tLEVEL\tSKILL\tEXAMPLE")
		for _, s := range catalog.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.Code, s.DifficultyLevel, s.Name, s.Example)
		}
		return w.Flush()
	},
}

var skillsUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refresh the skill catalog from the remote endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, _ := cmd.Flags().GetString("url")
		if url == "" {
			url = os.Getenv("MATHSHEET_SKILLS_URL")
		}
		if url == "" {
			return fmt.Errorf("no catalog endpoint: pass --url or set MATHSHEET_SKILLS_URL")
		}
		path, err := skillsCachePath(cmd)
		if err != nil {
			return err
		}

		f := skills.NewFetcher(url, path)
		catalog, updated, err := f.Refresh(context.Background())
		if err != nil {
			return err
		}
		if updated {
			fmt.Printf("catalog updated: %d skills\n", catalog.Len())
		} else {
			fmt.Printf("catalog unchanged: %d skills\n", catalog.Len())
		}
		return nil
	},
}

var skillsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the skill catalog from a CSV export",
	RunE: func(cmd *cobra.Command, args []string) error {
		csvPath, _ := cmd.Flags().GetString("csv")
		if csvPath == "" {
			return fmt.Errorf("--csv is required")
		}
		f, err := os.Open(csvPath)
		if err != nil {
			return err
		}
		defer f.Close()

		list, err := skills.FromCSV(f)
		if err != nil {
			return fmt.Errorf("parse %s: %w", csvPath, err)
		}
		if _, err := skills.NewCatalog(list); err != nil {
			return fmt.Errorf("invalid catalog in %s: %w", csvPath, err)
		}

		path, err := skillsCachePath(cmd)
		if err != nil {
			return err
		}
		if err := skills.Save(path, list); err != nil {
			return err
		}
		fmt.Printf("imported %d skills to %s\n", len(list), path)
		return nil
	},
}

func init() {
	skillsUpdateCmd.Flags().String("url", "", "Catalog endpoint (overrides MATHSHEET_SKILLS_URL)")
	skillsImportCmd.Flags().String("csv", "", "CSV file to import (required)")

	skillsCmd.PersistentFlags().String("cache", "", "Catalog cache file (overrides MATHSHEET_SKILLS env var)")

	skillsCmd.AddCommand(skillsListCmd)
	skillsCmd.AddCommand(skillsUpdateCmd)
	skillsCmd.AddCommand(skillsImportCmd)
}

func skillsCachePath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("cache"); p != "" {
		return p, nil
	}
	return skills.DefaultCachePath()
}
