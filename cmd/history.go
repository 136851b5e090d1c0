package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathsheet/internal/store"
	"github.com/abhisek/mathsheet/internal/ui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse saved worksheets",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved worksheets, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		sums, err := st.ListWorksheets(context.Background(), limit)
		if err != nil {
			return err
		}
		if len(sums) == 0 {
			fmt.Println("no saved worksheets (generate with --save)")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tSEED\tQUESTIONS")
		for _, s := range sums {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\n",
				s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.Seed, s.Questions)
		}
		return w.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved worksheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, _ := cmd.Flags().GetBool("answers")
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ws, err := st.GetWorksheet(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Print(ui.RenderWorksheet(ws, answers))
		return nil
	},
}

func init() {
	historyListCmd.Flags().Int("limit", 20, "Maximum worksheets to list")
	historyShowCmd.Flags().Bool("answers", false, "Include the answer key")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}
