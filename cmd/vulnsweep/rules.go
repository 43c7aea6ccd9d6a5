package vulnsweep

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/vulnsweep/vulnsweep/internal/engine"
)

var flagRulesFile string

func init() {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the active rule categories",
		RunE:  runRules,
	}
	cmd.Flags().StringVar(&flagRulesFile, "rules", "", "external rule file to list instead of the built-in set")
	rootCmd.AddCommand(cmd)
}

func runRules(_ *cobra.Command, _ []string) error {
	db, err := engine.Rules(engine.Config{RulesPath: flagRulesFile})
	if err != nil {
		return err
	}
	table := tablewriter.NewTable(os.Stdout)
	table.Header("Category", "Patterns", "Whitelist")
	for _, cat := range db.Categories() {
		r, _ := db.Rule(cat)
		table.Append([]string{
			cat,
			fmt.Sprintf("%d", len(r.Patterns)),
			fmt.Sprintf("%d", r.WhitelistSize()),
		})
	}
	table.Render()
	fmt.Printf("%d rules, %d patterns\n", db.Len(), db.PatternCount())
	return nil
}
