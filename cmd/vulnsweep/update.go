package vulnsweep

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vulnsweep/vulnsweep/internal/update"
)

func init() {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update vulnsweep to the latest release",
		RunE: func(_ *cobra.Command, _ []string) error {
			latest, newer, err := update.Check(version, false)
			if err == nil && !newer {
				fmt.Fprintf(os.Stderr, "already up to date (v%s)\n", version)
				return nil
			}
			if latest != "" {
				fmt.Fprintf(os.Stderr, "updating to v%s...\n", latest)
			}
			return selfUpdate()
		},
	}
	rootCmd.AddCommand(cmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the vulnsweep version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("vulnsweep v" + version)
		},
	})
}
