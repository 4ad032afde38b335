package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sorade/weebdl/internal/config"

	"github.com/spf13/cobra"
)

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available configs",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := config.ListConfigs()
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("No configs found. Run `weebdl config init` to create one.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
		_, _ = fmt.Fprintln(w, "LABEL\tPATH\tACTIVE")

		for _, c := range list {
			mark := ""
			if c.Active {
				mark = "yes"
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", c.Label, c.Path, mark)
		}

		return w.Flush()
	},
}

func init() {
	configCmd.AddCommand(configListCmd)
}
