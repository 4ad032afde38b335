package cmd

import (
	"fmt"

	"github.com/sorade/weebdl/internal/config"

	"github.com/spf13/cobra"
)

var forceRemove bool

var configRemoveCmd = &cobra.Command{
	Use:   "remove <label>",
	Short: "Remove a config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := args[0]

		active, _ := config.CurrentLabel()
		if label == active && !forceRemove {
			if !confirm(fmt.Sprintf("Config %q is currently active. Remove it anyway?", label)) {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := config.RemoveConfig(label, forceRemove); err != nil {
			return err
		}

		fmt.Printf("Removed configuration %q\n", label)
		return nil
	},
}

func init() {
	configRemoveCmd.Flags().BoolVarP(&forceRemove, "force", "f", false, "remove without confirmation")
	configCmd.AddCommand(configRemoveCmd)
}
