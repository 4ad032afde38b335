package cmd

import (
	"fmt"

	"github.com/sorade/weebdl/internal/config"

	"github.com/spf13/cobra"
)

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the active config to default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		activePath, err := config.ActiveConfigPath()
		if err != nil {
			return err
		}

		if !confirm(fmt.Sprintf("Reset %s to default values?", activePath)) {
			fmt.Println("Aborted.")
			return nil
		}

		if err := config.SaveYAML(config.DefaultConfig(), activePath); err != nil {
			return err
		}

		fmt.Printf("Reset active config: %s\n", activePath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)
}
