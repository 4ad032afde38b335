package cmd

import (
	"fmt"

	"github.com/sorade/weebdl/internal/config"

	"github.com/spf13/cobra"
)

var addFrom string

var configAddCmd = &cobra.Command{
	Use:   "add [label]",
	Short: "Create a new config, empty or copied from an existing YAML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var label string
		if len(args) == 1 {
			label = args[0]
		} else {
			var err error
			label, err = promptLine("Enter label for new config: ")
			if err != nil {
				return err
			}
		}

		var path string
		if addFrom != "" {
			if err := config.AddConfig(label, addFrom); err != nil {
				return err
			}
			var err error
			if path, err = config.ConfigPathByLabel(label); err != nil {
				return err
			}
		} else {
			var err error
			if path, err = config.CreateEmptyConfig(label); err != nil {
				return err
			}
		}

		fmt.Printf("Created new config: %s\n", path)
		fmt.Printf("Activate it with `weebdl config switch %s`.\n", label)
		return nil
	},
}

func init() {
	configAddCmd.Flags().StringVar(&addFrom, "from", "", "copy an existing YAML file instead of starting from defaults")
	configCmd.AddCommand(configAddCmd)
}
