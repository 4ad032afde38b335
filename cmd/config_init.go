package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/sorade/weebdl/internal/config"

	"github.com/spf13/cobra"
)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the Default config",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Default configuration:")
		config.DefaultConfig().Print()
		fmt.Println()

		if !confirm("Create the Default config?") {
			fmt.Println("Aborted.")
			return nil
		}

		path, err := config.InitDefaultConfig()
		if errors.Is(err, os.ErrExist) {
			fmt.Println("Configuration already exists at:")
			fmt.Println("  ", path)
			fmt.Println("Use `weebdl config reset` to recreate it.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Println("Config created at:", path)
		fmt.Println("This config is now active (label: Default).")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
