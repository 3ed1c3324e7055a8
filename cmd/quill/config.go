// ABOUTME: Config subcommands for inspecting and creating the config file.
// ABOUTME: Shows effective settings including flag overrides.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/quill/internal/config"
	"github.com/harper/quill/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Config:    %s", config.ConfigPath())
		if !config.ConfigExists() {
			fmt.Print(color.New(color.Faint).Sprint(" (not created, using defaults)"))
		}
		fmt.Println()
		fmt.Printf("Data dir:  %s\n", cfg.ResolvedDataDir())
		fmt.Print(ui.Separator())

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the config file",
	Long:  `Write the effective configuration to the config file. Flags given on the command line are saved too.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if config.ConfigExists() && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", config.ConfigPath())
		}
		if err := config.SaveConfig(cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Println(ui.Success("Wrote " + config.ConfigPath()))
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolP("force", "f", false, "overwrite an existing config file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
