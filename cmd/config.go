package cmd

import (
	"errors"
	"fmt"
	"os"

	"watty-downloader/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default config",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective config",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	RootCmd.AddCommand(configCmd)
}

func configPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if flagConfig != "" {
		return flagConfig, nil
	}
	return config.DefaultPath()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := configPath(args)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("Overwrite existing config at %s", path),
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			if errors.Is(err, promptui.ErrAbort) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
			return err
		}
	}

	def := config.DefaultConfig()
	if err := def.Save(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Config created at:", path)
	def.Print(cmd.OutOrStdout())
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, source, err := config.LoadMerged(flagConfig, config.Options{Debug: flagDebug})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Config file:", source)
	cfg.Print(cmd.OutOrStdout())
	return nil
}
