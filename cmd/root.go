package cmd

import (
	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagDebug  bool
)

var RootCmd = &cobra.Command{
	Use:           "watty-downloader",
	Short:         "Build EPUB books from serialized stories",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default is config.yaml in the user config directory)")
	RootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}
