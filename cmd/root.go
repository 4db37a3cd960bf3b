package cmd

import (
	"fundflow/global"

	"github.com/spf13/cobra"
)

var log = global.Log

var rootCmd = &cobra.Command{
	Use:   "fundflow",
	Short: "Fundflow tracks concept sector fund-flow and consecutive limit-up stocks.",
	Long:  `Please provide subcommand to take further actions.`,
}

//Execute is the entrance of this command-line framework
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
