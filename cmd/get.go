package cmd

import (
	"fundflow/getd"
	"fundflow/util"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(conceptCmd)
	rootCmd.AddCommand(lianbanCmd)
	rootCmd.AddCommand(reportCmd)
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Run the full batch: concepts, limit-ups, history and report",
	Run: func(cmd *cobra.Command, args []string) {
		defer shutdownHook()
		getd.Get()
	},
}

var conceptCmd = &cobra.Command{
	Use:   "concept",
	Short: "Fetch the concept fund-flow ranking only",
	Run: func(cmd *cobra.Command, args []string) {
		defer shutdownHook()
		getd.GetConceptData()
	},
}

var lianbanCmd = &cobra.Command{
	Use:   "lianban",
	Short: "Fetch the consecutive limit-up listing only",
	Run: func(cmd *cobra.Command, args []string) {
		defer shutdownHook()
		getd.GetLimitUpData()
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Re-render the HTML report from persisted data",
	Run: func(cmd *cobra.Command, args []string) {
		defer shutdownHook()
		util.CheckErrNop(getd.RenderFromFiles(), "failed to render report")
	},
}

func shutdownHook() {
	if r := recover(); r != nil {
		if er, hasError := r.(error); hasError {
			log.Printf("caught error:%+v", er)
		}
	}
}
