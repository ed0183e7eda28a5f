package main

import (
	"github.com/spf13/cobra"

	"github.com/arshsnaz/zidio-job-platform/internal/observability"
	"github.com/arshsnaz/zidio-job-platform/internal/scheduling"
	"github.com/arshsnaz/zidio-job-platform/internal/workflow"
)

var statesWithInterviews bool

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "Print the workflow transition table",
	Long:  "Prints every workflow state with its description, allowed target states and reviewer actions.",
	Args:  cobra.NoArgs,
	RunE:  runStates,
}

func init() {
	statesCmd.Flags().BoolVar(&statesWithInterviews, "interviews", false, "Also print the interview types")
	rootCmd.AddCommand(statesCmd)
}

func runStates(cmd *cobra.Command, _ []string) error {
	p := observability.NewPrinter(cmd.OutOrStdout())
	p.PrintStateCatalogue(workflow.Catalogue())
	if statesWithInterviews {
		p.PrintInterviewTypes(scheduling.AllTypes)
	}
	return nil
}
