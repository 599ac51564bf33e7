package main

import (
	"github.com/spf13/cobra"

	"ndca/internal/driver"
	"ndca/internal/ui"
)

var debugCmd = &cobra.Command{
	Use:   "debug [flags] [rule.ndca]",
	Short: "Step through a rule in the interactive debugger",
	Long:  `Open a terminal debugger that steps the interpreter one instruction at a time, showing the program counter and live variables`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDebugger,
}

func init() {
	debugCmd.Flags().Int("states", 0, "cell state count; overrides the manifest")
}

func runDebugger(cmd *cobra.Command, args []string) error {
	states, err := cmd.Flags().GetInt("states")
	if err != nil {
		return err
	}
	target, err := resolveRuleTarget(args, states)
	if err != nil {
		return err
	}
	src, err := loadSource(target)
	if err != nil {
		return err
	}

	rule, buildErr := driver.Build(src)
	if buildErr != nil {
		reportLangError(src, buildErr)
	}

	return ui.Run(target.Path, rule.Transition, target.StateCount)
}
