package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ndca/internal/ast"
	"ndca/internal/driver"
	"ndca/internal/interp"
	"ndca/internal/lang"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [rule.ndca]",
	Short: "Execute a rule's transition function",
	Long:  `Build a rule and execute its transition function, printing the cell state it becomes`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExecution,
}

func init() {
	runCmd.Flags().String("backend", "interp", "execution backend (interp|compiled)")
	runCmd.Flags().Int("states", 0, "cell state count; overrides the manifest")
	runCmd.Flags().Bool("trace", false, "print each executed instruction to stderr (interp backend only)")
}

func runExecution(cmd *cobra.Command, args []string) error {
	backendName, err := cmd.Flags().GetString("backend")
	if err != nil {
		return err
	}
	backend, err := driver.ParseBackend(backendName)
	if err != nil {
		return err
	}
	states, err := cmd.Flags().GetInt("states")
	if err != nil {
		return err
	}
	trace, err := cmd.Flags().GetBool("trace")
	if err != nil {
		return err
	}
	if trace && backend != driver.BackendInterp {
		return errors.New("--trace requires the interp backend")
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

	var result lang.CellState
	var runErr *lang.Error
	if trace {
		result, runErr = runTraced(cmd, rule, target.StateCount)
	} else {
		result, runErr = driver.Run(rule, backend, target.StateCount)
	}
	if runErr != nil {
		reportLangError(src, runErr)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "#%d\n", result)
	return nil
}

// runTraced single-steps the interpreter, echoing each instruction with
// its program counter before executing it.
func runTraced(cmd *cobra.Command, rule *ast.Rule, stateCount int) (lang.CellState, *lang.Error) {
	st, err := interp.New(rule.Transition, stateCount)
	if err != nil {
		return 0, err
	}
	out := cmd.ErrOrStderr()
	for {
		if st.PC >= 0 && st.PC < len(st.Instructions) {
			fmt.Fprintf(out, "%4d  %s\n", st.PC, ast.StmtString(&st.Instructions[st.PC].Inner))
		}
		res, err := st.Step()
		if err != nil {
			return 0, err
		}
		if res.Done {
			if res.Value.Kind != lang.VKCellState {
				return 0, lang.Internalf("transition function produced value other than cell state: %s", res.Value)
			}
			return res.Value.Cell, nil
		}
	}
}
