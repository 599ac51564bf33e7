package main

import (
	"github.com/spf13/cobra"

	"ndca/internal/ast"
	"ndca/internal/driver"
	"ndca/internal/parser"
	"ndca/internal/sema"
)

var astCmd = &cobra.Command{
	Use:   "ast [flags] [rule.ndca]",
	Short: "Dump a rule's flattened instruction listing",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runASTDump,
}

func init() {
	astCmd.Flags().Bool("no-flatten", false, "dump the structured tree instead of the flattened listing")
}

func runASTDump(cmd *cobra.Command, args []string) error {
	noFlatten, err := cmd.Flags().GetBool("no-flatten")
	if err != nil {
		return err
	}

	target, err := resolveRuleTarget(args, 0)
	if err != nil {
		return err
	}
	src, err := loadSource(target)
	if err != nil {
		return err
	}

	if noFlatten {
		file, parseErr := parser.Parse(src)
		if parseErr != nil {
			reportLangError(src, parseErr)
		}
		rule, checkErr := sema.Check(src, file)
		if checkErr != nil {
			reportLangError(src, checkErr)
		}
		ast.DumpFunction(cmd.OutOrStdout(), rule.Transition)
		return nil
	}

	rule, buildErr := driver.Build(src)
	if buildErr != nil {
		reportLangError(src, buildErr)
	}
	ast.DumpFunction(cmd.OutOrStdout(), rule.Transition)
	return nil
}
