package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ndca/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [rule.ndca]",
	Short: "Type-check a rule without running it",
	Long:  `Parse and type-check a rule. With --parity, additionally run it on both backends and verify they agree`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Bool("parity", false, "run both backends and compare outcomes")
	checkCmd.Flags().Bool("no-cache", false, "bypass the build cache")
	checkCmd.Flags().Int("states", 0, "cell state count; overrides the manifest")
}

func runCheck(cmd *cobra.Command, args []string) error {
	parity, err := cmd.Flags().GetBool("parity")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}
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

	out := cmd.OutOrStdout()

	// Fast path: serve an unchanged rule's verdict from the disk cache.
	// Parity runs always rebuild, they need the tree.
	if !parity && !noCache {
		if cache, cacheErr := driver.OpenDiskCache("ndca"); cacheErr == nil {
			payload, fromCache, buildErr := driver.CheckCached(cache, src)
			if buildErr != nil {
				reportLangError(src, buildErr)
			}
			if payload.Broken {
				// Cached failure; rebuild to render the diagnostic.
				_, rebuildErr := driver.Build(src)
				if rebuildErr != nil {
					reportLangError(src, rebuildErr)
				}
			}
			if !quiet {
				suffix := ""
				if fromCache {
					suffix = " (cached)"
				}
				fmt.Fprintf(out, "%s: ok, %d instructions, %d variables%s\n",
					target.Path, payload.InstrCount, len(payload.VarNames), suffix)
			}
			return nil
		}
	}

	rule, buildErr := driver.Build(src)
	if buildErr != nil {
		reportLangError(src, buildErr)
	}
	if !quiet {
		fmt.Fprintf(out, "%s: ok, %d instructions, %d variables\n",
			target.Path, len(rule.Transition.Statements), len(rule.Transition.Vars))
	}

	if !parity {
		return nil
	}

	results, agree, parityErr := driver.RunParity(cmd.Context(), rule, target.StateCount)
	if parityErr != nil {
		return parityErr
	}
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(out, "  %-8s fault %s: %s\n", r.Backend, r.Err.Code, r.Err.Message)
		} else {
			fmt.Fprintf(out, "  %-8s #%d\n", r.Backend, r.Value)
		}
	}
	if !agree {
		return fmt.Errorf("backends disagree")
	}
	if !quiet {
		fmt.Fprintln(out, "backends agree")
	}
	return nil
}
