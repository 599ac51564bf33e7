package main

import (
	"fmt"
	"os"

	"ndca/internal/driver"
	"ndca/internal/lang"
	"ndca/internal/project"
	"ndca/internal/source"
)

const noManifestMessage = "no ndca.toml found\nplease specify the rule explicitly, e.g.:\n  ndca run path/to/rule.ndca"

// ruleTarget is the resolved input of a rule-consuming command: the source
// file plus the effective cell state count.
type ruleTarget struct {
	Path       string
	StateCount int
}

// resolveRuleTarget picks the rule file from the positional argument or,
// when none is given, from the ndca.toml governing the working directory.
// A --states flag value above zero wins over the manifest.
func resolveRuleTarget(args []string, statesFlag int) (ruleTarget, error) {
	target := ruleTarget{StateCount: driver.DefaultStateCount}

	manifest, found, err := project.Load(".")
	if err != nil {
		return target, err
	}
	if found && manifest.Config.Rule.States > 0 {
		target.StateCount = manifest.Config.Rule.States
	}
	if statesFlag > 0 {
		if !lang.ValidStateCount(statesFlag) {
			return target, fmt.Errorf("--states must be in 1..%d", lang.MaxStateCount)
		}
		target.StateCount = statesFlag
	}

	if len(args) > 0 {
		target.Path = args[0]
		return target, nil
	}
	if !found {
		return target, fmt.Errorf("%s", noManifestMessage)
	}
	target.Path, err = manifest.MainPath()
	return target, err
}

// loadSource reads and normalizes the rule file.
func loadSource(target ruleTarget) (*source.Source, error) {
	src, err := source.Load(target.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", target.Path, err)
	}
	return src, nil
}

// reportLangError renders a language error against its source and exits
// with a failure status.
func reportLangError(src *source.Source, err *lang.Error) {
	rendered := err.WithSource(src)
	if rendered.HasLine {
		fmt.Fprintf(os.Stderr, "%s:%d:%d: error[%s]\n", rendered.RulePath, rendered.Pos.Line, rendered.Pos.Col, rendered.Code)
		fmt.Fprintln(os.Stderr, rendered.String())
	} else {
		fmt.Fprintf(os.Stderr, "error[%s]: %s\n", rendered.Code, rendered.Message)
	}
	os.Exit(1)
}
