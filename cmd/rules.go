/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/samwightt/gqlcheck/pkg/render"
	"github.com/samwightt/gqlcheck/pkg/validator"
	"github.com/spf13/cobra"
)

type rulesOptions struct {
	defaultOnly bool
}

func formatRuleText(r RuleInfo) string {
	marker := " "
	if r.Default {
		marker = "*"
	}
	return fmt.Sprintf("%s %s # %s", marker, r.Name, r.Description)
}

func formatRulesPretty(rules []RuleInfo) string {
	t := render.Table("rule", "default", "description")
	for _, r := range rules {
		def := ""
		if r.Default {
			def = "yes"
		}
		t.Row(r.Name, def, r.Description)
	}
	return t.String()
}

func ruleInfos(defaultOnly bool) []RuleInfo {
	defaults := make(map[string]bool)
	for _, r := range validator.SpecifiedRules() {
		defaults[r.Name()] = true
	}
	infos := pluck(validator.All(), func(r validator.Rule) RuleInfo {
		return RuleInfo{Name: r.Name(), Description: r.Description(), Default: defaults[r.Name()]}
	})
	if defaultOnly {
		infos = filterSlice(infos, func(r RuleInfo) bool { return r.Default })
	}
	return infos
}

func NewRulesCmd() *cobra.Command {
	opts := &rulesOptions{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Lists the validation rules.",
		Long: `Lists every validation rule that can be selected with --rules.

Rules marked as default run when --rules is not given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer := render.Renderer[RuleInfo]{
				Data:         ruleInfos(opts.defaultOnly),
				TextFormat:   formatRuleText,
				PrettyFormat: formatRulesPretty,
			}
			output, err := renderer.Render(outputFormat)
			if err != nil {
				return fmt.Errorf("error rendering output: %w", err)
			}
			writeOutput(cmd, output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.defaultOnly, "default", false, "Only show rules that run by default")

	return cmd
}
