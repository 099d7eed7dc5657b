package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/calebhaines/go-rewrite/pkg/rewrite"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		pattern  string
		template string
		all      bool
		strict   bool
		mathMode bool
		varsFile string
	)

	cmd := &cobra.Command{
		Use:   "rewrite [input]",
		Short: "Render a template against regular expression matches",
		Long: `rewrite matches a regular expression against the input and renders a
replacement template for each match.

Template syntax: $0 is the whole match, $1/$2 reference groups by
position, $name by declared group name, and $(...) evaluates an
expression. Input is read from the argument, or from stdin when no
argument is given.`,
		Example: `  rewrite -p '([a-z]+)=(\d+)' -t '$1 is $($2 * 2)' --all 'a=1 b=2'
  echo '3 4' | rewrite -p '(\d+) (\d+)' -t '$(sqrt($1*$1 + $2*$2))' --math`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			opts := []rewrite.Option{
				rewrite.WithStrict(strict),
				rewrite.WithMath(mathMode),
			}
			if varsFile != "" {
				vars, err := loadVars(varsFile)
				if err != nil {
					return err
				}
				opts = append(opts, rewrite.WithVariables(vars))
			}

			rw, err := rewrite.New(pattern, template, opts...)
			if err != nil {
				return err
			}

			var out string
			if all {
				out, err = rw.TransformAll(input)
			} else {
				out, err = rw.Transform(input)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "regular expression to match")
	cmd.Flags().StringVarP(&template, "template", "t", "", "replacement template")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "replace every match instead of rendering only the first")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on unresolved references and evaluation errors")
	cmd.Flags().BoolVar(&mathMode, "math", false, "enable the math namespace in expressions")
	cmd.Flags().StringVar(&varsFile, "vars", "", "YAML file with template variables")
	_ = cmd.MarkFlagRequired("pattern")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

func loadVars(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vars file: %w", err)
	}
	vars := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &vars); err != nil {
		return nil, fmt.Errorf("parsing vars file: %w", err)
	}
	return vars, nil
}
