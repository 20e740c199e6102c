package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lucidbard/ink/preprocess"
)

func newStripCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "strip <file>",
		Short: "Print a story with its comments removed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readSource(args[0])
			if err != nil {
				return err
			}
			var stripped string
			timeOperation(v, newLogger(v, cmd.ErrOrStderr()), "Stripping comments", func() {
				stripped = preprocess.StripComments(input)
			})
			fmt.Fprint(cmd.OutOrStdout(), stripped)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ink %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
