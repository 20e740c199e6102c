package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lucidbard/ink/errors"
)

func newCheckCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Parse a story and report its diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			collector := errors.NewCollector(nil)
			_, input, err := parseStory(cmd, v, path, collector)
			if input == "" && err != nil {
				return err
			}

			diagnostics := collector.Diagnostics()
			if len(diagnostics) > 0 {
				lines := strings.Split(input, "\n")
				formatted := make([]*errors.FormattedError, 0, len(diagnostics))
				for _, d := range diagnostics {
					source := ""
					if d.Filename == path && d.Line < len(lines) {
						source = strings.TrimRight(lines[d.Line], "\r")
					}
					formatted = append(formatted, d.ToFormatted(source))
				}
				f := errors.NewFormatter(useColor(v, cmd.ErrOrStderr()))
				fmt.Fprint(cmd.ErrOrStderr(), f.FormatMultiple(formatted))
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d warnings)\n", path, len(collector.Warnings()))
			return nil
		},
	}
}
