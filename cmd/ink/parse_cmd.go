package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lucidbard/ink/ast"
	"github.com/lucidbard/ink/errors"
	"github.com/lucidbard/ink/parser"
)

func newParseCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a story and print its AST as JSON",
		Long: `Parse an ink story, including every file it INCLUDEs, and print
the resulting syntax tree as JSON.

Use -o to write the JSON to a file, or --write to write it next to the
input as <name>.ast.json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			sink := &errors.ConsoleSink{Out: cmd.ErrOrStderr(), Color: useColor(v, cmd.ErrOrStderr())}
			story, _, err := parseStory(cmd, v, path, sink)
			if err != nil {
				return err
			}

			outputFile := v.GetString("output")
			if outputFile == "" && v.GetBool("write") {
				outputFile = strings.TrimSuffix(path, filepath.Ext(path)) + ".ast.json"
			}
			if outputFile != "" {
				data, err := marshalJSON(nodeToJSON(story), v.GetBool("indent"), false)
				if err != nil {
					return err
				}
				if err := os.WriteFile(outputFile, append(data, '\n'), 0o644); err != nil {
					return fmt.Errorf("Could not write to output file '%s': %w", outputFile, err)
				}
				return nil
			}

			data, err := marshalJSON(nodeToJSON(story), v.GetBool("indent"), useColor(v, cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringP("output", "o", "", "Write the JSON to `file`")
	flags.Bool("write", false, "Write the JSON to <input>.ast.json")
	flags.BoolP("indent", "i", false, "Indent the JSON output")
	v.BindPFlag("output", flags.Lookup("output"))
	v.BindPFlag("write", flags.Lookup("write"))
	v.BindPFlag("indent", flags.Lookup("indent"))
	return cmd
}

// parseStory reads and parses the story at path, sending diagnostics to
// sink. It returns the source text along with the story. A story with fatal
// diagnostics yields an *ExitCodeError, as the diagnostics have already
// been reported.
func parseStory(cmd *cobra.Command, v *viper.Viper, path string, sink errors.Sink) (*ast.Story, string, error) {
	log := newLogger(v, cmd.ErrOrStderr())

	input, err := readSource(path)
	if err != nil {
		return nil, "", err
	}

	var story *ast.Story
	timeOperation(v, log, "Parsing", func() {
		story, err = parser.Parse(cmd.Context(), input,
			parser.WithFilename(path),
			parser.WithWorkingDir(filepath.Dir(path)),
			parser.WithSink(sink),
			parser.WithLogger(log),
		)
	})
	if err != nil {
		log.Debug().Err(err).Msg("parse failed")
		return nil, input, &ExitCodeError{Code: 1}
	}
	return story, input, nil
}
