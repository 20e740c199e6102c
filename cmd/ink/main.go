package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// ExitCodeError ends the program with Code. Err is printed first when it is
// not nil; a nil Err means the failure has already been reported.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:           "ink",
		Short:         "Parse and check ink stories",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(v); err != nil {
				return err
			}
			processGlobalFlags(v)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.ink.yaml)")
	flags.BoolP("verbose", "v", false, "Print timings and debug logging")
	flags.Bool("no-color", false, "Disable colored output")
	v.BindPFlag("config", flags.Lookup("config"))
	v.BindPFlag("verbose", flags.Lookup("verbose"))
	v.BindPFlag("no-color", flags.Lookup("no-color"))

	v.SetEnvPrefix("ink")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd.AddCommand(newParseCmd(v))
	rootCmd.AddCommand(newCheckCmd(v))
	rootCmd.AddCommand(newStripCmd(v))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// loadConfig reads the config file named by --config, or ~/.ink.yaml if it
// exists.
func loadConfig(v *viper.Viper) error {
	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		return v.ReadInConfig()
	}
	home, err := homedir.Dir()
	if err != nil {
		return nil
	}
	v.AddConfigPath(home)
	v.SetConfigName(".ink")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		code := 1
		var exitErr *ExitCodeError
		if errors.As(err, &exitErr) {
			code = exitErr.Code
			if exitErr.Err == nil {
				os.Exit(code)
			}
		}
		fatal(err, code)
	}
}
