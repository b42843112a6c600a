// Command kanjigraph repairs a loosely formatted kanji relation file and
// renders every character's dependency neighbourhood.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"kanjigraph/internal/config"
	"kanjigraph/internal/loader"
)

// app carries the state shared by all subcommands
type app struct {
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kanjigraph",
		Short: "Render kanji composition diagrams from a lenient relation file",
		Long: `kanjigraph reads a hand-written relation file where every character lists
the characters that compose it ("in") and the characters it helps compose
("out"). Missing braces, unquoted keys and trailing commas are repaired before
parsing. Each character is rendered as a diagram of its composition chain
(two levels deep) and up to five of the characters it composes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger == nil {
				logger, err := newLogger(a.verbose)
				if err != nil {
					return fmt.Errorf("failed to initialize logger: %w", err)
				}
				a.logger = logger
			}

			cfg, path, err := loadConfig(a.configPath, inputArg(cmd, args))
			if err != nil {
				return err
			}
			a.cfg = cfg
			if path != "" {
				a.logger.Debug("config loaded", zap.String("path", path))
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default: search $"+config.EnvConfigPath+", "+config.ConfigFileName+" beside INPUT and in ., ~/.config/kanjigraph)")
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)

	rootCmd.AddCommand(newExportCmd(a))
	rootCmd.AddCommand(newShowCmd(a))
	rootCmd.AddCommand(newConvertCmd(a))
	rootCmd.AddCommand(newWatchCmd(a))
	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func loadConfig(path, input string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load(input)
}

// annotationInputArgs marks commands whose first argument is the input
// file. Its value is the argument count at which that holds.
const annotationInputArgs = "kanjigraph/input-args"

func inputAnnotation(argCount int) map[string]string {
	return map[string]string{annotationInputArgs: strconv.Itoa(argCount)}
}

// inputArg returns the input file of the command being run, if it has one
func inputArg(cmd *cobra.Command, args []string) string {
	want, ok := cmd.Annotations[annotationInputArgs]
	if !ok || want != strconv.Itoa(len(args)) {
		return ""
	}
	return args[0]
}

// normalizeFlagName accepts snake_case spellings such as --output_dir
func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "output_dir":
		name = "output-dir"
	}
	return pflag.NormalizedName(name)
}

// reportError prints err for the user. Parse failures include the repaired
// text so a broken input can be told apart from a broken repair.
func reportError(w io.Writer, err error) {
	var parseErr *loader.ParseError
	if errors.As(err, &parseErr) {
		fmt.Fprintf(w, "Error parsing JSON: %v\n", parseErr.Err)
		fmt.Fprintln(w, "Content causing the error:")
		fmt.Fprintln(w, parseErr.Repaired)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}
