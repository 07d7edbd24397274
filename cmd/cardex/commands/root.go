// Package commands implements the CLI commands for cardex.
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/cardex/internal/config"
	"github.com/jmylchreest/cardex/internal/logger"
	"github.com/jmylchreest/cardex/pkg/cleaner"
	"github.com/jmylchreest/cardex/pkg/layout"
)

var rootCmd = &cobra.Command{
	Use:   "cardex",
	Short: "Extract card records from catalog PDFs and compare extraction backends",
	Long: `Cardex turns the text of a printed card catalog into structured records.

Each card is found by its numbered header, split into its four labeled
sections and written as JSON, JSONL or YAML. Several PDF text backends
are supported; bench runs all of them on the same document and compares
record counts, output sizes and timings.

Examples:
  # Compare every backend on the default input
  cardex bench

  # Compare two backends, writing YAML into results/
  cardex bench -b pdf -b pdfcpu --format yaml --out-dir results

  # Parse with one backend
  cardex parse -b pdf data/tr_td.pdf -o cards.json

  # Inspect how a text dump is segmented
  cardex segment dump.txt`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	config.SetDefaults(viper.GetViper())

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default $HOME/.cardex.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.BoolP("quiet", "q", false, "only log errors")
	flags.Bool("log-json", false, "log as JSON")
	flags.String("layout", "", "catalog layout file (YAML)")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("debug", flags.Lookup("debug"))
	_ = viper.BindPFlag("quiet", flags.Lookup("quiet"))
	_ = viper.BindPFlag("log_json", flags.Lookup("log-json"))
	_ = viper.BindPFlag("layout", flags.Lookup("layout"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".cardex")
		viper.SetConfigType("yaml")
	}

	// Environment variables, e.g. CARDEX_BENCH_OUT_DIR
	viper.SetEnvPrefix("CARDEX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setup initializes logging and returns the decoded config and layout.
func setup() (*config.Config, layout.Layout, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, layout.Layout{}, err
	}

	if err := logger.Init(logger.Options{
		Debug: cfg.Debug,
		Quiet: cfg.Quiet,
		JSON:  cfg.LogJSON,
	}); err != nil {
		return nil, layout.Layout{}, err
	}
	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", "path", used)
	}

	l, err := cfg.LoadLayout()
	if err != nil {
		return nil, layout.Layout{}, err
	}
	return cfg, l, nil
}

// preprocessor returns the page cleaning used for text given on the
// command line: nothing, or normalization and line-break repair.
func preprocessor(l layout.Layout, repair bool) cleaner.Cleaner {
	if !repair {
		return cleaner.NewNoop()
	}
	return cleaner.NewChain(cleaner.NewUnicode(), cleaner.NewHeaderRepair(l))
}

// readInput reads the named file, or stdin when name is empty or "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}
