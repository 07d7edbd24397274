package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cardex/pkg/cleaner"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [FILE]",
	Short: "Remove rating-table noise from text",
	Long: `Run the noise cleaner over a text file (or stdin) and print the cleaned
text followed by removal statistics on stderr.

With --repair the text is first normalized and has its lost line breaks
restored, as the pipeline does for backends that clump lines.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	flags := cleanCmd.Flags()
	flags.Bool("repair", false, "normalize and repair line breaks before cleaning")
	flags.Bool("stats-only", false, "only show stats, don't output text")
	flags.Bool("json", false, "output stats as JSON")
}

func runClean(cmd *cobra.Command, args []string) error {
	_, l, err := setup()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	repair, _ := flags.GetBool("repair")
	statsOnly, _ := flags.GetBool("stats-only")
	jsonStats, _ := flags.GetBool("json")

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	if text, err = preprocessor(l, repair).Clean(text); err != nil {
		return err
	}

	cleaned, stats := cleaner.NewNoise(l).CleanWithStats(text)

	if !statsOnly {
		fmt.Fprintln(cmd.OutOrStdout(), cleaned)
	}

	stderr := cmd.ErrOrStderr()
	if jsonStats {
		enc := json.NewEncoder(stderr)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}
	fmt.Fprint(stderr, stats.String())
	return nil
}
