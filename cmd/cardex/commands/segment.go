package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cardex/pkg/segment"
)

var segmentCmd = &cobra.Command{
	Use:   "segment [FILE]",
	Short: "Show how text is split into card blocks",
	Long: `Split a text file (or stdin) into candidate card blocks and print
each block, followed by the header lines that were dropped because their
block had no keyword section.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSegment,
}

func init() {
	rootCmd.AddCommand(segmentCmd)

	segmentCmd.Flags().Bool("repair", false, "normalize and repair line breaks first")
	segmentCmd.Flags().Bool("headers", false, "print only the first line of each block")
}

func runSegment(cmd *cobra.Command, args []string) error {
	_, l, err := setup()
	if err != nil {
		return err
	}

	repair, _ := cmd.Flags().GetBool("repair")
	headersOnly, _ := cmd.Flags().GetBool("headers")

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	if text, err = preprocessor(l, repair).Clean(text); err != nil {
		return err
	}

	res := segment.New(l).Segment(text)
	out := cmd.OutOrStdout()

	for i, block := range res.Blocks {
		if headersOnly {
			header, _, _ := strings.Cut(block, "\n")
			fmt.Fprintf(out, "%3d  %s\n", i+1, header)
			continue
		}
		fmt.Fprintf(out, "--- block %d ---\n%s\n", i+1, strings.TrimSpace(block))
	}

	if len(res.Dropped) > 0 {
		fmt.Fprintf(out, "\n--- dropped %d ---\n", len(res.Dropped))
		for _, h := range res.Dropped {
			fmt.Fprintln(out, h)
		}
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%d blocks, %d dropped\n", len(res.Blocks), len(res.Dropped))
	return nil
}
