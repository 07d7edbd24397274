package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cardex/internal/backends"
	"github.com/jmylchreest/cardex/internal/logger"
	"github.com/jmylchreest/cardex/internal/output"
	"github.com/jmylchreest/cardex/pkg/backend"
	"github.com/jmylchreest/cardex/pkg/backend/pdf"
	"github.com/jmylchreest/cardex/pkg/pipeline"
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Extract records from a document with one backend",
	Long: `Extract records from FILE with a single backend and write them to
stdout or to the file given by --output.

A text file can be parsed with --backend text. To repair a text dump the
way a particular backend's output is repaired, add --repair-as NAME.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	flags := parseCmd.Flags()
	flags.StringP("backend", "b", pdf.Name, "backend to use")
	flags.String("repair-as", "", "apply the repair registered for this backend name")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "json", "output format: json, jsonl, yaml")
	flags.Bool("compact", false, "disable pretty-printing of JSON")
}

func runParse(cmd *cobra.Command, args []string) error {
	_, l, err := setup()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	backendName, _ := flags.GetString("backend")
	repairAs, _ := flags.GetString("repair-as")
	outputFile, _ := flags.GetString("output")
	formatName, _ := flags.GetString("format")
	compact, _ := flags.GetBool("compact")

	format, err := output.ParseFormat(formatName)
	if err != nil {
		return err
	}

	b, err := backends.Get(backendName)
	if err != nil {
		return err
	}
	if repairAs != "" {
		b = renamed{Backend: b, name: repairAs}
	}

	p, err := pipeline.New(pipeline.WithLayout(l), pipeline.WithLogger(logger.Default()))
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	records, err := p.RunDocument(ctx, b, args[0])
	if err != nil {
		return err
	}
	logger.Info("parsed document", "backend", b.Name(), "records", len(records))

	opts := []output.WriterOption{output.WithPretty(!compact)}
	if outputFile != "" {
		_, err := output.WriteFile(outputFile, format, records, opts...)
		return err
	}

	w, err := output.NewWriter(cmd.OutOrStdout(), format, opts...)
	if err != nil {
		return err
	}
	if err := w.WriteAll(records); err != nil {
		return err
	}
	return w.Close()
}

// renamed reports another backend name, which selects that backend's
// repair in the pipeline.
type renamed struct {
	backend.Backend
	name string
}

func (r renamed) Name() string {
	return r.name
}
