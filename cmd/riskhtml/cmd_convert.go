package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dgallion1/riskhtml/internal/parser"
	"github.com/dgallion1/riskhtml/internal/pipeline"
)

func newConvertCmd(root *rootOptions) *cobra.Command {
	var (
		output   string
		parallel int
	)

	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Render a layout file to HTML",
		Long: `Decodes FILE (layout JSON, CSV, TSV, HTML, Markdown, DOCX or PDF) into
tables of rows, cells and lines and renders the nested-list register markup.
Use "-" to read layout JSON from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("parallel") {
				parallel = root.cfg.TableParallelism
			}
			log := root.log.With("trace_id", uuid.NewString(), "input", args[0])

			in, filename, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			conv := pipeline.NewConverter(parser.Options{
				PDFFallbackPdftotext: root.cfg.PDFFallbackPdftotext,
				PDFColumnGap:         root.cfg.PDFColumnGap,
			}, parallel, nil)

			doc, err := conv.Parse(in, filename)
			if err != nil {
				return err
			}
			log.Debug("parsed document", "tables", len(doc.Tables), "rows", pipeline.RowCount(doc))

			html, took, err := conv.Render(cmd.Context(), doc)
			if err != nil {
				return fmt.Errorf("convert %s: %w", args[0], err)
			}
			log.Debug("rendered document", "html_bytes", len(html), "duration_ms", took.Milliseconds())

			if output == "" || output == "-" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), html)
				return err
			}
			if err := os.WriteFile(output, []byte(html), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write HTML to this file instead of stdout")
	cmd.Flags().IntVar(&parallel, "parallel", 1, "Tables rendered concurrently (default from TABLE_PARALLELISM)")
	return cmd
}
