package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dgallion1/riskhtml/internal/parser"
	"github.com/dgallion1/riskhtml/internal/pipeline"
)

func newInspectCmd(root *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Summarise the tables and rows decoded from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, filename, err := openInput(cmd, args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			conv := pipeline.NewConverter(parser.Options{
				PDFFallbackPdftotext: root.cfg.PDFFallbackPdftotext,
				PDFColumnGap:         root.cfg.PDFColumnGap,
			}, 1, nil)
			doc, err := conv.Parse(in, filename)
			if err != nil {
				return err
			}
			summary := doc.Stats()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TABLE\tROWS\tCELLS\tTITLE")
			for _, t := range summary.Tables {
				cells := fmt.Sprintf("%d", t.MaxCells)
				if t.MinCells != t.MaxCells {
					cells = fmt.Sprintf("%d-%d", t.MinCells, t.MaxCells)
				}
				fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", t.Index, t.Rows, cells, t.Title)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	return cmd
}
