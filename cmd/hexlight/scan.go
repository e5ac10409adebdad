package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/hexlight/internal/column"
	"github.com/dshills/hexlight/internal/decoration"
	"github.com/dshills/hexlight/internal/engine"
	"github.com/dshills/hexlight/internal/preview"
	"github.com/dshills/hexlight/internal/workspace"
)

func (c *cli) scanCmd() *cobra.Command {
	var (
		showPreview bool
		lineNumbers bool
	)
	cmd := &cobra.Command{
		Use:   "scan [--preview] FILE...",
		Short: "Report the color literals found in files",
		Long: `Scan each file and print one line per decorated color literal.
With --preview the files are printed with decorations applied as ANSI styles.

Examples:
  hexlight scan styles/main.css
  hexlight scan --preview --line-numbers theme.scss
  hexlight --render virtual scan --preview index.html`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []preview.Option{}
			if lineNumbers {
				opts = append(opts, preview.WithLineNumbers())
			}
			p := preview.New(cmd.OutOrStdout(), c.cfg.ColumnUnit, opts...)
			return c.scan(cmd.Context(), args, func(id string, lines []string, decs []decoration.Decoration) {
				if showPreview {
					fmt.Fprint(cmd.OutOrStdout(), p.Document(lines, decs))
					return
				}
				fmt.Fprint(cmd.OutOrStdout(), p.Report(id, entries(lines, decs, c.cfg.ColumnUnit)))
			})
		},
	}
	cmd.Flags().BoolVarP(&showPreview, "preview", "p", false, "print files with decorations applied")
	cmd.Flags().BoolVarP(&lineNumbers, "line-numbers", "n", false, "number preview lines")
	return cmd
}

// scan decorates every row of each file and hands the result to emit.
// Unreadable files are reported and skipped.
func (c *cli) scan(ctx context.Context, paths []string, emit func(id string, lines []string, decs []decoration.Decoration)) error {
	ws := workspace.New(nil)
	ns := decoration.NewStore()
	ctrl := engine.New(c.cfg, ws, ns)
	defer ctrl.Close()

	var failed int
	for _, path := range paths {
		id, err := ws.Open(ctx, path)
		if err != nil {
			fmt.Fprintf(c.errOut, "hexlight: %v\n", err)
			failed++
			continue
		}
		n, err := ws.LineCount(id)
		if err != nil {
			return err
		}
		lines, err := ws.Lines(id, 0, n)
		if err != nil {
			return err
		}
		if n > 0 {
			if err := ctrl.Highlight(ctx, id, 0, n-1); err != nil {
				fmt.Fprintf(c.errOut, "hexlight: %v\n", err)
			}
		}
		decs, err := ns.List(id)
		if err != nil {
			return err
		}
		emit(id, lines, decs)
	}
	if failed == len(paths) {
		return errors.New("no files could be read")
	}
	return nil
}

func entries(lines []string, decs []decoration.Decoration, unit column.Unit) []preview.Entry {
	out := make([]preview.Entry, 0, len(decs))
	for _, d := range decs {
		if d.Row >= len(lines) {
			continue
		}
		line := lines[d.Row]
		start := column.ToByte(line, d.StartCol, unit)
		end := column.ToByte(line, d.EndCol, unit)
		out = append(out, preview.Entry{
			Row:   d.Row,
			Col:   d.StartCol,
			Text:  line[start:end],
			Group: d.Group,
			Style: d.Style,
		})
	}
	return out
}
