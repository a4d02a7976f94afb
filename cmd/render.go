package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/dataview-cli/internal/dataset"
	"github.com/KaramelBytes/dataview-cli/internal/pipeline"
	"github.com/KaramelBytes/dataview-cli/internal/preview"
	"github.com/KaramelBytes/dataview-cli/internal/source"
	"github.com/KaramelBytes/dataview-cli/internal/utils"
	"github.com/KaramelBytes/dataview-cli/internal/view"
)

const (
	formatJSON     = "json"
	formatMarkdown = "markdown"
	formatCSV      = "csv"
)

// renderFlags are shared by render and render-batch.
type renderFlags struct {
	view        string
	delimiter   string
	opts        []string
	optionsFile string
	search      string
	format      string
	sheetName   string
	sheetIndex  int
}

func (f *renderFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.view, "view", "", "view type (see 'dataview views'; default from config)")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", "", "delimiter: ';' | ',' | 'tab' | '|' (default from config, tab for .tsv; ignored for .xlsx)")
	cmd.Flags().StringArrayVar(&f.opts, "opt", nil, "view option as key=value (repeatable)")
	cmd.Flags().StringVar(&f.optionsFile, "options-file", "", "YAML or JSON file with view options")
	cmd.Flags().StringVar(&f.search, "search", "", "search term for searchableTable")
	cmd.Flags().StringVar(&f.format, "format", formatJSON, "output format: json | markdown | csv")
	cmd.Flags().StringVar(&f.sheetName, "sheet-name", "", "XLSX: sheet name to read")
	cmd.Flags().IntVar(&f.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}

// request resolves flags and config into a pipeline request for doc.
func (f *renderFlags) request(doc *source.Document) (pipeline.Request, error) {
	c := settings()
	var req pipeline.Request

	viewName := f.view
	if viewName == "" {
		viewName = c.DefaultView
	}
	t, err := view.ParseType(viewName)
	if err != nil {
		return req, err
	}

	var delim rune
	switch {
	case doc.FixedDelimiter:
		delim = doc.Delimiter
		if f.delimiter != "" {
			log.Debug().Str("source", doc.Name).Str("delimiter", f.delimiter).Msg("ignoring --delimiter for workbook source")
		}
	case f.delimiter != "":
		delim, err = dataset.ParseDelimiter(f.delimiter)
	case doc.Delimiter != 0:
		delim = doc.Delimiter
	default:
		delim, err = dataset.ParseDelimiter(c.DefaultDelimiter)
	}
	if err != nil {
		return req, err
	}

	opts, err := f.options()
	if err != nil {
		return req, err
	}
	return pipeline.Request{
		Text:      doc.Text,
		Delimiter: delim,
		View:      t,
		Options:   opts,
		Search:    f.search,
	}, nil
}

// options merges --options-file with --opt pairs; pairs win.
func (f *renderFlags) options() (map[string]any, error) {
	opts := map[string]any{}
	if f.optionsFile != "" {
		b, err := os.ReadFile(f.optionsFile)
		if err != nil {
			return nil, fmt.Errorf("read options file: %w", err)
		}
		// YAML is a superset of JSON
		if err := yaml.Unmarshal(b, &opts); err != nil {
			return nil, fmt.Errorf("parse options file: %w", err)
		}
	}
	for _, kv := range f.opts {
		k, v, ok := strings.Cut(kv, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --opt %q (use key=value)", kv)
		}
		opts[k] = v
	}
	return opts, nil
}

func (f *renderFlags) sourceOptions() source.Options {
	return source.Options{
		Sheet:      f.sheetName,
		SheetIndex: f.sheetIndex,
		Timeout:    fetchTimeout(),
	}
}

func (f *renderFlags) checkFormat() error {
	switch f.format {
	case formatJSON, formatMarkdown, formatCSV:
		return nil
	}
	return fmt.Errorf("unsupported --format: %s (use json|markdown|csv)", f.format)
}

// renderOne loads ref, renders it and returns the formatted output.
func renderOne(ctx context.Context, r *pipeline.Renderer, f *renderFlags, ref string) (*view.Result, []byte, error) {
	doc, err := source.Load(ctx, ref, f.sourceOptions())
	if err != nil {
		return nil, nil, err
	}
	req, err := f.request(doc)
	if err != nil {
		return nil, nil, err
	}
	res, err := r.Render(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", doc.Name, err)
	}
	log.Debug().Str("source", doc.Name).Str("encoding", doc.Encoding).Str("view", string(res.View)).Msg("rendered")
	out, err := formatResult(res, f.format, doc.Name, req.Delimiter)
	if err != nil {
		return nil, nil, err
	}
	return res, out, nil
}

func formatResult(res *view.Result, format, name string, delim rune) ([]byte, error) {
	switch format {
	case formatMarkdown:
		return []byte(preview.Markdown(res, name)), nil
	case formatCSV:
		if res.Table == nil {
			return nil, fmt.Errorf("csv output requires a table view, got %s", res.View)
		}
		tbl := &dataset.Table{Headers: res.Table.Headers, Rows: res.Table.Rows}
		s, err := tbl.Encode(delim)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	}
	return utils.PrettyJSON(res)
}

func printWarnings(w io.Writer, name string, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintf(w, "%s Warning: %s: %s\n", warnMark, name, msg)
	}
}

var renderFl renderFlags
var renderOutput string

var renderCmd = &cobra.Command{
	Use:   "render <file|url>",
	Short: "Render a CSV/TSV/XLSX source as a view model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := renderFl.checkFormat(); err != nil {
			return err
		}
		r, err := newRenderer()
		if err != nil {
			return err
		}
		res, out, err := renderOne(cmd.Context(), r, &renderFl, args[0])
		if err != nil {
			return err
		}
		printWarnings(cmd.ErrOrStderr(), args[0], res.Warnings)

		if renderOutput != "" {
			if err := utils.SafeWriteFile(renderOutput, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s view to %s\n", okMark, res.View, renderOutput)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(out), "\n"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderFl.bind(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "optional path to write the rendered output")
}
