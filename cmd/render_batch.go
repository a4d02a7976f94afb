package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dataview-cli/internal/source"
	"github.com/KaramelBytes/dataview-cli/internal/utils"
)

var (
	rbFlags  renderFlags
	rbOutDir string
	rbQuiet  bool
	rbFailOK bool
)

// batchEntry records one input of a render-batch run.
type batchEntry struct {
	Source   string   `json:"source"`
	Output   string   `json:"output,omitempty"`
	View     string   `json:"view,omitempty"`
	Empty    bool     `json:"empty"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// batchManifest is written next to the outputs of each run.
type batchManifest struct {
	RunID    string       `json:"run_id"`
	Started  time.Time    `json:"started"`
	Format   string       `json:"format"`
	Entries  []batchEntry `json:"entries"`
	Failures int          `json:"failures"`
}

var renderBatchCmd = &cobra.Command{
	Use:   "render-batch <files...>",
	Short: "Render multiple sources into an output directory with progress and a run manifest",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := rbFlags.checkFormat(); err != nil {
			return err
		}
		files := expandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		if err := utils.EnsureDir(rbOutDir); err != nil {
			return fmt.Errorf("create out dir: %w", err)
		}
		r, err := newRenderer()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		m := batchManifest{RunID: uuid.NewString(), Started: time.Now().UTC(), Format: rbFlags.format}
		logger := log.With().Str("run_id", m.RunID).Logger()
		total := len(files)
		for i, path := range files {
			if !rbQuiet {
				fmt.Fprintf(out, "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			entry := batchEntry{Source: path}
			res, body, err := renderOne(cmd.Context(), r, &rbFlags, path)
			if err != nil {
				logger.Warn().Err(err).Str("source", path).Msg("render failed")
				if !rbFailOK {
					return err
				}
				entry.Error = err.Error()
				m.Failures++
				m.Entries = append(m.Entries, entry)
				if !rbQuiet {
					fmt.Fprintf(out, "%s Skipped %s: %v\n", warnMark, filepath.Base(path), err)
				}
				continue
			}

			outFile := utils.UniquePath(rbOutDir, outputBase(path, rbFlags.sheetName, string(res.View)), extension(rbFlags.format))
			if err := utils.SafeWriteFile(outFile, body); err != nil {
				return fmt.Errorf("write %s: %w", outFile, err)
			}
			entry.Output = filepath.Base(outFile)
			entry.View = string(res.View)
			entry.Empty = res.Empty
			entry.Warnings = res.Warnings
			m.Entries = append(m.Entries, entry)
			if !rbQuiet {
				printWarnings(cmd.ErrOrStderr(), filepath.Base(path), res.Warnings)
				fmt.Fprintf(out, "%s Wrote %s\n", okMark, entry.Output)
			}
		}

		b, err := utils.PrettyJSON(m)
		if err != nil {
			return err
		}
		manifest := filepath.Join(rbOutDir, "run-"+m.RunID+".json")
		if err := utils.SafeWriteFile(manifest, b); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
		logger.Info().Int("inputs", total).Int("failures", m.Failures).Msg("batch complete")
		if !rbQuiet {
			fmt.Fprintf(out, "%s Rendered %d/%d sources (run %s)\n", okMark, total-m.Failures, total, m.RunID)
		}
		return nil
	},
}

// expandInputs resolves globs and URLs, dropping duplicates. Local paths are sorted.
func expandInputs(args []string) []string {
	var files, urls []string
	seen := map[string]struct{}{}
	add := func(dst *[]string, s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		*dst = append(*dst, s)
	}
	for _, arg := range args {
		if source.IsURL(arg) {
			add(&urls, arg)
			continue
		}
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			add(&files, m)
		}
	}
	sort.Strings(files)
	return append(files, urls...)
}

func outputBase(path, sheet, viewName string) string {
	base := filepath.Base(path)
	if source.IsURL(path) {
		base = path[strings.LastIndex(path, "/")+1:]
	}
	safe := utils.Slug(strings.TrimSuffix(base, filepath.Ext(base)))
	if safe == "" {
		safe = "source"
	}
	if sheet != "" {
		ss := utils.Slug(sheet)
		if ss == "" {
			ss = "sheet"
		}
		safe += "__sheet-" + ss
	}
	return safe + "." + viewName
}

func extension(format string) string {
	switch format {
	case formatMarkdown:
		return ".md"
	case formatCSV:
		return ".csv"
	}
	return ".json"
}

func init() {
	rootCmd.AddCommand(renderBatchCmd)
	rbFlags.bind(renderBatchCmd)
	renderBatchCmd.Flags().StringVar(&rbOutDir, "out-dir", "dataview-out", "directory for rendered outputs and the run manifest")
	renderBatchCmd.Flags().BoolVar(&rbQuiet, "quiet", false, "suppress progress and non-essential output")
	renderBatchCmd.Flags().BoolVar(&rbFailOK, "keep-going", false, "record failed sources in the manifest instead of stopping")
}
