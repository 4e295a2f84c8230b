package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/netrunnerdb/cardlint/internal/document"
	"github.com/netrunnerdb/cardlint/internal/report"
)

var fixFiles bool

// formatCmd represents the format command
var formatCmd = &cobra.Command{
	Use:   "format [path...]",
	Short: "Check or fix the canonical formatting of JSON files",
	Long: `Format checks that JSON files are in canonical form: keys sorted, four space
indentation and a trailing newline. Directories are searched recursively for
*.json files. Without arguments the repository base path is used.

With --fix, files that are not canonical are rewritten in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			base, _, _, err := resolvePaths(false)
			if err != nil {
				return err
			}
			args = []string{base}
		}

		files, err := jsonFiles(args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		results := report.NewTally(out)
		for _, path := range files {
			formatFile(results, path, fixFiles)
		}
		fmt.Fprintln(out, results.Summary(true))

		if results.ErrorCount() > 0 || (!fixFiles && results.FormattingCount() > 0) {
			return errValidationFailed
		}
		return nil
	},
}

func init() {
	formatCmd.Flags().BoolVar(&fixFiles, "fix", false, "rewrite files that are not correctly formatted")
}

// jsonFiles expands directories into the JSON files below them.
func jsonFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%s is not a valid path", path)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		matches, err := doublestar.Glob(os.DirFS(path), "**/*.json", doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("error searching %s: %w", path, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			files = append(files, filepath.Join(path, filepath.FromSlash(m)))
		}
	}
	return files, nil
}

func formatFile(results *report.Tally, path string, fix bool) {
	doc, err := document.Load(path)
	if err != nil {
		results.Record(report.Violation{Collection: "format", Message: err.Error()})
		return
	}
	ok, err := doc.IsCanonical()
	if err != nil {
		results.Record(report.Violation{Collection: "format", Message: fmt.Sprintf("%s: %v", path, err)})
		return
	}
	if ok {
		return
	}
	results.RecordFormatting(path)
	if fix {
		if err := doc.WriteCanonical(); err != nil {
			results.Record(report.Violation{Collection: "format", Message: fmt.Sprintf("%s: cannot write file: %v", path, err)})
		}
	}
}
