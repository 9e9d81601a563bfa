package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"config-splitter/internal/analyze"
	"config-splitter/internal/gen"
	"config-splitter/internal/plan"
	"config-splitter/internal/service"
)

var (
	splitOutDir string
	splitDryRun bool
	splitJSON   bool
	splitFlags  selectionFlags
)

var splitCmd = &cobra.Command{
	Use:   "split FILE",
	Short: "Split a configuration into section files",
	Long: `Split writes every selected top-level section of FILE to its own file.

Without selection flags every section is split and the configured policy
decides which second-level blocks get files of their own: keep-first moves
all but the first child of a section with two or more children, inline
keeps them all in place.

Examples:
  # Split everything with the configured policy
  config-splitter split config.yaml --out-dir config.d

  # Split only appearance and move its dashboard block out
  config-splitter split config.yaml --split appearance.dashboard

  # Move the top-level athlete section under general and keep the rest
  # in a custom file
  config-splitter split config.yaml --include 'general' --split general.athlete \
    --custom-file config-rest.yaml
`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().StringVarP(&splitOutDir, "out-dir", "o", "", "directory for the section files (default from config)")
	splitCmd.Flags().BoolVar(&splitDryRun, "dry-run", false, "print the files that would be written")
	splitCmd.Flags().BoolVar(&splitJSON, "json", false, "print the split response as JSON")
	splitCmd.Flags().StringSliceVar(&splitFlags.include, "include", nil, "glob patterns of sections to split")
	splitCmd.Flags().StringSliceVar(&splitFlags.split, "split", nil, "section.child patterns of blocks moved to their own files")
	splitCmd.Flags().StringVar(&splitFlags.remaining, "remaining", "", "where unselected sections go: original, custom or merge")
	splitCmd.Flags().StringVar(&splitFlags.customFile, "custom-file", "", "file receiving unselected sections")
	splitCmd.Flags().StringVar(&splitFlags.mergeInto, "merge-into", "", "produced file receiving unselected sections")
}

// splitOptions is everything one split run needs.
type splitOptions struct {
	input     string
	outDir    string
	dryRun    bool
	json      bool
	selection selectionFlags
}

func runSplit(cmd *cobra.Command, args []string) error {
	outDir := splitOutDir
	if outDir == "" {
		outDir = appConfig.Split.OutputDir
	}

	opts := splitOptions{
		input:     args[0],
		outDir:    outDir,
		dryRun:    splitDryRun,
		json:      splitJSON,
		selection: splitFlags,
	}

	return executeSplit(cmd.Context(), newService(appConfig), opts, cmd.OutOrStdout())
}

func executeSplit(ctx context.Context, svc *service.Service, opts splitOptions, w io.Writer) error {
	data, err := os.ReadFile(opts.input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.input, err)
	}

	content := string(data)

	var sel *plan.Selection
	if !opts.selection.empty() {
		sel, err = buildSelection(analyze.Analyze(content), opts.selection)
		if err != nil {
			return err
		}
	}

	resp := svc.Split(ctx, service.SplitRequest{
		Content:            content,
		SplitConfiguration: sel,
		SourceName:         filepath.Base(opts.input),
	})

	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(resp); err != nil {
			return err
		}
	}

	if !resp.Success {
		return errors.New(resp.Error)
	}

	if !opts.dryRun {
		if err := gen.WriteFiles(resp.Files, opts.outDir); err != nil {
			return fmt.Errorf("failed to write files: %w", err)
		}
	}

	if !opts.json {
		printSplit(w, resp, opts)
	}

	return nil
}

func printSplit(w io.Writer, resp *service.SplitResponse, opts splitOptions) {
	if opts.dryRun {
		for _, f := range resp.Files {
			fmt.Fprintln(w, mutedStyle.Render("# ----- "+f.FileName))
			fmt.Fprint(w, f.Content)
		}

		fmt.Fprintln(w)
	}

	verb := "Wrote"
	if opts.dryRun {
		verb = "Would write"
	}

	printTitle(w, fmt.Sprintf("%s %d file(s) to %s", verb, resp.FilesCount, opts.outDir))

	for _, f := range resp.Files {
		printItem(w, f.FileName, fmt.Sprintf("%v", f.Sections))
	}

	if len(resp.KeptInOriginal) > 0 {
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("Kept in %s: %v", filepath.Base(opts.input), resp.KeptInOriginal)))
	}

	printMessages(w, "Warnings", warningStyle, resp.Warnings)
}
