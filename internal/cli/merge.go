package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"config-splitter/internal/logging"
	"config-splitter/internal/service"
	"config-splitter/internal/watch"
)

var (
	mergeOutput      string
	mergeBackup      bool
	mergeNoBackup    bool
	mergeFillMissing bool
	mergeValidate    bool
	mergeDryRun      bool
	mergeWatch       bool
)

var mergeCmd = &cobra.Command{
	Use:   "merge FILE...",
	Short: "Merge section files into one configuration",
	Long: `Merge combines section files into a single document with a table of
contents and a header per section, in canonical section order.

When a section appears in several files the first definition wins. Files
named <prefix>-<section>-<child>.yaml are folded back under <section>.
Unknown sections are kept.

Examples:
  # Merge every section file next to each other
  config-splitter merge config-*.yaml -o config.yaml

  # Add missing sections with defaults and check the result
  config-splitter merge config.d/*.yaml --fill-missing --validate --dry-run

  # Re-merge whenever an input changes
  config-splitter merge config.d/*.yaml -o config.yaml --watch
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "merged file path (default from config)")
	mergeCmd.Flags().BoolVar(&mergeBackup, "backup", false, "back up an existing output file")
	mergeCmd.Flags().BoolVar(&mergeNoBackup, "no-backup", false, "never back up the output file")
	mergeCmd.Flags().BoolVar(&mergeFillMissing, "fill-missing", false, "add missing sections with default values")
	mergeCmd.Flags().BoolVar(&mergeValidate, "validate", false, "check the merged document against the schema")
	mergeCmd.Flags().BoolVar(&mergeDryRun, "dry-run", false, "print the merged document instead of writing it")
	mergeCmd.Flags().BoolVarP(&mergeWatch, "watch", "w", false, "merge again whenever an input file changes")

	mergeCmd.MarkFlagsMutuallyExclusive("backup", "no-backup")
	mergeCmd.MarkFlagsMutuallyExclusive("watch", "dry-run")
}

func runMerge(cmd *cobra.Command, args []string) error {
	output := mergeOutput
	if output == "" {
		output = appConfig.Merge.OutputPath
	}

	req := service.MergeRequest{
		OutputPath:   output,
		CreateBackup: (appConfig.Merge.CreateBackup || mergeBackup) && !mergeNoBackup,
		FillMissing:  appConfig.Merge.FillMissing || mergeFillMissing,
		Validate:     appConfig.Merge.Validate || mergeValidate,
		DryRun:       mergeDryRun,
	}

	inputs, err := mergeInputs(args, output)
	if err != nil {
		return err
	}

	req.Files = inputs

	svc := newService(appConfig)

	if !mergeWatch {
		return executeMerge(cmd.Context(), svc, req, cmd.OutOrStdout())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watchMerge(ctx, svc, req, appConfig.Watch.Debounce, cmd.OutOrStdout())
}

// mergeInputs turns file arguments into inputs, leaving out the output
// file itself so a glob like config*.yaml can be merged in place.
func mergeInputs(paths []string, output string) ([]service.FileInput, error) {
	outAbs, err := filepath.Abs(output)
	if err != nil {
		return nil, err
	}

	var inputs []service.FileInput

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}

		if abs == outAbs {
			continue
		}

		inputs = append(inputs, service.FileInput{Path: p})
	}

	if len(inputs) == 0 {
		return nil, service.ErrNoFiles
	}

	return inputs, nil
}

func executeMerge(ctx context.Context, svc *service.Service, req service.MergeRequest, w io.Writer) error {
	resp := svc.Merge(ctx, req)

	if resp.Success && req.DryRun {
		logger := logging.FromContext(ctx)
		for _, msg := range resp.Warnings {
			logger.Warn().Msg(msg)
		}

		fmt.Fprint(w, resp.MergedContent)

		return nil
	}

	printMerge(w, resp)

	if !resp.Success {
		return errors.New(resp.Error)
	}

	return nil
}

func watchMerge(ctx context.Context, svc *service.Service, req service.MergeRequest, debounce time.Duration, w io.Writer) error {
	logger := logging.FromContext(ctx)

	if err := executeMerge(ctx, svc, req, w); err != nil {
		logger.Warn().Err(err).Msg("initial merge failed")
	}

	paths := make([]string, 0, len(req.Files))
	for _, f := range req.Files {
		paths = append(paths, f.Path)
	}

	watcher, err := watch.New(paths, debounce, func(ctx context.Context, changed []string) {
		logger.Info().Strs("changed", changed).Msg("inputs changed, merging")

		if err := executeMerge(ctx, svc, req, w); err != nil {
			logger.Warn().Err(err).Msg("merge failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to watch inputs: %w", err)
	}

	watcher.Start(ctx)
	defer watcher.Stop()

	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("Watching %d file(s), press Ctrl+C to stop", len(paths))))

	<-ctx.Done()

	return nil
}

func printMerge(w io.Writer, resp *service.MergeResponse) {
	if resp.Success {
		fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("Merged %d section(s) into %s", resp.SectionsCount, resp.OutputPath)))

		if resp.BackupPath != "" {
			printItem(w, "backup", resp.BackupPath)
		}
	} else {
		fmt.Fprintln(w, errorStyle.Render("Merge failed: "+resp.Error))
	}

	printMessages(w, "Warnings", warningStyle, resp.Warnings)
	printMessages(w, "Errors", errorStyle, resp.Errors)
}
