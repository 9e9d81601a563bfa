package service

import (
	"context"
	"errors"
	"fmt"

	"config-splitter/internal/diagnostic"
	"config-splitter/internal/gen"
	"config-splitter/internal/logging"
)

var (
	// ErrNoFiles is returned when a merge request names no input.
	ErrNoFiles = errors.New("no files provided")
	// ErrNoOutputPath is returned when a non dry-run merge has no output path.
	ErrNoOutputPath = errors.New("output path is required")
	// ErrEmptyInput is returned for an input with neither path nor content.
	ErrEmptyInput = errors.New("file has neither path nor content")
)

// Merge merges the request's files and, unless DryRun is set, writes the
// result to OutputPath. Failures are reported in the response, never as a
// Go error, so callers can render them uniformly.
func (s *Service) Merge(ctx context.Context, req MergeRequest) *MergeResponse {
	logger := logging.FromContext(ctx)

	if len(req.Files) == 0 {
		return mergeFailure(ErrNoFiles, nil)
	}

	for i, f := range req.Files {
		if f.Path == "" && f.Content == "" {
			return mergeFailure(fmt.Errorf("file %d: %w", i+1, ErrEmptyInput), nil)
		}
	}

	if req.OutputPath == "" && !req.DryRun {
		return mergeFailure(ErrNoOutputPath, nil)
	}

	inputs, readErrs := readInputs(ctx, req.Files)

	merger := gen.NewMerger(s.catalog, s.schema, s.naming)

	result, err := merger.Merge(inputs, gen.MergeOptions{
		FillMissing: req.FillMissing,
		Validate:    req.Validate,
	})
	if err != nil {
		var errs []string

		errs = append(errs, readErrs...)
		if result != nil {
			errs = append(errs, result.Errors()...)
		}

		return mergeFailure(err, errs)
	}

	resp := &MergeResponse{
		Success:       true,
		SectionsCount: result.SectionsCount(),
		Warnings:      result.Warnings(),
		Errors:        append(readErrs, result.Errors()...),
	}

	logger.Debug().
		Int("inputs", len(inputs)).
		Int("sections", resp.SectionsCount).
		Int("warnings", len(resp.Warnings)).
		Msg("merged sections")

	if req.DryRun {
		resp.MergedContent = result.MergedContent
		return resp
	}

	if req.CreateBackup {
		path, err := backup(req.OutputPath, s.now())
		if err != nil {
			var diags diagnostic.Diagnostics

			diags.AddWarning(diagnostic.CodeBackupFailed,
				fmt.Sprintf("failed to create backup of %s: %v", req.OutputPath, err), "", req.OutputPath)
			resp.Warnings = append(resp.Warnings, diags.WarningMessages()...)

			logger.Warn().Err(err).Str("path", req.OutputPath).Msg("backup failed")
		}

		resp.BackupPath = path
	}

	if err := writeLocked(ctx, req.OutputPath, result.MergedContent); err != nil {
		return &MergeResponse{
			Success:    false,
			BackupPath: resp.BackupPath,
			Warnings:   resp.Warnings,
			Errors:     resp.Errors,
			Error:      err.Error(),
		}
	}

	resp.OutputPath = req.OutputPath

	return resp
}
