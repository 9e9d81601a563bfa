package service

import (
	"context"

	"config-splitter/internal/analyze"
	"config-splitter/internal/document"
	"config-splitter/internal/gen"
	"config-splitter/internal/logging"
	"config-splitter/internal/plan"
)

// Split analyzes and splits the request's content. Nothing is written.
func (s *Service) Split(ctx context.Context, req SplitRequest) *SplitResponse {
	logger := logging.FromContext(ctx)

	doc, err := document.Parse(req.Content)
	if err != nil {
		return splitFailure(err)
	}

	p, err := s.Plan(req.Content, req.SplitConfiguration)
	if err != nil {
		return splitFailure(err)
	}

	splitter := gen.NewSplitter(s.catalog, gen.SplitOptions{
		Naming:     s.naming,
		SourceName: req.SourceName,
	})

	result, err := splitter.Split(doc, p)
	if err != nil {
		return splitFailure(err)
	}

	warnings := p.Diagnostics.WarningMessages()
	warnings = append(warnings, result.Diagnostics.WarningMessages()...)

	logger.Debug().
		Int("files", len(result.Files)).
		Strs("kept", result.KeptInOriginal).
		Msg("split document")

	return &SplitResponse{
		Success:        true,
		Files:          result.Files,
		FilesCount:     p.FilesCount(),
		KeptInOriginal: result.KeptInOriginal,
		Warnings:       warnings,
	}
}

// Plan builds the split plan for content without executing it.
func (s *Service) Plan(content string, sel *plan.Selection) (*plan.Plan, error) {
	return plan.Build(analyze.Analyze(content), sel, s.policy)
}
