package service

import (
	"config-splitter/internal/gen"
	"config-splitter/internal/plan"
)

// FileInput is one merge input. Either Path or Content must be set; Content
// wins when both are. Name defaults to the base name of Path.
type FileInput struct {
	Path    string `json:"path,omitempty"`
	Content string `json:"content,omitempty"`
	Name    string `json:"name,omitempty"`
}

// MergeRequest asks for several section files to be merged into one.
type MergeRequest struct {
	Files        []FileInput `json:"files"`
	OutputPath   string      `json:"outputPath"`
	CreateBackup bool        `json:"createBackup"`
	FillMissing  bool        `json:"fillMissing"`
	Validate     bool        `json:"validate,omitempty"`
	// DryRun returns the merged content without writing anything.
	DryRun bool `json:"dryRun,omitempty"`
}

// MergeResponse is the outcome of a merge. Warnings never make it fail;
// Errors lists inputs that were skipped.
type MergeResponse struct {
	Success       bool     `json:"success"`
	OutputPath    string   `json:"outputPath,omitempty"`
	BackupPath    string   `json:"backupPath,omitempty"`
	SectionsCount int      `json:"sectionsCount,omitempty"`
	MergedContent string   `json:"mergedContent,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
	Errors        []string `json:"errors,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// SplitRequest asks for a document to be split. A nil SplitConfiguration
// applies the default policy to every section.
type SplitRequest struct {
	Content            string          `json:"content"`
	SplitConfiguration *plan.Selection `json:"splitConfiguration,omitempty"`
	// SourceName is the file name the content was read from, if any.
	SourceName string `json:"sourceName,omitempty"`
}

// SplitResponse is the outcome of a split.
type SplitResponse struct {
	Success        bool             `json:"success"`
	Files          []gen.OutputFile `json:"files,omitempty"`
	FilesCount     int              `json:"filesCount,omitempty"`
	KeptInOriginal []string         `json:"keptInOriginal,omitempty"`
	Warnings       []string         `json:"warnings,omitempty"`
	Error          string           `json:"error,omitempty"`
}

func mergeFailure(err error, errs []string) *MergeResponse {
	return &MergeResponse{Success: false, Error: err.Error(), Errors: errs}
}

func splitFailure(err error) *SplitResponse {
	return &SplitResponse{Success: false, Error: err.Error()}
}
