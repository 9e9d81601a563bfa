package gen

import (
	"errors"

	"config-splitter/internal/plan"
)

var (
	// ErrNoSections is returned when a split would produce no file.
	ErrNoSections = plan.ErrNoSections
	// ErrNoSectionData is returned when no input of a merge holds a section.
	ErrNoSectionData = errors.New("no valid section data found")
	// ErrMergeTarget is returned when remaining sections should be merged
	// into a file the split does not produce.
	ErrMergeTarget = errors.New("invalid merge target")
	// ErrCustomFile is returned when the custom remaining file is missing or
	// collides with a produced file.
	ErrCustomFile = errors.New("invalid custom file")
	// ErrDuplicateFile is returned when two outputs share a file name.
	ErrDuplicateFile = errors.New("duplicate output file")
)
