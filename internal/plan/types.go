package plan

import (
	"config-splitter/internal/diagnostic"
)

//go:generate go tool stringer -type=Policy -linecomment -output=policy_string.go
//go:generate go tool stringer -type=Destination -linecomment -output=destination_string.go

// Policy picks the children that are split out when no selection is given.
type Policy int

const (
	// PolicyKeepFirst keeps the first child inline and splits out the rest,
	// for sections with at least two children.
	PolicyKeepFirst Policy = iota // keep-first
	// PolicyInline never splits children out.
	PolicyInline // inline
)

// Destination says where unselected sections go.
type Destination int

const (
	// DestinationOriginal keeps them in the source document.
	DestinationOriginal Destination = iota // original
	// DestinationCustom writes them to a caller-named file.
	DestinationCustom // custom
	// DestinationMerge appends them to one of the produced files.
	DestinationMerge // merge
)

// Selection is an explicit choice of sections and subsections to split.
type Selection struct {
	// Sections maps top-level keys to their selection. Absent keys are not
	// included.
	Sections map[string]SectionSelection `json:"sections"`
	// Remaining routes the unselected sections; nil keeps them in the original.
	Remaining *RemainingConfig `json:"remainingConfig,omitempty"`
}

// SectionSelection selects one top-level section.
type SectionSelection struct {
	Include     bool                           `json:"include"`
	SecondLevel map[string]SubsectionSelection `json:"secondLevel,omitempty"`
}

// SubsectionSelection selects one second-level key.
type SubsectionSelection struct {
	Split bool `json:"split"`
}

// RemainingConfig routes sections that are not included.
type RemainingConfig struct {
	Destination Destination `json:"destination"`
	// CustomFileName is required with DestinationCustom.
	CustomFileName string `json:"customFileName,omitempty"`
	// MergeIntoFile must name a produced file with DestinationMerge.
	MergeIntoFile string `json:"mergeIntoFile,omitempty"`
}

// Plan is the outcome of planning.
type Plan struct {
	// Sections lists the top-level sections in document order. Adopted keys
	// appear only as subsections of their new parent.
	Sections []SectionPlan
	// Remaining routes the sections that are not included.
	Remaining RemainingConfig
	// Diagnostics contains warnings about the selection.
	Diagnostics diagnostic.Diagnostics
}

// SectionPlan is the decision for one top-level section.
type SectionPlan struct {
	Key         string
	Included    bool
	Subsections []SubsectionPlan
}

// SubsectionPlan is the decision for one second-level key.
type SubsectionPlan struct {
	Key      string
	SplitOut bool
	// Adopted marks a top-level key of the source moved under this section.
	Adopted bool
}
