// Package script defines the immutable value types the parser produces and
// the importer and execution context consume: a script's source text paired
// with the metadata derived from classifying and validating it.
package script

import "github.com/JungleDome/FirScript/internal/lang"

// Kind is the classification a script's syntax tree is assigned: strategy,
// indicator, or library. See internal/validator for the exact predicate.
type Kind string

const (
	KindStrategy  Kind = "STRATEGY"
	KindIndicator Kind = "INDICATOR"
	KindLibrary   Kind = "LIBRARY"
)

// Metadata is the information the validator derives from a script's syntax
// tree beyond the raw source.
type Metadata struct {
	// ID is the caller-supplied identifier, typically the registration name.
	ID string
	// Name is an optional descriptive name; may equal ID.
	Name string
	// Kind is the script's classification.
	Kind Kind
	// Exports is the set of top-level symbol names the script assigns to.
	// Always contains "export" for a library; for strategies/indicators it
	// records any top-level `export = ...` bindings for uniformity.
	Exports map[string]struct{}
	// Imports maps a local alias to the imported script name, for every
	// `alias = import_script("name")` binding recognized syntactically.
	Imports map[string]string
}

// Script is an immutable (source, metadata) pair, produced only by a
// successful parse+validate.
type Script struct {
	Source   string
	Metadata Metadata
	// Program is the parsed syntax tree, kept so the execution context does
	// not need to re-lex/re-parse the source it already validated.
	Program *lang.Program
}

// New constructs a Script. Callers outside internal/validator should not
// normally call this directly — it performs no validation.
func New(source string, metadata Metadata, program *lang.Program) *Script {
	return &Script{Source: source, Metadata: metadata, Program: program}
}
