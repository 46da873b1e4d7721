// Package analysis implements the static-analysis adapters invoked during
// tree synchronization: raw line metrics, Halstead complexity metrics and
// control-flow-graph extraction for C sources.
//
// Adapters are pure functions over (path, source text). A failing adapter
// reports an AnalysisError and never aborts the caller's run.
package analysis

import "strings"

// RawResult holds simple line-counting metrics
type RawResult struct {
	LOC      int `json:"loc"`      // total lines
	LLOC     int `json:"lloc"`     // logical lines (statements)
	PLOC     int `json:"ploc"`     // physical lines containing code
	Comments int `json:"comments"` // comment lines
	Blanks   int `json:"blanks"`   // blank lines
}

// HalsteadResult holds operator/operand counts
type HalsteadResult struct {
	UniqueOperators int `json:"unique_operators"` // n1
	UniqueOperands  int `json:"unique_operands"`  // n2
	TotalOperators  int `json:"total_operators"`  // N1
	TotalOperands   int `json:"total_operands"`   // N2
}

// CFGResult maps function names to control-flow graphs in DOT notation.
// Empty for files with no recognizable function definitions.
type CFGResult map[string]string

// PathFilter decides whether a file is eligible for analysis
type PathFilter func(path string) bool

// CSourceFilter matches C source files. The filter is the single policy
// point for analyzable languages; swapping it extends the pipeline to
// other languages without touching the synchronizer.
func CSourceFilter(path string) bool {
	return strings.HasSuffix(path, ".c")
}

// Adapters bundles the analysis functions the synchronizer drives.
// Tests substitute individual adapters to exercise failure handling.
type Adapters struct {
	Supports PathFilter
	Raw      func(path, source string) (*RawResult, error)
	Halstead func(path, source string) (*HalsteadResult, error)
	CFG      func(path, source string) (CFGResult, error)
}

// DefaultAdapters returns the built-in C analysis adapters
func DefaultAdapters() *Adapters {
	return &Adapters{
		Supports: CSourceFilter,
		Raw:      AnalyzeRaw,
		Halstead: AnalyzeHalstead,
		CFG:      AnalyzeCFG,
	}
}
