// Package merge implements strategy-driven combination of two documents
// (spec.md §6's `update`, generalized): deep/shallow/override table
// merging plus a choice of array-combination strategies, grounded on the
// teacher's pkg/merge package (elioetibr-golang-yaml v1/pkg/merge),
// adapted from YAML's node.Node union to this module's
// items.Scalar/container.Table/container.Array union.
package merge

// Strategy selects how two tables are combined.
type Strategy int

const (
	// StrategyDeep recursively merges nested tables, falling through to
	// ArrayMergeStrategy for arrays and override-wins for scalars.
	StrategyDeep Strategy = iota
	// StrategyShallow only merges top-level keys: a key present in both
	// documents takes override's value whole, with no recursion into it.
	StrategyShallow
	// StrategyOverride discards base entirely and returns override.
	StrategyOverride
)

// ArrayMergeStrategy selects how two arrays at the same key are
// combined under StrategyDeep.
type ArrayMergeStrategy int

const (
	// ArrayReplace replaces base's array with override's (default).
	ArrayReplace ArrayMergeStrategy = iota
	// ArrayAppend concatenates base's elements followed by override's.
	ArrayAppend
	// ArrayMergeByIndex merges element-by-element up to the longer
	// array's length, recursing into elements present in both.
	ArrayMergeByIndex
)

// Options configures a Merger.
type Options struct {
	Strategy Strategy

	ArrayMergeStrategy ArrayMergeStrategy

	// OverrideEmpty allows an override string scalar of "" to replace a
	// non-empty base value; otherwise "" is treated as "not set" and the
	// base value is kept. Only StrategyDeep consults it; StrategyShallow
	// and StrategyOverride always take override's value.
	OverrideEmpty bool

	// PreserveComments is carried in Options but no strategy reads it:
	// merged tables are rebuilt key by key, so inline comments and the
	// head comments of merged tables are not carried into the result
	// whatever its value.
	PreserveComments bool
}

// DefaultOptions returns the default merge configuration: deep merge,
// array replace, PreserveComments set, empty override strings do not
// clobber a non-empty base value.
func DefaultOptions() *Options {
	return &Options{
		Strategy:           StrategyDeep,
		ArrayMergeStrategy: ArrayReplace,
		OverrideEmpty:      false,
		PreserveComments:   true,
	}
}

// WithStrategy returns o with Strategy set.
func (o *Options) WithStrategy(s Strategy) *Options {
	o.Strategy = s
	return o
}

// WithArrayStrategy returns o with ArrayMergeStrategy set.
func (o *Options) WithArrayStrategy(s ArrayMergeStrategy) *Options {
	o.ArrayMergeStrategy = s
	return o
}

// WithOverrideEmpty returns o with OverrideEmpty set.
func (o *Options) WithOverrideEmpty(v bool) *Options {
	o.OverrideEmpty = v
	return o
}
