package merge

import (
	"fmt"

	"github.com/njalerikson/tomlkit/pkg/container"
)

// MergeStrategy is one of Deep/Shallow/Override's merge behaviors,
// operating over the items.Scalar/container.Table/container.Array union
// (a plain `any` type switch, per design note 9 — see pkg/container).
type MergeStrategy interface {
	Name() string
	Merge(base, override any, ctx *Context) (any, error)
}

// Context carries the merge operation's position in the document tree.
type Context struct {
	Options *Options
	Depth   int
	Path    []string
}

// WithPath returns a child context one key deeper.
func (c *Context) WithPath(key string) *Context {
	path := make([]string, len(c.Path)+1)
	copy(path, c.Path)
	path[len(c.Path)] = key
	return &Context{Options: c.Options, Depth: c.Depth + 1, Path: path}
}

// Merger orchestrates a merge under a fixed set of Options.
type Merger struct {
	options  *Options
	strategy MergeStrategy
}

// NewMerger builds a Merger for opts (DefaultOptions() if nil).
func NewMerger(opts *Options) *Merger {
	if opts == nil {
		opts = DefaultOptions()
	}
	m := &Merger{options: opts}
	switch opts.Strategy {
	case StrategyShallow:
		m.strategy = &ShallowMergeStrategy{options: opts}
	case StrategyOverride:
		m.strategy = &OverrideStrategy{}
	default:
		m.strategy = &DeepMergeStrategy{options: opts}
	}
	return m
}

// Merge combines base and override into a new table, leaving both inputs
// untouched.
func (m *Merger) Merge(base, override *container.Table) (*container.Table, error) {
	ctx := &Context{Options: m.options}
	result, err := m.strategy.Merge(base, override, ctx)
	if err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	tbl, ok := result.(*container.Table)
	if !ok {
		return nil, fmt.Errorf("merge: root did not resolve to a table (got %T)", result)
	}
	return tbl, nil
}
