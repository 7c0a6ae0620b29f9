package merge

import (
	"fmt"

	"github.com/njalerikson/tomlkit/pkg/container"
)

// ShallowMergeStrategy merges only the top-level keys of two tables: a
// key present in both documents takes override's value whole, with no
// recursion into nested tables or arrays. Grounded on the teacher's
// shallow counterpart to DeepMergeStrategy (v1/pkg/merge/strategy.go's
// Strategy enum; the teacher folds shallow into the deep strategy via
// depth tracking, this module gives it its own type instead).
type ShallowMergeStrategy struct {
	options *Options
}

func (s *ShallowMergeStrategy) Name() string { return "shallow" }

func (s *ShallowMergeStrategy) Merge(base, override any, ctx *Context) (any, error) {
	if override == nil {
		return container.CloneValue(base), nil
	}
	baseTbl, ok := base.(*container.Table)
	if !ok {
		return container.CloneValue(override), nil
	}
	overrideTbl, ok := override.(*container.Table)
	if !ok {
		return nil, fmt.Errorf("type mismatch at %v: expected table, got %T", ctx.Path, override)
	}

	result := container.NewTable()
	for _, it := range baseTbl.Items() {
		if err := result.Set(it.Key, container.CloneValue(it.Value)); err != nil {
			return nil, err
		}
	}
	for _, it := range overrideTbl.Items() {
		if err := result.Set(it.Key, container.CloneValue(it.Value)); err != nil {
			return nil, err
		}
	}
	return result, nil
}
