package merge

import "github.com/njalerikson/tomlkit/pkg/container"

// OverrideStrategy discards base entirely and returns a clone of
// override. Grounded on the teacher's OverrideStrategy
// (v1/pkg/merge/strategy_override.go).
type OverrideStrategy struct{}

func (s *OverrideStrategy) Name() string { return "override" }

func (s *OverrideStrategy) Merge(base, override any, ctx *Context) (any, error) {
	if override == nil {
		return container.CloneValue(base), nil
	}
	return container.CloneValue(override), nil
}
