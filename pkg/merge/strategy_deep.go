package merge

import (
	"fmt"

	"github.com/njalerikson/tomlkit/pkg/container"
	"github.com/njalerikson/tomlkit/pkg/items"
)

// DeepMergeStrategy recursively merges tables key by key, falling
// through to the configured ArrayMergeStrategy for arrays and
// override-wins (subject to OverrideEmpty) for scalars. Grounded on the
// teacher's DeepMergeStrategy (v1/pkg/merge/strategy_deep.go).
type DeepMergeStrategy struct {
	options *Options
}

func (s *DeepMergeStrategy) Name() string { return "deep" }

func (s *DeepMergeStrategy) Merge(base, override any, ctx *Context) (any, error) {
	if override == nil {
		return container.CloneValue(base), nil
	}
	if base == nil {
		return container.CloneValue(override), nil
	}
	switch b := base.(type) {
	case *container.Table:
		return s.mergeTables(b, override, ctx)
	case *container.Array:
		return s.mergeArrays(b, override, ctx)
	case *items.Scalar:
		return s.mergeScalars(b, override, ctx)
	default:
		return container.CloneValue(override), nil
	}
}

func (s *DeepMergeStrategy) mergeTables(base *container.Table, override any, ctx *Context) (*container.Table, error) {
	overrideTbl, ok := override.(*container.Table)
	if !ok {
		return nil, fmt.Errorf("type mismatch at %v: expected table, got %T", ctx.Path, override)
	}

	result := container.NewTable()
	overrideKeys := make(map[string]bool, overrideTbl.Len())
	for _, it := range overrideTbl.Items() {
		overrideKeys[it.Key] = true
	}

	for _, baseItem := range base.Items() {
		if overrideKeys[baseItem.Key] {
			overrideVal, _ := overrideTbl.Get(baseItem.Key)
			merged, err := s.Merge(baseItem.Value, overrideVal, ctx.WithPath(baseItem.Key))
			if err != nil {
				return nil, err
			}
			if err := result.Set(baseItem.Key, merged); err != nil {
				return nil, err
			}
		} else {
			if err := result.Set(baseItem.Key, container.CloneValue(baseItem.Value)); err != nil {
				return nil, err
			}
		}
	}
	for _, overrideItem := range overrideTbl.Items() {
		if result.Contains(overrideItem.Key) {
			continue
		}
		if err := result.Set(overrideItem.Key, container.CloneValue(overrideItem.Value)); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *DeepMergeStrategy) mergeArrays(base *container.Array, override any, ctx *Context) (*container.Array, error) {
	overrideArr, ok := override.(*container.Array)
	if !ok {
		return nil, fmt.Errorf("type mismatch at %v: expected array, got %T", ctx.Path, override)
	}

	result := container.NewArray()
	switch ctx.Options.ArrayMergeStrategy {
	case ArrayAppend:
		for _, v := range base.Values() {
			if err := result.Append(container.CloneValue(v)); err != nil {
				return nil, err
			}
		}
		for _, v := range overrideArr.Values() {
			if err := result.Append(container.CloneValue(v)); err != nil {
				return nil, err
			}
		}
		return result, nil

	case ArrayMergeByIndex:
		baseVals, overrideVals := base.Values(), overrideArr.Values()
		n := len(baseVals)
		if len(overrideVals) > n {
			n = len(overrideVals)
		}
		for i := 0; i < n; i++ {
			switch {
			case i < len(baseVals) && i < len(overrideVals):
				merged, err := s.Merge(baseVals[i], overrideVals[i], ctx)
				if err != nil {
					return nil, err
				}
				if err := result.Append(merged); err != nil {
					return nil, err
				}
			case i < len(baseVals):
				if err := result.Append(container.CloneValue(baseVals[i])); err != nil {
					return nil, err
				}
			default:
				if err := result.Append(container.CloneValue(overrideVals[i])); err != nil {
					return nil, err
				}
			}
		}
		return result, nil

	default: // ArrayReplace
		for _, v := range overrideArr.Values() {
			if err := result.Append(container.CloneValue(v)); err != nil {
				return nil, err
			}
		}
		return result, nil
	}
}

func (s *DeepMergeStrategy) mergeScalars(base *items.Scalar, override any, ctx *Context) (*items.Scalar, error) {
	overrideScalar, ok := override.(*items.Scalar)
	if !ok {
		return nil, fmt.Errorf("type mismatch at %v: expected scalar, got %T", ctx.Path, override)
	}
	if !ctx.Options.OverrideEmpty && overrideScalar.Kind == items.KindString &&
		overrideScalar.StringVal == "" && base.StringVal != "" {
		cp := *base
		return &cp, nil
	}
	cp := *overrideScalar
	return &cp, nil
}
