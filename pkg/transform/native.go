// Package transform converts between plain Go values and the style-
// carrying node types in pkg/container and pkg/items (spec.md §6
// to_native/from_native, SPEC_FULL.md §11's factory dispatch grounded on
// tomlkit/items/factory.py).
package transform

import (
	"fmt"

	"github.com/njalerikson/tomlkit/pkg/container"
	"github.com/njalerikson/tomlkit/pkg/items"
)

func init() {
	container.FromNativeFunc = FromNative
}

// ErrUnsupportedType is returned by FromNative when value's dynamic type
// has no TOML representation, matching tomlkit's ConvertError.
type ErrUnsupportedType struct {
	Value any
}

func (e *ErrUnsupportedType) Error() string {
	return fmt.Sprintf("toml: cannot convert Go value of type %T to a TOML item", e.Value)
}

// FromNative lifts a plain Go value into the node type pkg/container
// stores in a Link: *items.Scalar for leaves, *container.Table for
// map[string]any, *container.Array for []any. owner matches the
// container.FromNativeFunc hook's signature and is not read: the result
// is always built detached, and its parent/root/handle are stamped when
// the caller stores it with Set/Append.
func FromNative(owner *container.Table, value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, &ErrUnsupportedType{Value: value}
	case bool:
		return items.NewBool(v), nil
	case string:
		return items.NewString(v, items.StyleBasic, false), nil
	case int:
		return items.NewInteger(int64(v), 10, false), nil
	case int8:
		return items.NewInteger(int64(v), 10, false), nil
	case int16:
		return items.NewInteger(int64(v), 10, false), nil
	case int32:
		return items.NewInteger(int64(v), 10, false), nil
	case int64:
		return items.NewInteger(v, 10, false), nil
	case uint:
		return items.NewInteger(int64(v), 10, false), nil
	case uint32:
		return items.NewInteger(int64(v), 10, false), nil
	case uint64:
		return items.NewInteger(int64(v), 10, false), nil
	case float32:
		return items.NewFloat(float64(v), false, false), nil
	case float64:
		return items.NewFloat(v, false, false), nil
	case items.Date:
		return items.NewDate(v), nil
	case items.Time:
		return items.NewTime(v), nil
	case items.DateTime:
		return items.NewDateTime(v), nil
	case map[string]any:
		return tableFromMap(v)
	case []any:
		return arrayFromSlice(v)
	default:
		return nil, &ErrUnsupportedType{Value: value}
	}
}

func tableFromMap(m map[string]any) (*container.Table, error) {
	tbl := container.NewTable()
	for k, v := range m {
		if err := tbl.Set(k, v); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

func arrayFromSlice(s []any) (*container.Array, error) {
	arr := container.NewArray()
	if err := arr.Extend(s); err != nil {
		return nil, err
	}
	return arr, nil
}

// ToNative projects any node (a *container.Table, *container.Array, or
// *items.Scalar) into a plain Go value, stripping all style metadata —
// the leaf case of spec.md §6's to_native operation, generalized to
// containers via Table.Unwrap/Array.Unwrap (SPEC_FULL.md §11).
func ToNative(node any) any {
	switch v := node.(type) {
	case *items.Scalar:
		return v.Native()
	case *container.Table:
		return v.Unwrap()
	case *container.Array:
		return v.Unwrap()
	default:
		return nil
	}
}
