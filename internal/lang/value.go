package lang

import (
	"fmt"
)

// ValueKind identifies the runtime type of a Value.
type ValueKind uint8

const (
	// VKInvalid represents an invalid value.
	VKInvalid ValueKind = iota
	// VKInt represents a signed 64-bit integer value.
	VKInt
	// VKCellState represents a cell state value.
	VKCellState
)

// String returns a human-readable name for the value kind.
func (k ValueKind) String() string {
	switch k {
	case VKInvalid:
		return "invalid"
	case VKInt:
		return "integer"
	case VKCellState:
		return "cell state"
	}
	return "unknown"
}

// Value is a tagged runtime value: an integer or a cell state.
type Value struct {
	Kind ValueKind
	Int  int64
	Cell CellState
}

// MakeInt builds an integer value.
func MakeInt(v int64) Value {
	return Value{Kind: VKInt, Int: v}
}

// MakeCellState builds a cell state value.
func MakeCellState(c CellState) Value {
	return Value{Kind: VKCellState, Cell: c}
}

// Type returns the static type matching the value's runtime kind.
func (v Value) Type() Type {
	switch v.Kind {
	case VKInt:
		return TypeInt
	case VKCellState:
		return TypeCellState
	}
	return TypeVoid
}

// AsInt narrows the value to an integer. A kind mismatch is an internal
// error: the type checker should have made it unreachable.
func (v Value) AsInt() (int64, *Error) {
	if v.Kind != VKInt {
		return 0, Internalf("expected integer value but got %s", v.Kind)
	}
	return v.Int, nil
}

// AsCellState narrows the value to a cell state. A kind mismatch is an
// internal error: the type checker should have made it unreachable.
func (v Value) AsCellState() (CellState, *Error) {
	if v.Kind != VKCellState {
		return 0, Internalf("expected cell state value but got %s", v.Kind)
	}
	return v.Cell, nil
}

// String renders the value for diagnostics and CLI output.
func (v Value) String() string {
	switch v.Kind {
	case VKInt:
		return fmt.Sprintf("%d", v.Int)
	case VKCellState:
		return fmt.Sprintf("#%d", v.Cell)
	}
	return "<invalid>"
}

// DefaultValue constructs the zero value of a static type: integer 0 or
// cell state #0. Void has no value; asking for one is an internal error.
func DefaultValue(t Type) (Value, *Error) {
	switch t {
	case TypeInt:
		return MakeInt(0), nil
	case TypeCellState:
		return MakeCellState(0), nil
	default:
		return Value{}, Internalf("no default value for type %s", t)
	}
}

// ValidStateCount reports whether a configured cell state count fits the
// runtime representation.
func ValidStateCount(n int) bool {
	return n >= 1 && n <= MaxStateCount
}
