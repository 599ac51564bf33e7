package lang

import (
	"testing"
)

func TestValue_Narrowing(t *testing.T) {
	v := MakeInt(42)
	if got, err := v.AsInt(); err != nil || got != 42 {
		t.Errorf("AsInt() = %d, %v", got, err)
	}
	if _, err := v.AsCellState(); err == nil || err.Code != CodeInternal {
		t.Errorf("AsCellState on integer should be an internal error, got %v", err)
	}

	c := MakeCellState(7)
	if got, err := c.AsCellState(); err != nil || got != 7 {
		t.Errorf("AsCellState() = %d, %v", got, err)
	}
	if _, err := c.AsInt(); err == nil || err.Code != CodeInternal {
		t.Errorf("AsInt on cell state should be an internal error, got %v", err)
	}
}

func TestValue_Type(t *testing.T) {
	tests := []struct {
		value    Value
		expected Type
	}{
		{MakeInt(0), TypeInt},
		{MakeCellState(0), TypeCellState},
		{Value{}, TypeVoid},
	}
	for _, tt := range tests {
		if got := tt.value.Type(); got != tt.expected {
			t.Errorf("%v.Type() = %v, want %v", tt.value, got, tt.expected)
		}
	}
}

func TestDefaultValue(t *testing.T) {
	if v, err := DefaultValue(TypeInt); err != nil || v != MakeInt(0) {
		t.Errorf("DefaultValue(TypeInt) = %v, %v", v, err)
	}
	if v, err := DefaultValue(TypeCellState); err != nil || v != MakeCellState(0) {
		t.Errorf("DefaultValue(TypeCellState) = %v, %v", v, err)
	}
	if _, err := DefaultValue(TypeVoid); err == nil {
		t.Error("DefaultValue(TypeVoid) should fail")
	}
}

func TestValidStateCount(t *testing.T) {
	tests := []struct {
		n        int
		expected bool
	}{
		{0, false},
		{1, true},
		{100, true},
		{256, true},
		{257, false},
		{-1, false},
	}
	for _, tt := range tests {
		if got := ValidStateCount(tt.n); got != tt.expected {
			t.Errorf("ValidStateCount(%d) = %v, want %v", tt.n, got, tt.expected)
		}
	}
}
