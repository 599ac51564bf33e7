package lang

// Type is the static type of an NDCA expression or variable.
type Type uint8

const (
	// TypeVoid is reserved for statements and helper functions that
	// produce no value.
	TypeVoid Type = iota
	// TypeInt is a signed 64-bit integer.
	TypeInt
	// TypeCellState is a cell state id in [0, state count).
	TypeCellState
)

func (t Type) String() string {
	switch t {
	case TypeVoid:
		return "void"
	case TypeInt:
		return "integer"
	case TypeCellState:
		return "cell state"
	}
	return "unknown"
}

// CellState is the runtime representation of a cell state id.
type CellState uint8

// MaxStateCount is the largest state count a CellState can represent.
const MaxStateCount = 256
