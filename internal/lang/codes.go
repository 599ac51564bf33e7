package lang

// Code identifies one kind of language error. The set is closed: every
// consumer switching over codes should handle all of them.
type Code uint16

const (
	// CodeUnknown is reserved for errors of unidentified origin.
	CodeUnknown Code = 0

	// Internal and unimplemented errors. These signal bugs in the toolchain
	// (or in an upstream collaborator), never in user input.
	CodeUnimplemented Code = 1
	CodeInternal      Code = 2

	// Compile diagnostics.
	CodeUnknownSymbol               Code = 1001
	CodeUnterminated                Code = 1002
	CodeUnmatched                   Code = 1003
	CodeExpected                    Code = 1004
	CodeTopLevelNonDirective        Code = 1005
	CodeInvalidDirectiveName        Code = 1006
	CodeMissingTransitionFunction   Code = 1007
	CodeMultipleTransitionFunctions Code = 1008

	// Compile errors for the compiled backend; runtime errors for the
	// tree-walking interpreter.
	CodeTypeError             Code = 2001
	CodeUninitializedVariable Code = 2002

	// Runtime faults.
	CodeIntegerOverflowDuringNegation       Code = 3001
	CodeIntegerOverflowDuringAddition       Code = 3002
	CodeIntegerOverflowDuringSubtraction    Code = 3003
	CodeIntegerOverflowDuringMultiplication Code = 3004
	CodeDivideByZero                        Code = 3005
	CodeCellStateOutOfRange                 Code = 3006
)

// String returns the code as "NDCA1001" format.
func (c Code) String() string {
	switch c {
	case CodeUnknown:
		return "NDCA0000"
	case CodeUnimplemented:
		return "NDCA0001"
	case CodeInternal:
		return "NDCA0002"
	default:
		return codeString(c)
	}
}

func codeString(c Code) string {
	const digits = "0123456789"
	buf := [8]byte{'N', 'D', 'C', 'A'}
	n := uint16(c)
	for i := 7; i >= 4; i-- {
		buf[i] = digits[n%10]
		n /= 10
	}
	return string(buf[:])
}

// IsRuntime reports whether the code describes a runtime fault of the
// executing rule rather than a compile diagnostic or internal bug.
func (c Code) IsRuntime() bool {
	return c >= CodeIntegerOverflowDuringNegation && c <= CodeCellStateOutOfRange
}

// IsInternal reports whether the code signals a toolchain bug.
func (c Code) IsInternal() bool {
	return c == CodeInternal || c == CodeUnimplemented
}
