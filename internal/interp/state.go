// Package interp is the tree-walking execution engine for NDCA rules: a
// program-counter-driven state machine over a flattened statement
// sequence, with a typed expression evaluator shared semantics-for-
// semantics with the compiled backend.
package interp

import (
	"ndca/internal/ast"
	"ndca/internal/lang"
)

// StepResult reports whether execution finished, and with which value.
// A Done result with a VKInvalid value means the function ended without
// producing anything (an explicit or implicit `end`).
type StepResult struct {
	Done  bool
	Value lang.Value
}

// State executes one invocation of a flattened function. It owns an
// exclusive variable store; the instruction sequence itself is read-only
// and may be shared across concurrent invocations.
type State struct {
	// Instructions is the flattened instruction sequence.
	Instructions ast.StatementBlock
	// PC is the index of the next instruction to execute.
	PC int
	// Vars maps each declared variable to its current value.
	Vars map[string]lang.Value
	// FuncKind is the kind of the function being interpreted.
	FuncKind ast.FunctionKind
	// StateCount bounds valid cell state ids: [0, StateCount).
	StateCount int
}

// New constructs an interpreter over fn's body. The function must already
// be flattened (ast.Flatten); variables start at their type's default
// value.
func New(fn *ast.Function, stateCount int) (*State, *lang.Error) {
	vars := make(map[string]lang.Value, len(fn.Vars))
	for name, ty := range fn.Vars {
		v, err := lang.DefaultValue(ty)
		if err != nil {
			return nil, lang.Internal("invalid variable type not caught by type checker")
		}
		vars[name] = v
	}
	return &State{
		Instructions: fn.Statements,
		PC:           0,
		Vars:         vars,
		FuncKind:     fn.Kind,
		StateCount:   stateCount,
	}, nil
}

// Run executes instructions until the function returns.
func (s *State) Run() (StepResult, *lang.Error) {
	for {
		res, err := s.Step()
		if err != nil {
			return StepResult{}, err
		}
		if res.Done {
			return res, nil
		}
	}
}

// Step executes the next instruction. After any non-terminal instruction
// the program counter advances by exactly one, including after Goto and
// after If branch dispatch; all encoded jump targets are pre-decremented
// to compensate. A program counter past the last instruction ends
// execution with no value.
func (s *State) Step() (StepResult, *lang.Error) {
	if s.PC < 0 || s.PC >= len(s.Instructions) {
		return StepResult{Done: true}, nil
	}
	instr := &s.Instructions[s.PC].Inner

	switch instr.Kind {
	case ast.StmtSetVar:
		if err := s.execSetVar(&instr.SetVar); err != nil {
			return StepResult{}, err
		}

	case ast.StmtIf:
		cond, err := s.EvalIntExpr(&instr.If.Cond)
		if err != nil {
			return StepResult{}, err
		}
		block := instr.If.IfFalse
		if cond.Inner != 0 {
			block = instr.If.IfTrue
		}
		if err := s.gotoBlock(block); err != nil {
			return StepResult{}, err
		}

	case ast.StmtReturn:
		return s.execReturn(&instr.Return)

	case ast.StmtEnd:
		return StepResult{Done: true}, nil

	case ast.StmtGoto:
		s.PC = instr.Goto.Target

	default:
		return StepResult{}, lang.Internalf("unknown statement kind %d", instr.Kind)
	}

	s.PC++
	return StepResult{}, nil
}

func (s *State) execSetVar(stmt *ast.SetVarStmt) *lang.Error {
	name := stmt.Name.Inner
	current, ok := s.Vars[name]
	if !ok {
		return lang.Internalf("assignment to undeclared variable %q not caught by type checker", name)
	}
	if current.Type() != stmt.Value.Type() {
		return lang.Internal("invalid variable assignment not caught by type checker")
	}

	switch stmt.Value.Kind {
	case ast.ExprInt:
		v, err := s.EvalIntExpr(stmt.Value.Int)
		if err != nil {
			return err
		}
		s.Vars[name] = lang.MakeInt(v.Inner)
	case ast.ExprCellState:
		v, err := s.EvalCellStateExpr(stmt.Value.Cell)
		if err != nil {
			return err
		}
		s.Vars[name] = lang.MakeCellState(v.Inner)
	default:
		return lang.Internalf("unknown expression kind %d", stmt.Value.Kind)
	}
	return nil
}

func (s *State) execReturn(stmt *ast.ReturnStmt) (StepResult, *lang.Error) {
	if s.FuncKind != ast.FuncTransition {
		// Helper functions are not executable yet.
		return StepResult{}, lang.Unimplemented(stmt.Value.Span())
	}
	if stmt.Value.Type() != lang.TypeCellState {
		return StepResult{}, lang.Internal("invalid return statement not caught by type checker")
	}
	cellExpr, err := stmt.Value.AsCellStateExpr()
	if err != nil {
		return StepResult{}, err
	}
	v, err := s.EvalCellStateExpr(cellExpr)
	if err != nil {
		return StepResult{}, err
	}
	return StepResult{Done: true, Value: lang.MakeCellState(v.Inner)}, nil
}

// gotoBlock resolves a flattened arm to a program counter jump: a single
// Goto sets the counter to its (pre-decremented) target, an empty block
// leaves the counter alone so the universal +1 falls through. Any other
// block shape means the flattening transform was skipped or broken.
func (s *State) gotoBlock(block ast.StatementBlock) *lang.Error {
	switch {
	case len(block) == 0:
		return nil
	case len(block) == 1 && block[0].Inner.Kind == ast.StmtGoto:
		s.PC = block[0].Inner.Goto.Target
		return nil
	default:
		return lang.Internal("block in interpreter did not contain goto statement")
	}
}

// RunTransition executes a flattened transition function from a fresh
// state and narrows the result to a cell state.
func RunTransition(fn *ast.Function, stateCount int) (lang.CellState, *lang.Error) {
	st, err := New(fn, stateCount)
	if err != nil {
		return 0, err
	}
	res, err := st.Run()
	if err != nil {
		return 0, err
	}
	if res.Value.Kind != lang.VKCellState {
		return 0, lang.Internalf("transition function produced value other than cell state: %s", res.Value)
	}
	return res.Value.Cell, nil
}
