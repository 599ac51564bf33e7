// Package compiler is the second execution engine: it translates a flattened
// transition function into a chain of Go closures once, so that repeated
// calls skip tree dispatch entirely. Compiled code produces exactly the same
// results and faults, with the same spans, as the tree-walking interpreter.
package compiler

import (
	"ndca/internal/ast"
	"ndca/internal/lang"
	"ndca/internal/source"
)

// machine is the mutable run state of one compiled call: a program counter
// into the instruction slice and one value slot per variable.
type machine struct {
	pc         int
	slots      []lang.Value
	stateCount int

	halted bool
	result lang.Value // VKInvalid when the run produced no value
}

// instr executes one instruction, leaving m.pc at the next instruction to
// run. Shared convention with the interpreter: the counter advances by one
// after every instruction, so jumps store pre-decremented targets.
type instr func(m *machine) *lang.Error

// Compiled is a transition function translated to closures. It is immutable
// and safe for concurrent Call invocations; every call runs on a fresh
// machine.
type Compiled struct {
	code       []instr
	defaults   []lang.Value
	stateCount int
}

// Compile translates a flattened function. The function must already be
// well typed and flattened; helper functions are not compilable yet and
// fault with an unimplemented error. stateCount must be a valid state count.
func Compile(fn *ast.Function, stateCount int) (*Compiled, *lang.Error) {
	if !lang.ValidStateCount(stateCount) {
		return nil, lang.Internalf("invalid state count %d", stateCount)
	}
	if fn.Kind != ast.FuncTransition {
		// Helper functions are not compilable yet.
		return nil, lang.Unimplemented(source.Span{})
	}

	cc := &compilation{slots: make(map[string]int, len(fn.Vars))}
	for name, typ := range fn.Vars {
		v, err := lang.DefaultValue(typ)
		if err != nil {
			return nil, lang.Internal("invalid variable type not caught by type checker")
		}
		cc.slots[name] = len(cc.defaults)
		cc.defaults = append(cc.defaults, v)
	}

	code := make([]instr, 0, len(fn.Statements))
	for i := range fn.Statements {
		in, err := cc.compileStmt(&fn.Statements[i])
		if err != nil {
			return nil, err
		}
		code = append(code, in)
	}
	return &Compiled{code: code, defaults: cc.defaults, stateCount: stateCount}, nil
}

// compilation holds per-function translation state.
type compilation struct {
	slots    map[string]int
	defaults []lang.Value
}

func (cc *compilation) slotOf(name string) (int, *lang.Error) {
	slot, ok := cc.slots[name]
	if !ok {
		return 0, lang.Internalf("read of undeclared variable %q not caught by type checker", name)
	}
	return slot, nil
}

func (cc *compilation) compileStmt(stmt *source.Spanned[ast.Stmt]) (instr, *lang.Error) {
	switch stmt.Inner.Kind {
	case ast.StmtSetVar:
		return cc.compileSetVar(&stmt.Inner.SetVar)

	case ast.StmtIf:
		return cc.compileIf(&stmt.Inner.If)

	case ast.StmtReturn:
		value, err := stmt.Inner.Return.Value.AsCellStateExpr()
		if err != nil {
			return nil, err
		}
		eval, cerr := cc.compileCellExpr(value)
		if cerr != nil {
			return nil, cerr
		}
		return func(m *machine) *lang.Error {
			v, err := eval(m)
			if err != nil {
				return err
			}
			m.halted = true
			m.result = lang.MakeCellState(v)
			return nil
		}, nil

	case ast.StmtEnd:
		return func(m *machine) *lang.Error {
			m.halted = true
			return nil
		}, nil

	case ast.StmtGoto:
		target := stmt.Inner.Goto.Target
		return func(m *machine) *lang.Error {
			m.pc = target
			return nil
		}, nil
	}
	return nil, lang.Internalf("unknown statement kind %d", stmt.Inner.Kind)
}

func (cc *compilation) compileSetVar(stmt *ast.SetVarStmt) (instr, *lang.Error) {
	slot, err := cc.slotOf(stmt.Name.Inner)
	if err != nil {
		return nil, err
	}
	switch stmt.Value.Kind {
	case ast.ExprInt:
		eval, err := cc.compileIntExpr(stmt.Value.Int)
		if err != nil {
			return nil, err
		}
		return func(m *machine) *lang.Error {
			v, err := eval(m)
			if err != nil {
				return err
			}
			m.slots[slot] = lang.MakeInt(v)
			return nil
		}, nil
	case ast.ExprCellState:
		eval, err := cc.compileCellExpr(stmt.Value.Cell)
		if err != nil {
			return nil, err
		}
		return func(m *machine) *lang.Error {
			v, err := eval(m)
			if err != nil {
				return err
			}
			m.slots[slot] = lang.MakeCellState(v)
			return nil
		}, nil
	}
	return nil, lang.Internalf("assignment of %s value not caught by type checker", stmt.Value.Type())
}

// compileIf resolves both arms to jump targets at compile time. After
// flattening each arm is either empty (fall through to the next
// instruction) or a single goto.
func (cc *compilation) compileIf(stmt *ast.IfStmt) (instr, *lang.Error) {
	cond, err := cc.compileIntExpr(&stmt.Cond)
	if err != nil {
		return nil, err
	}
	ifTrue, err := armTarget(stmt.IfTrue)
	if err != nil {
		return nil, err
	}
	ifFalse, err := armTarget(stmt.IfFalse)
	if err != nil {
		return nil, err
	}
	return func(m *machine) *lang.Error {
		v, err := cond(m)
		if err != nil {
			return err
		}
		if v != 0 {
			m.pc = ifTrue(m.pc)
		} else {
			m.pc = ifFalse(m.pc)
		}
		return nil
	}, nil
}

// armTarget maps a flattened branch arm to its effect on the program
// counter before the universal +1 advance.
func armTarget(arm ast.StatementBlock) (func(pc int) int, *lang.Error) {
	switch {
	case len(arm) == 0:
		return func(pc int) int { return pc }, nil
	case len(arm) == 1 && arm[0].Inner.Kind == ast.StmtGoto:
		target := arm[0].Inner.Goto.Target
		return func(int) int { return target }, nil
	}
	return nil, lang.Internal("branch arm was not flattened to a goto")
}

// Call runs the compiled transition function and returns the cell state it
// becomes. Running past the final instruction without a `become` is an
// internal error: the transition function must produce a state.
func (c *Compiled) Call() (lang.CellState, *lang.Error) {
	m := &machine{slots: make([]lang.Value, len(c.defaults)), stateCount: c.stateCount}
	copy(m.slots, c.defaults)

	for !m.halted && m.pc < len(c.code) {
		if err := c.code[m.pc](m); err != nil {
			return 0, err
		}
		m.pc++
	}
	if m.result.Kind != lang.VKCellState {
		return 0, lang.Internal("transition function did not return a cell state")
	}
	return m.result.Cell, nil
}
