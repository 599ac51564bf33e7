package ast

import (
	"ndca/internal/source"
)

// Flatten rewrites the function body into a single linear instruction
// sequence so that the interpreter and the compiled backend can both
// operate by plain index arithmetic instead of recursive tree descent.
//
// Every statement owning nested blocks has those blocks relocated to the
// end of the top-level sequence and replaced in place: an empty block stays
// empty (fallthrough), a non-empty block becomes a single Goto. Relocated
// statements are processed by the same scan, so arbitrarily nested bodies
// end up in the one flat sequence.
//
// Jump-target invariant: the interpreter advances its program counter by
// one after executing any instruction, including Goto. Every encoded
// target is therefore stored pre-decremented, as destination index minus
// one, so the universal +1 lands exactly on the intended instruction.
func Flatten(fn *Function) {
	FlattenBlock(&fn.Statements)
}

// FlattenBlock flattens one top-level statement block in place.
func FlattenBlock(block *StatementBlock) {
	// len(*block) grows as nested blocks are appended; the scan picks the
	// relocated statements up and flattens their own nesting in turn.
	for i := 0; i < len(*block); i++ {
		if (*block)[i].Inner.Kind != StmtIf {
			continue
		}
		ifTrue := (*block)[i].Inner.If.IfTrue
		ifFalse := (*block)[i].Inner.If.IfFalse
		trueRepl := relocate(block, ifTrue)
		falseRepl := relocate(block, ifFalse)
		// Re-index: relocate may have grown the backing array.
		(*block)[i].Inner.If.IfTrue = trueRepl
		(*block)[i].Inner.If.IfFalse = falseRepl
	}
}

// relocate appends a nested block's statements to the end of the top-level
// sequence and returns the replacement block: nil for an empty block
// (fallthrough), otherwise a single Goto carrying the pre-decremented
// start index of the relocated statements.
func relocate(top *StatementBlock, stmts StatementBlock) StatementBlock {
	if len(stmts) == 0 {
		return nil
	}
	target := len(*top) - 1
	span := stmts[0].Span.Cover(stmts[len(stmts)-1].Span)
	*top = append(*top, stmts...)
	return StatementBlock{
		source.At(span, Stmt{Kind: StmtGoto, Goto: GotoStmt{Target: target}}),
	}
}
