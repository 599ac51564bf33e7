package parser

import (
	"testing"

	"ndca/internal/ast"
	"ndca/internal/lang"
	"ndca/internal/source"
	"ndca/internal/token"
)

func parse(t *testing.T, text string) *File {
	t.Helper()
	file, err := Parse(source.New("", []byte(text)))
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}
	return file
}

func parseErr(t *testing.T, text string) *lang.Error {
	t.Helper()
	_, err := Parse(source.New("", []byte(text)))
	if err == nil {
		t.Fatalf("Parse(%q) should fail", text)
	}
	return err
}

func TestParse_TransitionDirective(t *testing.T) {
	file := parse(t, "@transition {\n    set x = 3\n    become #1\n}\n")
	if len(file.Directives) != 1 {
		t.Fatalf("directives = %d, want 1", len(file.Directives))
	}
	dir := file.Directives[0]
	if dir.Name.Inner != "transition" {
		t.Errorf("name = %q", dir.Name.Inner)
	}
	if len(dir.Body) != 2 {
		t.Fatalf("body statements = %d, want 2", len(dir.Body))
	}
	if dir.Body[0].Kind != StmtSet || dir.Body[1].Kind != StmtBecome {
		t.Errorf("statement kinds = %v, %v", dir.Body[0].Kind, dir.Body[1].Kind)
	}
}

func TestParse_CompoundAssignment(t *testing.T) {
	file := parse(t, "@transition { set y -= 3 }")
	stmt := file.Directives[0].Body[0]
	if stmt.AssignOp != token.MinusAssign {
		t.Errorf("assign op = %v, want -=", stmt.AssignOp)
	}
	if stmt.Name.Inner != "y" {
		t.Errorf("target = %q", stmt.Name.Inner)
	}
}

func TestParse_Precedence(t *testing.T) {
	// 1 + 2 * 3 parses as 1 + (2 * 3).
	file := parse(t, "@transition { set x = 1 + 2 * 3 }")
	e := file.Directives[0].Body[0].Value
	if e.Kind != ExprBinary || e.Op != ast.OpAdd {
		t.Fatalf("top = %v op %v, want binary +", e.Kind, e.Op)
	}
	if e.Rhs.Kind != ExprBinary || e.Rhs.Op != ast.OpMul {
		t.Errorf("rhs = %v op %v, want binary *", e.Rhs.Kind, e.Rhs.Op)
	}

	// 3 * 99 % 2 parses left-associatively as (3 * 99) % 2.
	file = parse(t, "@transition { set x = 3 * 99 % 2 }")
	e = file.Directives[0].Body[0].Value
	if e.Kind != ExprBinary || e.Op != ast.OpRem {
		t.Fatalf("top op = %v, want %%", e.Op)
	}
	if e.Lhs.Kind != ExprBinary || e.Lhs.Op != ast.OpMul {
		t.Errorf("lhs op = %v, want *", e.Lhs.Op)
	}
}

func TestParse_PowRightAssociative(t *testing.T) {
	file := parse(t, "@transition { set x = 2 ** 3 ** 4 }")
	e := file.Directives[0].Body[0].Value
	if e.Kind != ExprBinary || e.Op != ast.OpExp {
		t.Fatalf("top op = %v, want **", e.Op)
	}
	if e.Rhs.Kind != ExprBinary || e.Rhs.Op != ast.OpExp {
		t.Errorf("rhs should be the nested **, got %v", e.Rhs.Op)
	}
}

func TestParse_ChainedComparison(t *testing.T) {
	file := parse(t, "@transition { set x = 1 < 2 < 3 }")
	e := file.Directives[0].Body[0].Value
	if e.Kind != ExprCompare {
		t.Fatalf("kind = %v, want compare", e.Kind)
	}
	if len(e.Comparisons) != 2 {
		t.Fatalf("links = %d, want 2", len(e.Comparisons))
	}
	if e.Comparisons[0].Op != ast.CmpLt || e.Comparisons[1].Op != ast.CmpLt {
		t.Errorf("ops = %v, %v", e.Comparisons[0].Op, e.Comparisons[1].Op)
	}
}

func TestParse_ComparisonBindsLooserThanArithmetic(t *testing.T) {
	// 3 * 99 % 2 == 1 parses as (3*99%2) == 1, one chain link.
	file := parse(t, "@transition { set x = 3 * 99 % 2 == 1 }")
	e := file.Directives[0].Body[0].Value
	if e.Kind != ExprCompare || len(e.Comparisons) != 1 {
		t.Fatalf("want a single-link chain, got %v with %d links", e.Kind, len(e.Comparisons))
	}
	if e.Initial.Kind != ExprBinary {
		t.Errorf("chain initial should be the arithmetic expression")
	}
}

func TestParse_CellLiterals(t *testing.T) {
	file := parse(t, "@transition { become #12 }")
	e := file.Directives[0].Body[0].Value
	if e.Kind != ExprCell || e.X.Kind != ExprIntLit || e.X.Int != 12 {
		t.Errorf("#12 parsed as %v", e.Kind)
	}

	file = parse(t, "@transition { become #(10 / 3) }")
	e = file.Directives[0].Body[0].Value
	if e.Kind != ExprCell || e.X.Kind != ExprBinary || e.X.Op != ast.OpDiv {
		t.Errorf("#(10 / 3) parsed wrong")
	}

	// A bare identifier after # converts that variable's value.
	src := "@transition { set y = 4\nbecome #y }"
	file = parse(t, src)
	e = file.Directives[0].Body[1].Value
	if e.Kind != ExprCell || e.X.Kind != ExprVar || e.X.Name != "y" {
		t.Fatalf("#y parsed as %v", e.Kind)
	}
	if src[e.Span.Start:e.Span.End] != "#y" {
		t.Errorf("#y span covers %q", src[e.Span.Start:e.Span.End])
	}
	if src[e.X.Span.Start:e.X.Span.End] != "y" {
		t.Errorf("variable span covers %q", src[e.X.Span.Start:e.X.Span.End])
	}
}

func TestParse_ElseIfChain(t *testing.T) {
	file := parse(t, `@transition {
    if 1 { become #1 } else if 2 { become #2 } else { become #3 }
}`)
	stmt := file.Directives[0].Body[0]
	if stmt.Kind != StmtIf {
		t.Fatalf("kind = %v", stmt.Kind)
	}
	if len(stmt.IfFalse) != 1 || stmt.IfFalse[0].Kind != StmtIf {
		t.Fatalf("else-if should nest a single if in the false arm")
	}
	nested := stmt.IfFalse[0]
	if len(nested.IfFalse) != 1 || nested.IfFalse[0].Kind != StmtBecome {
		t.Errorf("final else arm wrong")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected lang.Code
	}{
		{"top level non-directive", "set x = 1", lang.CodeTopLevelNonDirective},
		{"missing directive name", "@ { }", lang.CodeInvalidDirectiveName},
		{"unmatched brace", "@transition { set x = 1", lang.CodeUnmatched},
		{"unmatched paren", "@transition { set x = (1 + 2 }", lang.CodeUnmatched},
		{"missing assignment op", "@transition { set x 3 }", lang.CodeExpected},
		{"missing expression", "@transition { set x = }", lang.CodeExpected},
		{"bad statement", "@transition { 42 }", lang.CodeExpected},
		{"bare hash", "@transition { become # }", lang.CodeExpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseErr(t, tt.text)
			if err.Code != tt.expected {
				t.Errorf("code = %v, want %v (err: %v)", err.Code, tt.expected, err)
			}
		})
	}
}

func TestParse_CommentsIgnored(t *testing.T) {
	file := parse(t, `@transition {
    set x = 3 // comment
    // a full-line comment
    become #1
}`)
	if len(file.Directives[0].Body) != 2 {
		t.Errorf("body statements = %d, want 2", len(file.Directives[0].Body))
	}
}
