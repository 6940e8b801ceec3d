package enumvalidator

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
)

// enumTypes are the string enums whose values must come from declared constants.
var enumTypes = map[string]bool{
	"RoleName":           true,
	"WorkspaceEventType": true,
}

var Analyzer = &analysis.Analyzer{
	Name: "enumvalidator",
	Doc:  "checks that role and workspace event enums only use defined constants, not string literals",
	Run:  run,
}

func run(pass *analysis.Pass) (any, error) {
	for _, file := range pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			switch node := n.(type) {
			case *ast.AssignStmt:
				checkAssign(pass, node)
			case *ast.CompositeLit:
				checkCompositeLit(pass, node)
			}
			return true
		})
	}
	return nil, nil
}

func checkAssign(pass *analysis.Pass, assign *ast.AssignStmt) {
	if len(assign.Lhs) != len(assign.Rhs) {
		return
	}
	for i, lhs := range assign.Lhs {
		sel, ok := lhs.(*ast.SelectorExpr)
		if !ok || !isEnum(pass.TypesInfo.TypeOf(sel)) {
			continue
		}
		if isStringLiteral(assign.Rhs[i]) {
			pass.Reportf(assign.Pos(),
				"enum field %s assigned string literal; use defined constant instead",
				sel.Sel.Name)
		}
	}
}

// checkCompositeLit covers Struct{Field: "literal"}.
func checkCompositeLit(pass *analysis.Pass, lit *ast.CompositeLit) {
	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		if !ok {
			continue
		}
		key, ok := kv.Key.(*ast.Ident)
		if !ok || !isEnum(pass.TypesInfo.TypeOf(kv.Value)) {
			continue
		}
		if isStringLiteral(kv.Value) {
			pass.Reportf(kv.Pos(),
				"enum field %s assigned string literal; use defined constant instead",
				key.Name)
		}
	}
}

func isEnum(t types.Type) bool {
	named, ok := t.(*types.Named)
	return ok && enumTypes[named.Obj().Name()]
}

func isStringLiteral(expr ast.Expr) bool {
	lit, ok := expr.(*ast.BasicLit)
	return ok && lit.Kind == token.STRING
}
