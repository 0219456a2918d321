package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tracelet/internal/ast"
)

var parseCmd = &cobra.Command{
	Use:   "parse <script>",
	Short: "Parse a script and dump its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	res, err := loadScript(cmd, args[0])
	if err != nil {
		return err
	}
	dumpStmts(os.Stdout, res.Prog, res.Prog.Module.Body, 0)
	return nil
}

func dumpStmts(w io.Writer, prog *ast.Program, body []ast.StmtID, depth int) {
	for _, id := range body {
		dumpStmt(w, prog, id, depth)
	}
}

func dumpStmt(w io.Writer, prog *ast.Program, id ast.StmtID, depth int) {
	stmt := prog.Stmts.Get(id)
	indent := strings.Repeat("  ", depth)

	switch stmt.Kind {
	case ast.StmtFuncDef:
		data, _ := prog.Stmts.FuncDef(id)
		params := make([]string, len(data.Params))
		for i, p := range data.Params {
			params[i] = prog.Strings.MustLookup(p.Name)
		}
		fmt.Fprintf(w, "%s%s %s(%s) %s\n", indent, stmt.Kind,
			prog.Strings.MustLookup(data.Name), strings.Join(params, ", "), stmt.Span)
		dumpStmts(w, prog, data.Body, depth+1)
	case ast.StmtAssign:
		data, _ := prog.Stmts.Assign(id)
		fmt.Fprintf(w, "%s%s %s\n", indent, stmt.Kind, stmt.Span)
		for _, target := range data.Targets {
			dumpExpr(w, prog, target, depth+1)
		}
		dumpExpr(w, prog, data.Value, depth+1)
	case ast.StmtAugAssign:
		data, _ := prog.Stmts.AugAssign(id)
		fmt.Fprintf(w, "%s%s %s= %s\n", indent, stmt.Kind, data.Op.Token(), stmt.Span)
		dumpExpr(w, prog, data.Target, depth+1)
		dumpExpr(w, prog, data.Value, depth+1)
	case ast.StmtReturn:
		data, _ := prog.Stmts.Return(id)
		fmt.Fprintf(w, "%s%s %s\n", indent, stmt.Kind, stmt.Span)
		if data.Value.IsValid() {
			dumpExpr(w, prog, data.Value, depth+1)
		}
	case ast.StmtExpr:
		data, _ := prog.Stmts.Expr(id)
		fmt.Fprintf(w, "%s%s %s\n", indent, stmt.Kind, stmt.Span)
		dumpExpr(w, prog, data.Value, depth+1)
	case ast.StmtImport:
		data, _ := prog.Stmts.Import(id)
		fmt.Fprintf(w, "%s%s %s %s\n", indent, stmt.Kind, prog.Strings.MustLookup(data.Module), stmt.Span)
	case ast.StmtGlobal:
		data, _ := prog.Stmts.Global(id)
		names := make([]string, len(data.Names))
		for i, n := range data.Names {
			names[i] = prog.Strings.MustLookup(n)
		}
		fmt.Fprintf(w, "%s%s %s %s\n", indent, stmt.Kind, strings.Join(names, ", "), stmt.Span)
	}
}

func dumpExpr(w io.Writer, prog *ast.Program, id ast.ExprID, depth int) {
	expr := prog.Exprs.Get(id)
	indent := strings.Repeat("  ", depth)

	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := prog.Exprs.Ident(id)
		fmt.Fprintf(w, "%s%s %s %s\n", indent, expr.Kind, prog.Strings.MustLookup(data.Name), expr.Span)
	case ast.ExprLit:
		data, _ := prog.Exprs.Literal(id)
		fmt.Fprintf(w, "%s%s %q %s\n", indent, expr.Kind, prog.Strings.MustLookup(data.Value), expr.Span)
	case ast.ExprBinary:
		data, _ := prog.Exprs.Binary(id)
		fmt.Fprintf(w, "%s%s %s %s\n", indent, expr.Kind, data.Op.Token(), expr.Span)
		dumpExpr(w, prog, data.Left, depth+1)
		dumpExpr(w, prog, data.Right, depth+1)
	case ast.ExprCall:
		data, _ := prog.Exprs.Call(id)
		fmt.Fprintf(w, "%s%s %s\n", indent, expr.Kind, expr.Span)
		dumpExpr(w, prog, data.Callee, depth+1)
		for _, arg := range data.Args {
			dumpExpr(w, prog, arg, depth+1)
		}
	case ast.ExprAttr:
		data, _ := prog.Exprs.Attr(id)
		fmt.Fprintf(w, "%s%s .%s %s\n", indent, expr.Kind, prog.Strings.MustLookup(data.Attr), expr.Span)
		dumpExpr(w, prog, data.Object, depth+1)
	}
}
