package collector

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"

	"github.com/scopemap/scopemap/instrument"
	"github.com/scopemap/scopemap/source"
	"golang.org/x/tools/go/packages"
)

// GoASTCollector collects instrumentation points from Go sources using the
// standard library parser instead of tree-sitter. It produces the same map
// shapes as Collector and exists for callers already rooted in go/ast
// tooling, where position information comes from a token.FileSet.
type GoASTCollector struct{}

// NewGoASTCollector creates a GoASTCollector.
func NewGoASTCollector() *GoASTCollector {
	return &GoASTCollector{}
}

// CollectSource parses the given Go source and collects instrumentation
// points and variable locations against the normalized text.
func (c *GoASTCollector) CollectSource(path, content string) (instrument.AugmentationMap, instrument.VariableLocationMap, error) {
	text := source.NewText(content)
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, text.Content(), parser.ParseComments)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse Go source %s: %w", path, err)
	}

	w := &astWalker{
		path:         path,
		text:         text,
		fset:         fset,
		augmentation: make(instrument.AugmentationMap),
		locations:    make(instrument.VariableLocationMap),
	}
	fileScope := newScope("file", nil)

	// package-level variables are visible everywhere regardless of order
	for _, decl := range file.Decls {
		if gen, ok := decl.(*ast.GenDecl); ok && gen.Tok == token.VAR {
			for _, spec := range gen.Specs {
				if value, ok := spec.(*ast.ValueSpec); ok {
					for _, name := range value.Names {
						fileScope.declare(name.Name, 0)
					}
				}
			}
		}
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok != token.VAR {
				continue
			}
			for _, spec := range d.Specs {
				if value, ok := spec.(*ast.ValueSpec); ok {
					for _, expr := range value.Values {
						w.walkExpr(expr, fileScope)
					}
					for _, name := range value.Names {
						w.recordIdent(name, fileScope)
					}
				}
			}
		case *ast.FuncDecl:
			w.walkFunc(d, fileScope)
		}
	}

	if w.err != nil {
		return nil, nil, w.err
	}
	return w.augmentation, w.locations, nil
}

// CollectPackage loads the Go packages under dir and collects every Go file,
// merging the per-file maps. Point keys never collide across files since the
// file path participates in the key.
func (c *GoASTCollector) CollectPackage(dir string) (instrument.AugmentationMap, instrument.VariableLocationMap, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load packages in %s: %w", dir, err)
	}

	augmentation := make(instrument.AugmentationMap)
	locations := make(instrument.VariableLocationMap)
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, nil, fmt.Errorf("failed to load package %s: %v", pkg.PkgPath, pkg.Errors[0])
		}
		for _, filename := range pkg.GoFiles {
			data, err := os.ReadFile(filename)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to read file %s: %w", filename, err)
			}
			fileAug, fileLocs, err := c.CollectSource(filename, string(data))
			if err != nil {
				return nil, nil, err
			}
			for key, point := range fileAug {
				augmentation[key] = point
			}
			for name, occurrences := range fileLocs {
				locations[name] = append(locations[name], occurrences...)
			}
		}
	}
	return augmentation, locations, nil
}

// astWalker mirrors walker for the go/ast path.
type astWalker struct {
	path         string
	text         *source.Text
	fset         *token.FileSet
	augmentation instrument.AugmentationMap
	locations    instrument.VariableLocationMap
	err          error
}

func (w *astWalker) offset(pos token.Pos) int {
	return w.fset.Position(pos).Offset
}

func (w *astWalker) walkFunc(fn *ast.FuncDecl, parent *scope) {
	if fn.Body == nil {
		return
	}
	fnScope := newScope("function", parent)
	start := w.offset(fn.Pos())
	if fn.Recv != nil {
		w.declareFields(fn.Recv, fnScope, start)
	}
	if fn.Type.Params != nil {
		w.declareFields(fn.Type.Params, fnScope, start)
	}
	if fn.Type.Results != nil {
		w.declareFields(fn.Type.Results, fnScope, start)
	}
	w.walkBlock(fn.Body, fnScope)
}

// declareFields declares receiver, parameter and named-result identifiers.
// The declaring identifier counts as an occurrence, matching local
// declarations: it binds the name.
func (w *astWalker) declareFields(fields *ast.FieldList, target *scope, offset int) {
	for _, field := range fields.List {
		for _, name := range field.Names {
			target.declare(name.Name, offset)
			w.recordIdent(name, target)
		}
	}
}

func (w *astWalker) walkBlock(block *ast.BlockStmt, parent *scope) {
	if block == nil {
		return
	}
	inner := newScope("block", parent)
	for _, stmt := range block.List {
		w.walkStmt(stmt, inner, true)
	}
}

// walkStmt visits a statement, optionally recording an instrumentation point
// at its start. Init and post clauses of compound statements are visited with
// record=false: they belong to the enclosing statement's point.
func (w *astWalker) walkStmt(stmt ast.Stmt, current *scope, record bool) {
	if stmt == nil || w.err != nil {
		return
	}
	if _, isBlock := stmt.(*ast.BlockStmt); record && !isBlock {
		w.recordPoint(stmt, current)
	}

	switch s := stmt.(type) {
	case *ast.BlockStmt:
		w.walkBlock(s, current)
	case *ast.AssignStmt:
		for _, rhs := range s.Rhs {
			w.walkExpr(rhs, current)
		}
		if s.Tok == token.DEFINE {
			for _, lhs := range s.Lhs {
				if ident, ok := lhs.(*ast.Ident); ok {
					current.declare(ident.Name, w.offset(ident.Pos()))
					w.recordIdent(ident, current)
				}
			}
		} else {
			for _, lhs := range s.Lhs {
				w.walkExpr(lhs, current)
			}
		}
	case *ast.DeclStmt:
		gen, ok := s.Decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.VAR {
			return
		}
		for _, spec := range gen.Specs {
			if value, ok := spec.(*ast.ValueSpec); ok {
				for _, expr := range value.Values {
					w.walkExpr(expr, current)
				}
				for _, name := range value.Names {
					current.declare(name.Name, w.offset(name.Pos()))
					w.recordIdent(name, current)
				}
			}
		}
	case *ast.ExprStmt:
		w.walkExpr(s.X, current)
	case *ast.ReturnStmt:
		for _, result := range s.Results {
			w.walkExpr(result, current)
		}
	case *ast.IfStmt:
		inner := newScope("if", current)
		w.walkStmt(s.Init, inner, false)
		w.walkExpr(s.Cond, inner)
		w.walkBlock(s.Body, inner)
		w.walkStmt(s.Else, inner, true)
	case *ast.ForStmt:
		inner := newScope("for", current)
		w.walkStmt(s.Init, inner, false)
		w.walkExpr(s.Cond, inner)
		w.walkStmt(s.Post, inner, false)
		w.walkBlock(s.Body, inner)
	case *ast.RangeStmt:
		inner := newScope("range", current)
		w.walkExpr(s.X, inner)
		for _, expr := range []ast.Expr{s.Key, s.Value} {
			ident, ok := expr.(*ast.Ident)
			if !ok {
				continue
			}
			if s.Tok == token.DEFINE {
				inner.declare(ident.Name, w.offset(ident.Pos()))
			}
			w.recordIdent(ident, inner)
		}
		w.walkBlock(s.Body, inner)
	case *ast.GoStmt:
		w.walkExpr(s.Call, current)
	case *ast.DeferStmt:
		w.walkExpr(s.Call, current)
	case *ast.SendStmt:
		w.walkExpr(s.Chan, current)
		w.walkExpr(s.Value, current)
	case *ast.IncDecStmt:
		w.walkExpr(s.X, current)
	case *ast.SwitchStmt:
		inner := newScope("switch", current)
		w.walkStmt(s.Init, inner, false)
		w.walkExpr(s.Tag, inner)
		w.walkCaseClauses(s.Body, inner)
	case *ast.TypeSwitchStmt:
		inner := newScope("switch", current)
		w.walkStmt(s.Init, inner, false)
		w.walkStmt(s.Assign, inner, false)
		w.walkCaseClauses(s.Body, inner)
	case *ast.SelectStmt:
		for _, clause := range s.Body.List {
			if comm, ok := clause.(*ast.CommClause); ok {
				inner := newScope("case", current)
				w.walkStmt(comm.Comm, inner, false)
				for _, body := range comm.Body {
					w.walkStmt(body, inner, true)
				}
			}
		}
	case *ast.LabeledStmt:
		w.walkStmt(s.Stmt, current, false)
	}
}

func (w *astWalker) walkCaseClauses(body *ast.BlockStmt, current *scope) {
	for _, clause := range body.List {
		if cc, ok := clause.(*ast.CaseClause); ok {
			inner := newScope("case", current)
			for _, expr := range cc.List {
				w.walkExpr(expr, inner)
			}
			for _, stmt := range cc.Body {
				w.walkStmt(stmt, inner, true)
			}
		}
	}
}

func (w *astWalker) walkExpr(expr ast.Expr, current *scope) {
	if expr == nil || w.err != nil {
		return
	}
	switch e := expr.(type) {
	case *ast.Ident:
		w.recordIdent(e, current)
	case *ast.SelectorExpr:
		// only the receiver side can reference a local variable
		w.walkExpr(e.X, current)
	case *ast.CallExpr:
		w.walkExpr(e.Fun, current)
		for _, arg := range e.Args {
			w.walkExpr(arg, current)
		}
	case *ast.BinaryExpr:
		w.walkExpr(e.X, current)
		w.walkExpr(e.Y, current)
	case *ast.UnaryExpr:
		w.walkExpr(e.X, current)
	case *ast.ParenExpr:
		w.walkExpr(e.X, current)
	case *ast.StarExpr:
		w.walkExpr(e.X, current)
	case *ast.IndexExpr:
		w.walkExpr(e.X, current)
		w.walkExpr(e.Index, current)
	case *ast.SliceExpr:
		w.walkExpr(e.X, current)
		w.walkExpr(e.Low, current)
		w.walkExpr(e.High, current)
		w.walkExpr(e.Max, current)
	case *ast.TypeAssertExpr:
		w.walkExpr(e.X, current)
	case *ast.CompositeLit:
		for _, elt := range e.Elts {
			if kv, ok := elt.(*ast.KeyValueExpr); ok {
				w.walkExpr(kv.Value, current)
				continue
			}
			w.walkExpr(elt, current)
		}
	case *ast.FuncLit:
		fnScope := newScope("function", current)
		start := w.offset(e.Pos())
		if e.Type.Params != nil {
			w.declareFields(e.Type.Params, fnScope, start)
		}
		if e.Type.Results != nil {
			w.declareFields(e.Type.Results, fnScope, start)
		}
		w.walkBlock(e.Body, fnScope)
	}
}

// recordPoint registers an instrumentation point at the statement start.
func (w *astWalker) recordPoint(stmt ast.Stmt, current *scope) {
	start := w.offset(stmt.Pos())
	position, err := w.text.PositionAt(start)
	if err != nil {
		w.err = err
		return
	}
	span := source.Span{Start: start, End: w.offset(stmt.End())}
	key := instrument.NewPointKey(w.path, span)
	w.augmentation[key] = &instrument.InstrumentationPoint{
		Key:       key,
		Position:  position,
		Variables: current.visibleBefore(start),
	}
}

// recordIdent registers a variable occurrence when the identifier resolves
// in the scope chain.
func (w *astWalker) recordIdent(ident *ast.Ident, current *scope) {
	if ident == nil || ident.Name == "_" {
		return
	}
	start := w.offset(ident.Pos())
	if _, ok := current.resolve(ident.Name, start); !ok {
		return
	}
	position, err := w.text.PositionAt(start)
	if err != nil {
		w.err = err
		return
	}
	w.locations[ident.Name] = append(w.locations[ident.Name], instrument.VariableOccurrence{
		Name:      ident.Name,
		Span:      source.Span{Start: start, End: w.offset(ident.End())},
		StartLine: position.Line,
	})
}
