package collector

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Language describes how a tree-sitter grammar maps onto the closed set of
// node classes the collector cares about: scopes, instrumentable statements,
// variable declarations and variable references.
type Language struct {
	Name       string
	Sitter     *sitter.Language
	Extensions []string

	functions   map[string]bool // nodes that open a scope and carry parameters
	blocks      map[string]bool // nodes that open a plain lexical scope
	statements  map[string]bool // instrumentable statements
	declarators map[string]bool // nodes that introduce variable names
	identifier  string          // node type of a plain identifier reference

	// scopes lists statements and clauses that open a lexical scope of
	// their own, so header declarations (a for initializer, a foreach loop
	// variable) stay confined to the statement they belong to.
	scopes map[string]bool
	// headerClauses maps a parent node type to the grammar fields whose
	// statement children are header clauses. Header clauses belong to the
	// enclosing statement's instrumentation point, not their own.
	headerClauses map[string]map[string]bool

	// declaredNames returns the identifier nodes a declarator introduces.
	declaredNames func(n *sitter.Node) []*sitter.Node
	// parameters returns the identifier nodes of a function node's parameters.
	parameters func(n *sitter.Node) []*sitter.Node
}

// nodeClass is the tagged variant the walker dispatches on.
type nodeClass int

const (
	classOther nodeClass = iota
	classFunction
	classBlock
	classReference
)

func (l *Language) classify(nodeType string) nodeClass {
	switch {
	case l.functions[nodeType]:
		return classFunction
	case l.blocks[nodeType]:
		return classBlock
	case nodeType == l.identifier:
		return classReference
	}
	return classOther
}

func (l *Language) isStatement(n *sitter.Node) bool {
	if !l.statements[n.Type()] {
		return false
	}
	parent := n.Parent()
	if parent == nil {
		return true
	}
	fields := l.headerClauses[parent.Type()]
	if len(fields) == 0 {
		return true
	}
	return !fields[fieldNameOf(n)]
}

func (l *Language) opensScope(nodeType string) bool {
	return l.scopes[nodeType]
}

func (l *Language) isDeclarator(nodeType string) bool {
	return l.declarators[nodeType]
}

// LanguageFor returns the language registered for the given file name, based
// on its extension.
func LanguageFor(filename string) (*Language, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".go":
		return GoLanguage(), nil
	case ".cs", ".csx":
		return CSharpLanguage(), nil
	case ".js", ".jsx":
		return JavaScriptLanguage(), nil
	}
	return nil, fmt.Errorf("unsupported file type: %s", ext)
}

// namedChildrenOfType collects direct named children with the given node type.
func namedChildrenOfType(n *sitter.Node, nodeType string) []*sitter.Node {
	if n == nil {
		return nil
	}
	var matched []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == nodeType {
			matched = append(matched, child)
		}
	}
	return matched
}

// fieldNameOf returns the grammar field the node occupies in its parent.
func fieldNameOf(n *sitter.Node) string {
	parent := n.Parent()
	if parent == nil {
		return ""
	}
	for i := 0; i < int(parent.ChildCount()); i++ {
		child := parent.Child(i)
		if child.StartByte() == n.StartByte() && child.EndByte() == n.EndByte() && child.Type() == n.Type() {
			return parent.FieldNameForChild(i)
		}
	}
	return ""
}

// childrenByFieldName collects children attached to the given grammar field.
func childrenByFieldName(n *sitter.Node, field string) []*sitter.Node {
	if n == nil {
		return nil
	}
	var matched []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.FieldNameForChild(i) == field {
			matched = append(matched, n.Child(i))
		}
	}
	return matched
}
