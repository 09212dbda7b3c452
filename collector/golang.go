package collector

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// GoLanguage returns the node classification for Go sources.
func GoLanguage() *Language {
	return &Language{
		Name:       "go",
		Sitter:     golang.GetLanguage(),
		Extensions: []string{".go"},
		functions: map[string]bool{
			"function_declaration": true,
			"method_declaration":   true,
			"func_literal":         true,
		},
		blocks: map[string]bool{
			"block": true,
		},
		statements: map[string]bool{
			"short_var_declaration":       true,
			"var_declaration":             true,
			"assignment_statement":        true,
			"expression_statement":        true,
			"return_statement":            true,
			"if_statement":                true,
			"for_statement":               true,
			"go_statement":                true,
			"defer_statement":             true,
			"send_statement":              true,
			"inc_statement":               true,
			"dec_statement":               true,
			"expression_switch_statement": true,
			"type_switch_statement":       true,
			"select_statement":            true,
		},
		declarators: map[string]bool{
			"short_var_declaration": true,
			"var_spec":              true,
			"range_clause":          true,
		},
		scopes: map[string]bool{
			"for_statement":               true,
			"if_statement":                true,
			"expression_switch_statement": true,
			"type_switch_statement":       true,
			"expression_case":             true,
			"type_case":                   true,
			"default_case":                true,
			"communication_case":          true,
		},
		headerClauses: map[string]map[string]bool{
			"for_clause":                  {"initializer": true, "update": true},
			"if_statement":                {"initializer": true},
			"expression_switch_statement": {"initializer": true},
			"type_switch_statement":       {"initializer": true},
		},
		identifier:    "identifier",
		declaredNames: goDeclaredNames,
		parameters:    goParameters,
	}
}

func goDeclaredNames(n *sitter.Node) []*sitter.Node {
	switch n.Type() {
	case "short_var_declaration", "range_clause":
		// left side is an expression_list of identifiers
		left := n.ChildByFieldName("left")
		if left == nil {
			return nil
		}
		if left.Type() == "identifier" {
			return []*sitter.Node{left}
		}
		return namedChildrenOfType(left, "identifier")
	case "var_spec":
		return childrenByFieldName(n, "name")
	}
	return nil
}

func goParameters(n *sitter.Node) []*sitter.Node {
	lists := []*sitter.Node{n.ChildByFieldName("receiver"), n.ChildByFieldName("parameters")}
	if result := n.ChildByFieldName("result"); result != nil && result.Type() == "parameter_list" {
		lists = append(lists, result)
	}
	var names []*sitter.Node
	for _, list := range lists {
		if list == nil {
			continue
		}
		for i := 0; i < int(list.NamedChildCount()); i++ {
			names = append(names, childrenByFieldName(list.NamedChild(i), "name")...)
		}
	}
	return names
}
