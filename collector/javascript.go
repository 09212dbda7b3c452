package collector

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// JavaScriptLanguage returns the node classification for JavaScript sources.
func JavaScriptLanguage() *Language {
	return &Language{
		Name:       "javascript",
		Sitter:     javascript.GetLanguage(),
		Extensions: []string{".js", ".jsx"},
		functions: map[string]bool{
			"function_declaration":           true,
			"function_expression":            true,
			"generator_function_declaration": true,
			"arrow_function":                 true,
			"method_definition":              true,
		},
		blocks: map[string]bool{
			"statement_block": true,
		},
		statements: map[string]bool{
			"lexical_declaration":  true,
			"variable_declaration": true,
			"expression_statement": true,
			"return_statement":     true,
			"if_statement":         true,
			"for_statement":        true,
			"for_in_statement":     true,
			"while_statement":      true,
			"do_statement":         true,
			"switch_statement":     true,
			"throw_statement":      true,
			"try_statement":        true,
			"break_statement":      true,
			"continue_statement":   true,
		},
		declarators: map[string]bool{
			"variable_declarator": true,
		},
		scopes: map[string]bool{
			"for_statement":    true,
			"for_in_statement": true,
		},
		headerClauses: map[string]map[string]bool{
			"for_statement": {"initializer": true, "increment": true},
		},
		identifier:    "identifier",
		declaredNames: javascriptDeclaredNames,
		parameters:    javascriptParameters,
	}
}

func javascriptDeclaredNames(n *sitter.Node) []*sitter.Node {
	if name := n.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
		return []*sitter.Node{name}
	}
	return nil
}

func javascriptParameters(n *sitter.Node) []*sitter.Node {
	list := n.ChildByFieldName("parameters")
	if list == nil {
		// single-parameter arrow function: x => ...
		if parameter := n.ChildByFieldName("parameter"); parameter != nil && parameter.Type() == "identifier" {
			return []*sitter.Node{parameter}
		}
		return nil
	}
	var names []*sitter.Node
	for i := 0; i < int(list.NamedChildCount()); i++ {
		child := list.NamedChild(i)
		if child.Type() == "identifier" {
			names = append(names, child)
		}
	}
	return names
}
