package collector

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
)

// CSharpLanguage returns the node classification for C# sources.
func CSharpLanguage() *Language {
	return &Language{
		Name:       "csharp",
		Sitter:     csharp.GetLanguage(),
		Extensions: []string{".cs", ".csx"},
		functions: map[string]bool{
			"method_declaration":       true,
			"constructor_declaration":  true,
			"local_function_statement": true,
			"lambda_expression":        true,
		},
		blocks: map[string]bool{
			"block": true,
		},
		statements: map[string]bool{
			"local_declaration_statement": true,
			"expression_statement":        true,
			"return_statement":            true,
			"if_statement":                true,
			"for_statement":               true,
			"foreach_statement":           true,
			"while_statement":             true,
			"do_statement":                true,
			"switch_statement":            true,
			"throw_statement":             true,
			"try_statement":               true,
			"break_statement":             true,
			"continue_statement":          true,
		},
		declarators: map[string]bool{
			"variable_declarator": true,
			"foreach_statement":   true,
		},
		scopes: map[string]bool{
			"for_statement":     true,
			"foreach_statement": true,
			"switch_statement":  true,
		},
		identifier:    "identifier",
		declaredNames: csharpDeclaredNames,
		parameters:    csharpParameters,
	}
}

func csharpDeclaredNames(n *sitter.Node) []*sitter.Node {
	switch n.Type() {
	case "variable_declarator":
		if name := n.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
			return []*sitter.Node{name}
		}
		return firstIdentifier(n)
	case "foreach_statement":
		// the loop variable: foreach (var item in items)
		if left := n.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
			return []*sitter.Node{left}
		}
	}
	return nil
}

func csharpParameters(n *sitter.Node) []*sitter.Node {
	list := n.ChildByFieldName("parameters")
	if list == nil {
		return nil
	}
	var names []*sitter.Node
	for i := 0; i < int(list.NamedChildCount()); i++ {
		parameter := list.NamedChild(i)
		if name := parameter.ChildByFieldName("name"); name != nil {
			names = append(names, name)
			continue
		}
		names = append(names, firstIdentifier(parameter)...)
	}
	return names
}

// firstIdentifier returns the first direct named child of type identifier.
func firstIdentifier(n *sitter.Node) []*sitter.Node {
	identifiers := namedChildrenOfType(n, "identifier")
	if len(identifiers) == 0 {
		return nil
	}
	return identifiers[:1]
}
