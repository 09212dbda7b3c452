package collector

import (
	"context"
	"fmt"

	"github.com/scopemap/scopemap/source"
	sitter "github.com/smacker/go-tree-sitter"
)

// Document is a parsed source file: its path, normalized text, and syntax
// tree. It is the unit the collector operates on and is read-only after
// parsing.
type Document struct {
	Path     string
	Source   *source.Text
	Language *Language

	tree *sitter.Tree
}

// Root returns the root node of the document's syntax tree.
func (d *Document) Root() *sitter.Node {
	return d.tree.RootNode()
}

// Close releases the underlying syntax tree.
func (d *Document) Close() {
	if d.tree != nil {
		d.tree.Close()
		d.tree = nil
	}
}

// Parse normalizes the given content and parses it with the collector's
// language grammar.
func (c *Collector) Parse(ctx context.Context, path, content string) (*Document, error) {
	text := source.NewText(content)
	tree, err := c.parser.ParseCtx(ctx, nil, []byte(text.Content()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &Document{
		Path:     path,
		Source:   text,
		Language: c.language,
		tree:     tree,
	}, nil
}

// ParseFileContent picks the language from the file extension, then parses.
func ParseFileContent(ctx context.Context, path, content string) (*Document, error) {
	language, err := LanguageFor(path)
	if err != nil {
		return nil, err
	}
	return New(WithLanguage(language)).Parse(ctx, path, content)
}
