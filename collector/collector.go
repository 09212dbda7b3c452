package collector

import (
	"context"

	"github.com/scopemap/scopemap/instrument"
	"github.com/scopemap/scopemap/source"
	sitter "github.com/smacker/go-tree-sitter"
)

// Collector walks a parsed document and produces the instrumentation-state
// map (program locations with in-scope variables) and the variable-location
// map (variable names to occurrence spans). A Collector is stateless between
// calls; two calls on identical input produce equal maps.
type Collector struct {
	parser   *sitter.Parser
	language *Language
}

// New creates a Collector. The default language is Go.
func New(options ...Option) *Collector {
	c := &Collector{parser: sitter.NewParser()}
	WithLanguage(GoLanguage())(c)
	for _, option := range options {
		option(c)
	}
	return c
}

// Collect visits every instrumentable location of the document in order and
// returns freshly allocated maps owned by the caller.
func (c *Collector) Collect(doc *Document) (instrument.AugmentationMap, instrument.VariableLocationMap, error) {
	walk := &walker{
		doc:          doc,
		language:     doc.Language,
		augmentation: make(instrument.AugmentationMap),
		locations:    make(instrument.VariableLocationMap),
	}
	walk.visit(doc.Root(), newScope("file", nil))
	if walk.err != nil {
		return nil, nil, walk.err
	}
	return walk.augmentation, walk.locations, nil
}

// CollectSource parses the given content and collects it in one step.
func (c *Collector) CollectSource(ctx context.Context, path, content string) (instrument.AugmentationMap, instrument.VariableLocationMap, error) {
	doc, err := c.Parse(ctx, path, content)
	if err != nil {
		return nil, nil, err
	}
	defer doc.Close()
	return c.Collect(doc)
}

// walker carries the traversal state for a single Collect call.
type walker struct {
	doc          *Document
	language     *Language
	augmentation instrument.AugmentationMap
	locations    instrument.VariableLocationMap
	err          error
}

func (w *walker) visit(n *sitter.Node, current *scope) {
	if n == nil || w.err != nil {
		return
	}
	switch w.language.classify(n.Type()) {
	case classFunction:
		fnScope := newScope("function", current)
		start := int(n.StartByte())
		for _, name := range w.language.parameters(n) {
			fnScope.declare(w.text(name), start)
		}
		w.visitChildren(n, fnScope)
		return
	case classBlock:
		w.visitChildren(n, newScope("block", current))
		return
	case classReference:
		w.recordReference(n, current)
		return
	}

	if w.language.isStatement(n) {
		w.recordPoint(n, current)
	}
	// statements with header declarations confine them to their own scope
	if w.language.opensScope(n.Type()) {
		current = newScope("header", current)
	}
	if w.language.isDeclarator(n.Type()) {
		for _, name := range w.language.declaredNames(n) {
			current.declare(w.text(name), int(name.StartByte()))
		}
	}
	w.visitChildren(n, current)
}

func (w *walker) visitChildren(n *sitter.Node, current *scope) {
	for i := 0; i < int(n.ChildCount()); i++ {
		w.visit(n.Child(i), current)
	}
}

// recordPoint registers an instrumentation point at the statement start with
// the variables in lexical scope there (declared strictly before the point).
func (w *walker) recordPoint(n *sitter.Node, current *scope) {
	start := int(n.StartByte())
	position, err := w.doc.Source.PositionAt(start)
	if err != nil {
		w.err = err
		return
	}
	span := source.Span{Start: start, End: int(n.EndByte())}
	key := instrument.NewPointKey(w.doc.Path, span)
	w.augmentation[key] = &instrument.InstrumentationPoint{
		Key:       key,
		Position:  position,
		Variables: current.visibleBefore(start),
	}
}

// recordReference registers a variable occurrence when the identifier
// resolves to a declaration visible at its own offset.
func (w *walker) recordReference(n *sitter.Node, current *scope) {
	name := w.text(n)
	start := int(n.StartByte())
	if _, ok := current.resolve(name, start); !ok {
		return
	}
	position, err := w.doc.Source.PositionAt(start)
	if err != nil {
		w.err = err
		return
	}
	w.locations[name] = append(w.locations[name], instrument.VariableOccurrence{
		Name:      name,
		Span:      source.Span{Start: start, End: int(n.EndByte())},
		StartLine: position.Line,
	})
}

func (w *walker) text(n *sitter.Node) string {
	content := w.doc.Source.Content()
	return content[n.StartByte():n.EndByte()]
}
