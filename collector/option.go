package collector

// Option configures a Collector.
type Option func(*Collector)

// WithLanguage sets the grammar and node classification used for parsing and
// traversal.
func WithLanguage(language *Language) Option {
	return func(c *Collector) {
		c.language = language
		c.parser.SetLanguage(language.Sitter)
	}
}
