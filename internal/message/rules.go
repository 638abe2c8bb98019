package message

// Section headers, in the fixed order they must appear in a message.
// These strings are matched exactly by the Validator and emitted exactly
// by the Formatter.
const (
	// HeaderContext starts the free-form rationale section.
	HeaderContext = "Context:"

	// HeaderEnables starts the enabled-capabilities section.
	HeaderEnables = "What this enables:"

	// HeaderChanges starts the per-file change section.
	HeaderChanges = "Changes (by file):"

	// HeaderDeferred starts the deferred-work section.
	HeaderDeferred = "Deferred:"
)

// Bullet syntax markers. A top-level item line starts with bulletPrefix;
// a continuation line is indented with continuationIndent (or a tab).
const (
	bulletPrefix      = "- "
	continuationIndent = "  "
)

// DefaultMaxContextLines is the default upper bound on non-blank lines in
// the Context section.
const DefaultMaxContextLines = 8

// Rules holds the configurable grammar parameters. A single Rules value is
// passed to both the Formatter and the Validator so the two sides can never
// disagree on limits.
type Rules struct {
	// MaxContextLines is the maximum number of non-blank lines allowed in
	// the Context section.
	MaxContextLines int
}

// DefaultRules returns the grammar parameters used when no configuration
// overrides them.
func DefaultRules() Rules {
	return Rules{MaxContextLines: DefaultMaxContextLines}
}

// isBlank reports whether a line contains no visible characters.
func isBlank(line string) bool {
	for _, r := range line {
		if r != ' ' && r != '\t' && r != '\r' {
			return false
		}
	}
	return true
}
