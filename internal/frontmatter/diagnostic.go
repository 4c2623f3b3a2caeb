package frontmatter

import "fmt"

// Kind classifies a non-fatal problem found while splitting a document.
type Kind int

const (
	NoFrontMatter Kind = iota
	UnterminatedFrontMatter
	MissingSeparator
	EmptyKey
	DuplicateKey
)

func (k Kind) String() string {
	switch k {
	case NoFrontMatter:
		return "no-front-matter"
	case UnterminatedFrontMatter:
		return "unterminated-front-matter"
	case MissingSeparator:
		return "missing-separator"
	case EmptyKey:
		return "empty-key"
	case DuplicateKey:
		return "duplicate-key"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Diagnostic describes a recoverable problem in a document's header. Line is
// 1-based and refers to the normalized input.
type Diagnostic struct {
	Kind    Kind
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s (%s)", d.Line, d.Message, d.Kind)
}
