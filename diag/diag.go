// Package diag carries the non-fatal diagnostics a distillation run
// produces. Resolution failures never abort processing; they surface
// here, either collected in memory, logged, or recorded as a processor
// graph in the RDFa vocabulary.
package diag

import (
	"log/slog"

	"github.com/c360studio/semdistill/rdf"
	"github.com/c360studio/semdistill/vocabulary/rdfa"
)

// Severity grades a diagnostic.
type Severity string

const (
	Info    Severity = "info"
	Warning Severity = "warning"
	Error   Severity = "error"
)

// Kind identifies what went wrong, independent of message wording.
type Kind string

const (
	// KindDocumentError marks input that could not be processed as
	// markup at all.
	KindDocumentError Kind = "document-error"

	// KindIllegalSafeCURIE marks a bracketed value that is not a
	// syntactically valid safe CURIE.
	KindIllegalSafeCURIE Kind = "illegal-safe-curie"

	// KindUnresolvablePrefix marks a safe CURIE whose content does not
	// correspond to a defined CURIE.
	KindUnresolvablePrefix Kind = "unresolvable-prefix"

	// KindUndefinedTerm marks a bare term with no mapping in scope.
	KindUndefinedTerm Kind = "undefined-term"

	// KindUndefinedCURIE marks an unbracketed CURIE that failed to
	// resolve and was not a valid URI either.
	KindUndefinedCURIE Kind = "undefined-curie"

	// KindNonLegalCURIERef marks a relative reference in a position
	// that requires a CURIE or an absolute URI.
	KindNonLegalCURIERef Kind = "non-legal-curie-ref"

	// KindUnusualURIScheme marks an accepted URI whose scheme is not
	// registered, often the sign of a mistyped CURIE prefix.
	KindUnusualURIScheme Kind = "unusual-uri-scheme"

	// KindLanguageMismatch marks conflicting lang and xml:lang values
	// on the same element.
	KindLanguageMismatch Kind = "language-mismatch"

	// KindIncorrectPrefix marks a malformed or ignored @prefix
	// declaration.
	KindIncorrectPrefix Kind = "incorrect-prefix"

	// KindPrefixRedefinition marks a prefix declaration that shadows a
	// registered URI scheme or an earlier declaration suspiciously.
	KindPrefixRedefinition Kind = "prefix-redefinition"

	// KindBlankNodeMisuse marks a blank node in a position where blank
	// nodes are not allowed.
	KindBlankNodeMisuse Kind = "blank-node-misuse"

	// KindIncorrectLiteral marks a literal that does not match the
	// datatype implied by its markup.
	KindIncorrectLiteral Kind = "incorrect-literal"

	// KindVocabReference marks an unusable @vocab value.
	KindVocabReference Kind = "vocab-reference"

	// KindLiteMarkup marks markup outside the RDFa Lite subset when
	// Lite checking is on.
	KindLiteMarkup Kind = "lite-markup"
)

// Class returns the vocabulary class IRI recorded for this kind in
// processor graphs.
func (k Kind) Class() rdf.IRI {
	switch k {
	case KindDocumentError:
		return rdfa.ClassDocumentError
	case KindIllegalSafeCURIE:
		return rdfa.ClassIllegalSafeCURIE
	case KindUnresolvablePrefix, KindUndefinedCURIE:
		return rdfa.ClassUnresolvedCURIE
	case KindUndefinedTerm:
		return rdfa.ClassUnresolvedTerm
	case KindNonLegalCURIERef:
		return rdfa.ClassNonLegalCURIERef
	case KindUnusualURIScheme:
		return rdfa.ClassUnusualURIScheme
	case KindLanguageMismatch:
		return rdfa.ClassLanguageMismatch
	case KindIncorrectPrefix:
		return rdfa.ClassIncorrectPrefixDefinition
	case KindPrefixRedefinition:
		return rdfa.ClassPrefixRedefinition
	case KindBlankNodeMisuse:
		return rdfa.ClassIncorrectBlankNodeUsage
	case KindIncorrectLiteral:
		return rdfa.ClassIncorrectLiteral
	case KindVocabReference:
		return rdfa.ClassVocabReferenceError
	case KindLiteMarkup:
		return rdfa.ClassLiteMarkupWarning
	default:
		return rdfa.ClassWarning
	}
}

// DefaultSeverity returns the severity a kind normally carries.
func (k Kind) DefaultSeverity() Severity {
	if k == KindDocumentError {
		return Error
	}
	return Warning
}

// Diagnostic is one reported condition.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Message  string
	// Node is the name of the element being processed when the
	// condition was found, when known.
	Node string
}

// Sink receives diagnostics during processing.
type Sink interface {
	Emit(d Diagnostic)
}

// Collector is a Sink that records diagnostics in order.
type Collector struct {
	Diagnostics []Diagnostic
}

func (c *Collector) Emit(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// HasKind reports whether any collected diagnostic has the given kind.
func (c *Collector) HasKind(k Kind) bool {
	for _, d := range c.Diagnostics {
		if d.Kind == k {
			return true
		}
	}
	return false
}

// ByKind returns the collected diagnostics of the given kind, in order.
func (c *Collector) ByKind(k Kind) []Diagnostic {
	var out []Diagnostic
	for _, d := range c.Diagnostics {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}

// Messages returns all collected messages in order.
func (c *Collector) Messages() []string {
	out := make([]string, len(c.Diagnostics))
	for i, d := range c.Diagnostics {
		out[i] = d.Message
	}
	return out
}

// SlogSink forwards diagnostics to a structured logger.
type SlogSink struct {
	Logger *slog.Logger
}

func (s SlogSink) Emit(d Diagnostic) {
	log := s.Logger
	if log == nil {
		log = slog.Default()
	}
	attrs := []any{"kind", string(d.Kind), "node", d.Node}
	switch d.Severity {
	case Error:
		log.Error(d.Message, attrs...)
	case Info:
		log.Info(d.Message, attrs...)
	default:
		log.Warn(d.Message, attrs...)
	}
}

// Tee returns a Sink that forwards each diagnostic to every sink.
func Tee(sinks ...Sink) Sink {
	return teeSink(sinks)
}

type teeSink []Sink

func (t teeSink) Emit(d Diagnostic) {
	for _, s := range t {
		if s != nil {
			s.Emit(d)
		}
	}
}
