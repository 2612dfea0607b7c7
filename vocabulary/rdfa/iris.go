package rdfa

import "github.com/c360studio/semdistill/rdf"

// Namespace is the base IRI of the RDFa vocabulary.
const Namespace rdf.IRI = "http://www.w3.org/ns/rdfa#"

// DistillerNamespace is the base IRI for processor-specific diagnostic
// classes that have no standard rdfa: equivalent.
const DistillerNamespace rdf.IRI = "https://semdistill.c360.dev/vocab#"

// UsesVocabulary links a document to a vocabulary pulled in through
// @vocab.
const UsesVocabulary = Namespace + "usesVocabulary"

// Severity classes for processor graph entries.
const (
	// ClassError marks conditions that prevented part of the document
	// from being processed.
	ClassError = Namespace + "Error"

	// ClassWarning marks recoverable conditions; processing continued
	// with the offending value ignored.
	ClassWarning = Namespace + "Warning"

	// ClassInfo marks purely informational entries.
	ClassInfo = Namespace + "Information"
)

// Standard diagnostic classes.
const (
	// ClassDocumentError marks non-conformant markup.
	ClassDocumentError = Namespace + "DocumentError"

	// ClassUnresolvedCURIE marks a CURIE whose prefix was not bound in
	// scope.
	ClassUnresolvedCURIE = Namespace + "UnresolvedCURIE"

	// ClassUnresolvedTerm marks a bare term with no mapping in scope.
	ClassUnresolvedTerm = Namespace + "UnresolvedTerm"

	// ClassVocabReferenceError marks an unusable @vocab value.
	ClassVocabReferenceError = Namespace + "VocabReferenceError"

	// ClassPrefixRedefinition marks a prefix redeclared with a
	// different IRI in the same scope.
	ClassPrefixRedefinition = Namespace + "PrefixRedefinition"
)

// Distiller-specific diagnostic classes.
const (
	// ClassIncorrectPrefixDefinition marks a malformed @prefix
	// declaration.
	ClassIncorrectPrefixDefinition = DistillerNamespace + "IncorrectPrefixDefinition"

	// ClassIncorrectBlankNodeUsage marks a blank node used where it is
	// not allowed.
	ClassIncorrectBlankNodeUsage = DistillerNamespace + "IncorrectBlankNodeUsage"

	// ClassIncorrectLiteral marks a literal that does not match its
	// declared or inferred datatype.
	ClassIncorrectLiteral = DistillerNamespace + "IncorrectLiteral"

	// ClassLanguageMismatch marks conflicting lang and xml:lang values
	// on one element.
	ClassLanguageMismatch = DistillerNamespace + "LanguageMismatch"

	// ClassUnusualURIScheme marks a URI whose scheme is not registered,
	// often a mistyped CURIE.
	ClassUnusualURIScheme = DistillerNamespace + "UnusualURIScheme"

	// ClassIllegalSafeCURIE marks a safe CURIE whose content could not
	// be interpreted as a CURIE.
	ClassIllegalSafeCURIE = DistillerNamespace + "IllegalSafeCURIE"

	// ClassNonLegalCURIERef marks a value that is neither a resolvable
	// CURIE nor a valid URI.
	ClassNonLegalCURIERef = DistillerNamespace + "NonLegalCURIERef"

	// ClassLiteMarkupWarning marks markup outside the RDFa Lite subset.
	ClassLiteMarkupWarning = DistillerNamespace + "LiteMarkupWarning"
)
