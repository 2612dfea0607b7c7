package host

import (
	"path/filepath"
	"slices"
	"strings"
)

// MediaTypeFromPath maps a file suffix to a media type. Unknown
// suffixes return MediaXML so generic XML processing applies.
func MediaTypeFromPath(path string) MediaType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return MediaHTML
	case ".xhtml", ".xht":
		return MediaXHTML
	case ".svg":
		return MediaSVG
	case ".smil":
		return MediaSMIL
	case ".atom":
		return MediaAtom
	case ".xml":
		return MediaXML
	default:
		return MediaXML
	}
}

// LanguageFromMediaType maps a content type to its host language.
// Parameters after ";" are ignored. Unrecognized types fall back to
// Core.
func LanguageFromMediaType(mt MediaType) Language {
	base := string(mt)
	if i := strings.IndexByte(base, ';'); i >= 0 {
		base = base[:i]
	}
	switch MediaType(strings.TrimSpace(strings.ToLower(base))) {
	case MediaHTML:
		return HTML5
	case MediaXHTML:
		return XHTML
	case MediaSVG:
		return SVG
	case MediaAtom:
		return Atom
	case MediaSMIL, MediaXML, MediaXMLT:
		return Core
	default:
		return Core
	}
}

// XHTML DTD identifiers that mark a document as genuine XHTML 1.x
// rather than XHTML5 served with an XHTML media type.
var (
	xhtmlPublicIDs = []string{
		"-//W3C//DTD XHTML+RDFa 1.1//EN",
		"-//W3C//DTD XHTML+RDFa 1.0//EN",
		"-//W3C//DTD XHTML 1.0 Strict//EN",
		"-//W3C//DTD XHTML 1.0 Transitional//EN",
		"-//W3C//DTD XHTML 1.1//EN",
	}
	xhtmlSystemIDs = []string{
		"http://www.w3.org/MarkUp/DTD/xhtml-rdfa-2.dtd",
		"http://www.w3.org/MarkUp/DTD/xhtml-rdfa-1.dtd",
		"http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd",
		"http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd",
		"http://www.w3.org/TR/xhtml11/DTD/xhtml11.dtd",
	}
)

// AdjustXHTML refines an XHTML host language using the document's
// doctype identifiers: without a recognized XHTML DTD the document is
// treated as XHTML5. Other languages pass through unchanged.
func AdjustXHTML(lang Language, publicID, systemID string) Language {
	if lang != XHTML {
		return lang
	}
	if slices.Contains(xhtmlPublicIDs, publicID) && slices.Contains(xhtmlSystemIDs, systemID) {
		return XHTML
	}
	return XHTML5
}
