package config

import (
	"fmt"

	"github.com/c360studio/semdistill/diag"
	"github.com/c360studio/semdistill/host"
)

// Options is the processing policy for a single document run. The
// resolution engine takes it as an explicit parameter and never invents
// a default: a nil Options at the document root is a programming error.
type Options struct {
	// HostLanguage selects the dialect-dependent rules.
	HostLanguage host.Language
	// DefaultVersion applies when the document declares no version.
	DefaultVersion host.Version
	// ForcedVersion, when non-empty, wins over any @version attribute.
	ForcedVersion host.Version
	// SpacePreserve keeps literal whitespace exactly as written. When
	// false, generated plain literals are whitespace-trimmed.
	SpacePreserve bool
	// CheckLite reports markup outside the RDFa Lite subset.
	CheckLite bool
	// MetaName treats <meta name> as <meta property>.
	MetaName bool
	// Sink receives every diagnostic of the run. Required.
	Sink diag.Sink
}

// NewOptions returns run options for one host language with the
// defaults the distiller normally uses.
func NewOptions(lang host.Language, sink diag.Sink) *Options {
	return &Options{
		HostLanguage:   lang,
		DefaultVersion: host.CurrentVersion,
		SpacePreserve:  true,
		Sink:           sink,
	}
}

// Options builds run options from the service configuration for one
// document's detected host language.
func (c *Config) Options(detected host.Language, sink diag.Sink) (*Options, error) {
	lang := detected
	if c.Distill.HostLanguage != "" {
		forced, err := ParseLanguage(c.Distill.HostLanguage)
		if err != nil {
			return nil, err
		}
		lang = forced
	}
	o := NewOptions(lang, sink)
	o.DefaultVersion = host.Version(c.Distill.DefaultVersion)
	o.ForcedVersion = host.Version(c.Distill.ForcedVersion)
	o.CheckLite = c.Distill.Lite
	o.MetaName = c.Distill.MetaName
	return o, nil
}

// Validate checks that the options are usable.
func (o *Options) Validate() error {
	switch o.HostLanguage {
	case host.Core, host.XHTML, host.XHTML5, host.HTML5, host.Atom, host.SVG:
	default:
		return fmt.Errorf("unknown host language %q", o.HostLanguage)
	}
	switch o.DefaultVersion {
	case host.Version10, host.Version11:
	default:
		return fmt.Errorf("default version must be %q or %q", host.Version10, host.Version11)
	}
	switch o.ForcedVersion {
	case "", host.Version10, host.Version11:
	default:
		return fmt.Errorf("forced version must be %q or %q", host.Version10, host.Version11)
	}
	if o.Sink == nil {
		return fmt.Errorf("diagnostic sink is required")
	}
	return nil
}

// Warn emits a warning diagnostic through the configured sink.
func (o *Options) Warn(kind diag.Kind, message, node string) {
	o.Sink.Emit(diag.Diagnostic{
		Severity: diag.Warning,
		Kind:     kind,
		Message:  message,
		Node:     node,
	})
}

// Report emits a diagnostic with the kind's default severity.
func (o *Options) Report(kind diag.Kind, message, node string) {
	o.Sink.Emit(diag.Diagnostic{
		Severity: kind.DefaultSeverity(),
		Kind:     kind,
		Message:  message,
		Node:     node,
	})
}
