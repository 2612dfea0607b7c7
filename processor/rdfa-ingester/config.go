package rdfaingester

import (
	"fmt"
	"reflect"

	"github.com/c360studio/semstreams/component"

	"github.com/c360studio/semdistill/config"
	"github.com/c360studio/semdistill/host"
)

// rdfaIngesterSchema defines the configuration schema.
var rdfaIngesterSchema = component.GenerateConfigSchema(reflect.TypeOf(Config{}))

// Config holds configuration for the rdfa-ingester processor component.
type Config struct {
	Ports *component.PortConfig `json:"ports" schema:"type:ports,description:Port configuration,category:basic"`

	// StreamName is the JetStream stream for markup document messages.
	StreamName string `json:"stream_name" schema:"type:string,description:JetStream stream name,category:basic,default:SOURCE"`

	// ConsumerName is the durable consumer name.
	ConsumerName string `json:"consumer_name" schema:"type:string,description:Durable consumer name,category:basic,default:rdfa-ingester"`

	// DefaultVersion is the RDFa version assumed when a document does
	// not declare one.
	DefaultVersion string `json:"default_version" schema:"type:string,description:RDFa version assumed when a document declares none (1.0 or 1.1),category:advanced,default:1.1"`

	// HostLanguage forces a host language for every document; empty
	// means detect from the media type or base URI suffix.
	HostLanguage string `json:"host_language" schema:"type:string,description:Forced host language (html5/xhtml/svg/atom/xml); empty detects per document,category:advanced"`

	// MetaName treats <meta name="..."> as <meta property="..."> so
	// legacy header metadata distills too.
	MetaName bool `json:"meta_name" schema:"type:bool,description:Distill meta name attributes as properties,category:advanced,default:false"`

	// SourcesDir is the base directory for watched markup documents.
	SourcesDir string `json:"sources_dir" schema:"type:string,description:Base directory for watched markup documents,category:basic,default:.semdistill/sources"`

	// WatchConfig holds file watching configuration.
	WatchConfig WatchConfig `json:"watch_config" schema:"type:object,description:File watching configuration for automatic distillation,category:advanced"`
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.StreamName == "" {
		return fmt.Errorf("stream_name is required")
	}
	if c.ConsumerName == "" {
		return fmt.Errorf("consumer_name is required")
	}
	if c.DefaultVersion != "" {
		switch host.Version(c.DefaultVersion) {
		case host.Version10, host.Version11:
		default:
			return fmt.Errorf("default_version must be %q or %q", host.Version10, host.Version11)
		}
	}
	if c.HostLanguage != "" {
		if _, err := config.ParseLanguage(c.HostLanguage); err != nil {
			return fmt.Errorf("host_language: %w", err)
		}
	}
	return nil
}

// DistillerConfig builds the distiller configuration the component runs
// with.
func (c *Config) DistillerConfig() *config.Config {
	cfg := config.DefaultConfig()
	if c.DefaultVersion != "" {
		cfg.Distill.DefaultVersion = c.DefaultVersion
	}
	cfg.Distill.HostLanguage = c.HostLanguage
	cfg.Distill.MetaName = c.MetaName
	return cfg
}

// DefaultConfig returns default configuration for the rdfa-ingester
// processor.
func DefaultConfig() Config {
	inputDefs := []component.PortDefinition{
		{
			Name:        "markup.in",
			Type:        "jetstream",
			Subject:     "source.ingest.markup",
			StreamName:  "SOURCE",
			Required:    true,
			Description: "Markup documents to distill",
		},
	}

	outputDefs := []component.PortDefinition{
		{
			Name:        "graph.out",
			Type:        "jetstream",
			Subject:     "graph.ingest.entity",
			StreamName:  "GRAPH",
			Required:    true,
			Description: "Distilled entity triples for graph ingestion",
		},
	}

	return Config{
		Ports: &component.PortConfig{
			Inputs:  inputDefs,
			Outputs: outputDefs,
		},
		StreamName:     "SOURCE",
		ConsumerName:   "rdfa-ingester",
		DefaultVersion: string(host.CurrentVersion),
		SourcesDir:     ".semdistill/sources",
		WatchConfig:    DefaultWatchConfig(),
	}
}
