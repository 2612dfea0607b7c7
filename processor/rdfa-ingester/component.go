// Package rdfaingester provides a processor component that distills
// RDFa-annotated markup documents into graph entities: documents arrive
// on the source stream or from a watched directory, and their extracted
// triples are published for graph ingestion.
package rdfaingester

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360studio/semdistill/distill"
	"github.com/c360studio/semdistill/graph"
	"github.com/c360studio/semdistill/host"
)

// Component implements the rdfa-ingester processor.
type Component struct {
	name       string
	config     Config
	natsClient *natsclient.Client
	logger     *slog.Logger
	distiller  *distill.Distiller
	watcher    *MarkupWatcher

	// Resolved subjects from port config
	inputSubject string
	inputStream  string

	// Lifecycle
	running   bool
	startTime time.Time
	mu        sync.RWMutex
	cancel    context.CancelFunc

	// Metrics
	documentsProcessed atomic.Int64
	errors             atomic.Int64
	lastActivityMu     sync.RWMutex
	lastActivity       time.Time
}

// NewComponent creates a new rdfa-ingester processor component.
func NewComponent(rawConfig json.RawMessage, deps component.Dependencies) (component.Discoverable, error) {
	var config Config
	if err := json.Unmarshal(rawConfig, &config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Use default config if ports not set
	if config.Ports == nil {
		config = DefaultConfig()
		// Re-unmarshal to get user-provided values
		if err := json.Unmarshal(rawConfig, &config); err != nil {
			return nil, fmt.Errorf("unmarshal config with defaults: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Resolve subjects from port definitions
	inputSubject := "source.ingest.markup"
	inputStream := "SOURCE"
	if config.Ports != nil && len(config.Ports.Inputs) > 0 {
		inputSubject = config.Ports.Inputs[0].Subject
		inputStream = config.Ports.Inputs[0].StreamName
	}

	logger := deps.GetLogger()

	return &Component{
		name:         "rdfa-ingester",
		config:       config,
		natsClient:   deps.NATSClient,
		logger:       logger,
		distiller:    distill.New(config.DistillerConfig(), logger),
		inputSubject: inputSubject,
		inputStream:  inputStream,
	}, nil
}

// Initialize prepares the component.
func (c *Component) Initialize() error {
	return nil
}

// Start begins consuming markup documents and publishing distilled entities.
func (c *Component) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("component already running")
	}
	if c.natsClient == nil {
		c.mu.Unlock()
		return fmt.Errorf("NATS client required")
	}

	// Set running state while holding lock to prevent race condition
	c.running = true
	c.startTime = time.Now()

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	consumerCfg := natsclient.StreamConsumerConfig{
		StreamName:    c.inputStream,
		ConsumerName:  c.config.ConsumerName,
		FilterSubject: c.inputSubject,
		DeliverPolicy: "new",
		AckPolicy:     "explicit",
		MaxDeliver:    3,
		AckWait:       30 * time.Second,
	}

	err := c.natsClient.ConsumeStreamWithConfig(runCtx, consumerCfg, c.handleMessage)
	if err != nil {
		// Rollback running state on failure
		c.mu.Lock()
		c.running = false
		c.cancel = nil
		c.mu.Unlock()
		cancel()
		return fmt.Errorf("start consumer: %w", err)
	}

	// Start file watcher if enabled
	if c.config.WatchConfig.Enabled {
		watcher, err := NewMarkupWatcher(c.config.WatchConfig, c.config.SourcesDir, c.logger)
		if err != nil {
			c.logger.Error("Failed to create markup watcher", "error", err)
		} else {
			c.watcher = watcher
			if err := watcher.Start(runCtx); err != nil {
				c.logger.Error("Failed to start markup watcher", "error", err)
			} else {
				// Process watcher events in background
				go c.processWatchEvents(runCtx)
			}
		}
	}

	c.logger.Info("rdfa-ingester started",
		"input", c.inputSubject,
		"sources_dir", c.config.SourcesDir,
		"watching", c.config.WatchConfig.Enabled)

	return nil
}

// handleMessage processes a single markup document message.
func (c *Component) handleMessage(ctx context.Context, msg jetstream.Msg) {
	c.updateLastActivity()

	var baseMsg message.BaseMessage
	if err := json.Unmarshal(msg.Data(), &baseMsg); err != nil {
		c.logger.Warn("Failed to unmarshal base message",
			"error", err,
			"subject", msg.Subject())
		c.errors.Add(1)
		_ = msg.Nak()
		return
	}

	doc, ok := baseMsg.Payload().(*MarkupDocumentPayload)
	if !ok {
		c.logger.Warn("Payload is not a markup document",
			"type", baseMsg.Type(),
			"subject", msg.Subject())
		c.errors.Add(1)
		_ = msg.Nak()
		return
	}

	res, err := c.distillDocument(doc)
	if err != nil {
		c.logger.Error("Failed to distill document", "base", doc.Base, "error", err)
		c.errors.Add(1)
		documentErrors.Inc()
		_ = msg.Nak()
		return
	}

	if err := graph.PublishDocument(ctx, c.natsClient, res.Base, res.Graph); err != nil {
		c.logger.Error("Failed to publish entity", "base", res.Base, "error", err)
		c.errors.Add(1)
		documentErrors.Inc()
		_ = msg.Nak()
		return
	}

	_ = msg.Ack()
	c.recordDistilled(res)

	c.logger.Info("Document distilled",
		"base", res.Base,
		"language", string(res.Language),
		"triples", res.Graph.Len())
}

// distillDocument runs the distiller over one inbound document. The
// payload's media type picks the host language; without one the base
// URI's suffix decides.
func (c *Component) distillDocument(doc *MarkupDocumentPayload) (*distill.Result, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	mt := host.MediaType(doc.MediaType)
	if doc.MediaType == "" {
		mt = host.MediaTypeFromPath(doc.Base)
	}

	return c.distiller.FromReader(strings.NewReader(doc.Content), doc.Base, host.LanguageFromMediaType(mt))
}

// recordDistilled updates counters after a successful distillation.
func (c *Component) recordDistilled(res *distill.Result) {
	c.documentsProcessed.Add(1)
	documentsDistilled.Inc()
	triplesPublished.Add(float64(res.Graph.Len()))
	diagnosticsReported.Add(float64(len(res.Diagnostics)))
	c.updateLastActivity()
}

// processWatchEvents handles file watch events and triggers distillation.
func (c *Component) processWatchEvents(ctx context.Context) {
	if c.watcher == nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-c.watcher.Events():
			if !ok {
				return
			}
			c.handleWatchEvent(ctx, event)
		}
	}
}

// handleWatchEvent processes a single file watch event.
func (c *Component) handleWatchEvent(ctx context.Context, event WatchEvent) {
	c.updateLastActivity()

	switch event.Operation {
	case WatchOpCreate, WatchOpModify:
		c.logger.Info("Markup file changed, distilling",
			"path", event.Path,
			"operation", event.Operation)

		res, err := c.distiller.FromFile(event.AbsPath)
		if err != nil {
			c.logger.Error("Failed to distill watched file",
				"path", event.Path,
				"error", err)
			c.errors.Add(1)
			documentErrors.Inc()
			return
		}

		if err := graph.PublishDocument(ctx, c.natsClient, res.Base, res.Graph); err != nil {
			c.logger.Error("Failed to publish entity", "path", event.Path, "error", err)
			c.errors.Add(1)
			documentErrors.Inc()
			return
		}

		c.recordDistilled(res)
		c.logger.Info("Watched file distilled",
			"path", event.Path,
			"triples", res.Graph.Len())

	case WatchOpDelete:
		c.logger.Info("Markup file deleted", "path", event.Path)
		// TODO: publish a retraction so downstream graphs drop the entity
	}
}

// updateLastActivity safely updates the last activity timestamp.
func (c *Component) updateLastActivity() {
	c.lastActivityMu.Lock()
	c.lastActivity = time.Now()
	c.lastActivityMu.Unlock()
}

// getLastActivity safely retrieves the last activity timestamp.
func (c *Component) getLastActivity() time.Time {
	c.lastActivityMu.RLock()
	defer c.lastActivityMu.RUnlock()
	return c.lastActivity
}

// Stop gracefully stops the component within the given timeout.
func (c *Component) Stop(_ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}

	// Stop watcher if running
	if c.watcher != nil {
		if err := c.watcher.Stop(); err != nil {
			c.logger.Error("Failed to stop markup watcher", "error", err)
		}
	}

	c.running = false
	c.logger.Info("rdfa-ingester stopped",
		"documents_processed", c.documentsProcessed.Load(),
		"errors", c.errors.Load())

	return nil
}

// Discoverable interface implementation

// Meta returns component metadata.
func (c *Component) Meta() component.Metadata {
	return component.Metadata{
		Name:        "rdfa-ingester",
		Type:        "processor",
		Description: "RDFa distiller turning markup documents into graph entities",
		Version:     "0.1.0",
	}
}

// InputPorts returns configured input port definitions.
func (c *Component) InputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}

	ports := make([]component.Port, len(c.config.Ports.Inputs))
	for i, portDef := range c.config.Ports.Inputs {
		ports[i] = buildPort(portDef, component.DirectionInput)
	}
	return ports
}

// OutputPorts returns configured output port definitions.
func (c *Component) OutputPorts() []component.Port {
	if c.config.Ports == nil {
		return []component.Port{}
	}

	ports := make([]component.Port, len(c.config.Ports.Outputs))
	for i, portDef := range c.config.Ports.Outputs {
		ports[i] = buildPort(portDef, component.DirectionOutput)
	}
	return ports
}

// buildPort creates a component.Port from a PortDefinition, using
// JetStreamPort for jetstream-type ports and NATSPort for core NATS ports.
func buildPort(portDef component.PortDefinition, direction component.Direction) component.Port {
	port := component.Port{
		Name:        portDef.Name,
		Direction:   direction,
		Required:    portDef.Required,
		Description: portDef.Description,
	}
	if portDef.Type == "jetstream" {
		port.Config = component.JetStreamPort{
			StreamName: portDef.StreamName,
			Subjects:   []string{portDef.Subject},
		}
	} else {
		port.Config = component.NATSPort{
			Subject: portDef.Subject,
		}
	}
	return port
}

// ConfigSchema returns the configuration schema.
func (c *Component) ConfigSchema() component.ConfigSchema {
	return rdfaIngesterSchema
}

// Health returns the current health status.
func (c *Component) Health() component.HealthStatus {
	c.mu.RLock()
	running := c.running
	startTime := c.startTime
	c.mu.RUnlock()

	status := "stopped"
	if running {
		status = "running"
	}

	return component.HealthStatus{
		Healthy:    running,
		LastCheck:  time.Now(),
		ErrorCount: int(c.errors.Load()),
		Uptime:     time.Since(startTime),
		Status:     status,
	}
}

// DataFlow returns current data flow metrics.
func (c *Component) DataFlow() component.FlowMetrics {
	return component.FlowMetrics{
		MessagesPerSecond: 0,
		BytesPerSecond:    0,
		ErrorRate:         0,
		LastActivity:      c.getLastActivity(),
	}
}
