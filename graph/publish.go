// Package graph publishes distilled documents to the knowledge graph
// ingestion stream as entity payloads.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/c360studio/semdistill/rdf"
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"
)

// GraphIngestSubject is the subject for graph ingestion.
const GraphIngestSubject = "graph.ingest.entity"

// TripleSource marks published triples as produced by the distiller.
const TripleSource = "semdistill.distill"

// MessageTriples converts graph triples to the semstreams wire form.
// Every term keeps its N-Triples lexical form so IRIs, blank nodes, and
// literals stay distinguishable downstream.
func MessageTriples(g *rdf.Graph, at time.Time) []message.Triple {
	out := make([]message.Triple, 0, g.Len())
	for _, t := range g.Triples() {
		out = append(out, message.Triple{
			Subject:    t.Subject.String(),
			Predicate:  t.Predicate.String(),
			Object:     t.Object.String(),
			Source:     TripleSource,
			Timestamp:  at,
			Confidence: 1.0,
		})
	}
	return out
}

// NewDocumentPayload builds the entity payload for a distilled document
// identified by its base URI.
func NewDocumentPayload(base string, g *rdf.Graph) *MarkupEntityPayload {
	now := time.Now()
	return &MarkupEntityPayload{
		EntityID_:  DocumentEntityID(base),
		TripleData: MessageTriples(g, now),
		UpdatedAt:  now,
	}
}

// PublishDocument publishes a distilled document's triples to the graph
// ingestion stream.
func PublishDocument(ctx context.Context, nc *natsclient.Client, base string, g *rdf.Graph) error {
	if nc == nil {
		return nil // Skip publishing if no NATS client (graceful degradation)
	}

	payload := NewDocumentPayload(base, g)
	msg := message.NewBaseMessage(MarkupEntityType, payload, "semdistill")

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal markup entity: %w", err)
	}

	if err := nc.PublishToStream(ctx, GraphIngestSubject, data); err != nil {
		return fmt.Errorf("publish markup entity: %w", err)
	}

	return nil
}

// DocumentEntityID generates a consistent entity ID for a distilled document.
// Format: semdistill.markup.document.<base URI>
func DocumentEntityID(base string) string {
	return fmt.Sprintf("semdistill.markup.document.%s", base)
}
