package graph

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semdistill/rdf"
)

func TestMessageTriples(t *testing.T) {
	g := rdf.NewGraph()
	g.Add(rdf.IRI("http://example.org/doc"), rdf.IRI("http://purl.org/dc/terms/title"), rdf.NewLiteral("My Title", "en"))
	g.Add(rdf.IRI("http://example.org/doc"), rdf.RDFType, g.NewBlankNode())

	now := time.Now()
	triples := MessageTriples(g, now)
	require.Len(t, triples, 2)

	for _, mt := range triples {
		assert.Equal(t, TripleSource, mt.Source)
		assert.Equal(t, 1.0, mt.Confidence)
		assert.Equal(t, now, mt.Timestamp)
	}

	assert.Equal(t, "<http://example.org/doc>", triples[0].Subject)
	assert.Equal(t, "<http://purl.org/dc/terms/title>", triples[0].Predicate)
	assert.Equal(t, `"My Title"@en`, triples[0].Object)
}

func TestNewDocumentPayload(t *testing.T) {
	g := rdf.NewGraph()
	g.Add(rdf.IRI("http://example.org/doc"), rdf.RDFType, rdf.IRI("http://schema.org/WebPage"))

	payload := NewDocumentPayload("http://example.org/doc", g)
	require.NoError(t, payload.Validate())

	assert.Equal(t, "semdistill.markup.document.http://example.org/doc", payload.EntityID())
	assert.Len(t, payload.Triples(), 1)
	assert.Equal(t, MarkupEntityType, payload.Schema())
	assert.WithinDuration(t, time.Now(), payload.UpdatedAt, time.Minute)
}

func TestMarkupEntityPayloadValidate(t *testing.T) {
	payload := &MarkupEntityPayload{}
	assert.Error(t, payload.Validate())

	payload.EntityID_ = "semdistill.markup.document.http://example.org/doc"
	assert.NoError(t, payload.Validate())
}

func TestPublishDocumentWithoutClient(t *testing.T) {
	g := rdf.NewGraph()
	g.Add(rdf.IRI("http://example.org/doc"), rdf.RDFType, rdf.IRI("http://schema.org/WebPage"))

	// No NATS client configured: publishing is a no-op, not an error.
	err := PublishDocument(context.Background(), nil, "http://example.org/doc", g)
	assert.NoError(t, err)
}
