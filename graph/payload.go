package graph

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
)

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "markup",
		Category:    "entity",
		Version:     "v1",
		Description: "Distilled markup document entity with RDF triples",
		Factory:     func() any { return &MarkupEntityPayload{} },
	})
	if err != nil {
		panic("failed to register MarkupEntityPayload: " + err.Error())
	}
}

// MarkupEntityType is the message type for distilled markup entities.
var MarkupEntityType = message.Type{Domain: "markup", Category: "entity", Version: "v1"}

// MarkupEntityPayload implements message.Payload and graph.Graphable for
// distilled markup document ingestion.
type MarkupEntityPayload struct {
	EntityID_  string           `json:"id"`
	TripleData []message.Triple `json:"triples"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// EntityID returns the entity identifier for Graphable interface.
func (p *MarkupEntityPayload) EntityID() string { return p.EntityID_ }

// Triples returns the entity triples for Graphable interface.
func (p *MarkupEntityPayload) Triples() []message.Triple { return p.TripleData }

// Schema returns the message type for Payload interface.
func (p *MarkupEntityPayload) Schema() message.Type { return MarkupEntityType }

// Validate validates the payload for Payload interface.
func (p *MarkupEntityPayload) Validate() error {
	if p.EntityID_ == "" {
		return errors.New("entity ID is required")
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p *MarkupEntityPayload) MarshalJSON() ([]byte, error) {
	type Alias MarkupEntityPayload
	return json.Marshal((*Alias)(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *MarkupEntityPayload) UnmarshalJSON(data []byte) error {
	type Alias MarkupEntityPayload
	return json.Unmarshal(data, (*Alias)(p))
}
