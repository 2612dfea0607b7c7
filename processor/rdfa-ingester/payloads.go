package rdfaingester

import (
	"encoding/json"
	"errors"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
)

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "source",
		Category:    "markup",
		Version:     "v1",
		Description: "RDFa-annotated markup document for distillation",
		Factory:     func() any { return &MarkupDocumentPayload{} },
	})
	if err != nil {
		panic("failed to register MarkupDocumentPayload: " + err.Error())
	}
}

// MarkupDocumentType is the message type for markup document payloads.
var MarkupDocumentType = message.Type{Domain: "source", Category: "markup", Version: "v1"}

// MarkupDocumentPayload carries one markup document to distill.
type MarkupDocumentPayload struct {
	// ID identifies the document; empty means the base URI serves as ID.
	ID string `json:"id"`
	// Base is the base URI relative references resolve against.
	Base string `json:"base"`
	// MediaType selects the host language; empty means detect from the
	// base URI's suffix.
	MediaType string `json:"media_type"`
	// Content is the markup source text.
	Content string `json:"content"`
}

// Schema returns the message type for Payload interface.
func (p *MarkupDocumentPayload) Schema() message.Type { return MarkupDocumentType }

// Validate validates the payload for Payload interface.
func (p *MarkupDocumentPayload) Validate() error {
	if p.Base == "" {
		return errors.New("base URI is required")
	}
	if p.Content == "" {
		return errors.New("content is required")
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p *MarkupDocumentPayload) MarshalJSON() ([]byte, error) {
	type Alias MarkupDocumentPayload
	return json.Marshal((*Alias)(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *MarkupDocumentPayload) UnmarshalJSON(data []byte) error {
	type Alias MarkupDocumentPayload
	return json.Unmarshal(data, (*Alias)(p))
}
