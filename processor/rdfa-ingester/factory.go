package rdfaingester

import (
	"fmt"

	"github.com/c360studio/semstreams/component"
)

// RegistryInterface defines the minimal interface needed for registration.
type RegistryInterface interface {
	RegisterWithConfig(component.RegistrationConfig) error
}

// Register registers the rdfa-ingester processor component with the given registry.
func Register(registry RegistryInterface) error {
	if registry == nil {
		return fmt.Errorf("registry cannot be nil")
	}
	return registry.RegisterWithConfig(component.RegistrationConfig{
		Name:        "rdfa-ingester",
		Factory:     NewComponent,
		Schema:      rdfaIngesterSchema,
		Type:        "processor",
		Protocol:    "nats",
		Domain:      "semantic",
		Description: "RDFa distiller turning markup documents into graph entities",
		Version:     "0.1.0",
	})
}
