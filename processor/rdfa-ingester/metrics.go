package rdfaingester

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the distillation pipeline, registered with the default
// prometheus registry so the platform's metrics endpoint exposes them.
var (
	documentsDistilled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "semdistill_documents_distilled_total",
		Help: "Markup documents distilled successfully.",
	})

	documentErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "semdistill_document_errors_total",
		Help: "Markup documents that failed to distill or publish.",
	})

	triplesPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "semdistill_triples_published_total",
		Help: "Triples published to the graph ingestion stream.",
	})

	diagnosticsReported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "semdistill_diagnostics_total",
		Help: "Diagnostics reported while distilling documents.",
	})
)
