package expense

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/scanify/scanify/internal/parsing"
)

// Results of a receipt submission
const (
	resultParsed        = "parsed"
	resultUnsupported   = "unsupported"
	resultTranscription = "transcription_failed"
	resultStore         = "store_failed"
)

// ReceiptsProcessed counts receipt submissions by outcome.
var ReceiptsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "scanify",
	Name:      "receipts_processed_total",
	Help:      "Total receipt submissions by result.",
}, []string{"result"})

// FieldsDefaulted counts parsed receipts whose field fell back to its default.
var FieldsDefaulted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "scanify",
	Subsystem: "receipt",
	Name:      "fields_defaulted_total",
	Help:      "Total receipt fields left at their default value by the parser.",
}, []string{"field"})

// ItemsClassified counts extracted items by the line layout they matched.
var ItemsClassified = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "scanify",
	Subsystem: "receipt",
	Name:      "items_total",
	Help:      "Total receipt items extracted by line shape.",
}, []string{"shape"})

// TranscriptionSeconds tracks how long OCR of one upload takes.
var TranscriptionSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "scanify",
	Name:      "transcription_seconds",
	Help:      "Time spent transcribing one uploaded receipt.",
	Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
})

func observeReceipt(r parsing.Receipt) {
	for _, field := range r.Defaulted() {
		FieldsDefaulted.WithLabelValues(field).Inc()
	}
	for _, item := range r.Items {
		ItemsClassified.WithLabelValues(string(item.Shape)).Inc()
	}
}
