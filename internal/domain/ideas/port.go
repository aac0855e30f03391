package ideas

import "context"

// Analyzer turns an idea into a human-readable report. Analyzers never fail.
type Analyzer interface {
	ID() AnalyzerID
	Analyze(idea string) string
}

// Repository port for the result collection.
//
// Append is a read-modify-write on stores that keep the collection as one
// document (the JSON file store). Such stores are single-writer: two Append
// calls racing on the same backing resource may lose one record. Callers
// needing multi-writer safety serialize access themselves or use a SQL store.
type Repository interface {
	Append(ctx context.Context, rec *ResultRecord) error
	// Load returns the whole collection in append order.
	Load(ctx context.Context) ([]*ResultRecord, error)
}

// EventPublisher announces saved records to other services.
type EventPublisher interface {
	PublishSaved(ctx context.Context, rec *ResultRecord) error
}

// ArchiveStore port (penyimpanan snapshot koleksi)
type ArchiveStore interface {
	Put(ctx context.Context, key string, data []byte) (string, error)
}
