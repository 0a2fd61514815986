package eventservice

import (
	"time"

	"github.com/google/uuid"
)

type BaseEvent struct {
	EventID       string            `json:"event_id"`
	EventType     string            `json:"event_type"`
	OccurredAt    time.Time         `json:"occurred_at"`
	Version       string            `json:"version"`
	CorrelationID string            `json:"correlation_id,omitempty"`
	Source        string            `json:"source,omitempty"`
	Headers       map[string]string `json:"headers,omitempty"`
}

const (
	ImportSucceeded = "succeeded"
	ImportFailed    = "failed"
)

// ---- CSV import finished ----
type SalesImportedEvent struct {
	BaseEvent
	RunID      uuid.UUID `json:"run_id"`
	DataSource string    `json:"data_source"`
	Rows       int       `json:"rows"`
	Batches    int       `json:"batches"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// withDefaults fills the envelope fields left empty by the caller.
func (e BaseEvent) withDefaults(eventType string) BaseEvent {
	if e.EventID == "" {
		e.EventID = newUUID()
	}
	if e.EventType == "" {
		e.EventType = eventType
	}
	if e.Version == "" {
		e.Version = "1"
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	if e.Source == "" {
		e.Source = "api-sales"
	}
	return e
}

func newUUID() string { return uuid.New().String() }

// ---- Import requested by another service ----
type ImportRequestedEvent struct {
	BaseEvent
	RequestedBy string `json:"requested_by,omitempty"`
}
