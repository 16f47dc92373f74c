package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/fooddelivery/order-system/shared/events"
	"github.com/fooddelivery/order-system/shared/models"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var _ events.EventStore = (*PostgresEventStore)(nil)

// PostgresEventStore journals published domain events in PostgreSQL
type PostgresEventStore struct {
	db *sqlx.DB
}

// NewPostgresEventStore creates a new PostgresEventStore
func NewPostgresEventStore(db *sqlx.DB) *PostgresEventStore {
	return &PostgresEventStore{db: db}
}

// postgresEvent represents an event row in the database
type postgresEvent struct {
	ID            string    `db:"id"`
	AggregateID   string    `db:"aggregate_id"`
	EventType     string    `db:"event_type"`
	Version       string    `db:"version"`
	Data          []byte    `db:"data"`
	Metadata      []byte    `db:"metadata"`
	Timestamp     time.Time `db:"timestamp"`
	CorrelationID string    `db:"correlation_id"`
	StreamVersion int       `db:"stream_version"`
}

// Append journals the given events, one stream per aggregate
func (es *PostgresEventStore) Append(ctx context.Context, evts ...*events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	tx, err := es.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	for _, event := range evts {
		var currentVersion int
		err = tx.GetContext(ctx, &currentVersion,
			"SELECT COALESCE(MAX(stream_version), 0) FROM event_stream WHERE aggregate_id = $1",
			event.AggregateID.String())
		if err != nil && err != sql.ErrNoRows {
			return errors.Wrap(err, "failed to get current stream version")
		}

		pgEvent, err := es.toPostgres(event, currentVersion+1)
		if err != nil {
			return errors.Wrap(err, "failed to convert event")
		}

		query := `
			INSERT INTO event_stream (
				id, aggregate_id, event_type, version, data, metadata,
				timestamp, correlation_id, stream_version
			) VALUES (
				:id, :aggregate_id, :event_type, :version, :data, :metadata,
				:timestamp, :correlation_id, :stream_version
			)`

		if _, err := tx.NamedExecContext(ctx, query, pgEvent); err != nil {
			return errors.Wrap(err, "failed to insert event")
		}
	}

	return tx.Commit()
}

// GetByAggregate retrieves all events for an aggregate in stream order
func (es *PostgresEventStore) GetByAggregate(ctx context.Context, aggregateID models.ID) ([]*events.Event, error) {
	query := `
		SELECT id, aggregate_id, event_type, version, data, metadata,
			   timestamp, correlation_id, stream_version
		FROM event_stream
		WHERE aggregate_id = $1
		ORDER BY stream_version ASC`

	var pgEvents []postgresEvent
	err := es.db.SelectContext(ctx, &pgEvents, query, aggregateID.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to select events")
	}

	return es.toDomainList(pgEvents)
}

// GetByType retrieves events of a given type, newest first
func (es *PostgresEventStore) GetByType(ctx context.Context, eventType string, offset, limit int) ([]*events.Event, error) {
	query := `
		SELECT id, aggregate_id, event_type, version, data, metadata,
			   timestamp, correlation_id, stream_version
		FROM event_stream
		WHERE event_type = $1
		ORDER BY timestamp DESC
		OFFSET $2 LIMIT $3`

	var pgEvents []postgresEvent
	err := es.db.SelectContext(ctx, &pgEvents, query, eventType, offset, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to select events by type")
	}

	return es.toDomainList(pgEvents)
}

func (es *PostgresEventStore) toPostgres(event *events.Event, streamVersion int) (*postgresEvent, error) {
	data, err := event.MarshalPayload()
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal event data")
	}

	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal event metadata")
	}

	return &postgresEvent{
		ID:            event.ID.String(),
		AggregateID:   event.AggregateID.String(),
		EventType:     event.EventType,
		Version:       event.Version,
		Data:          data,
		Metadata:      metadata,
		Timestamp:     event.Timestamp,
		CorrelationID: event.CorrelationID.String(),
		StreamVersion: streamVersion,
	}, nil
}

func (es *PostgresEventStore) toDomainList(pgEvents []postgresEvent) ([]*events.Event, error) {
	result := make([]*events.Event, 0, len(pgEvents))
	for _, pgEvent := range pgEvents {
		var metadata events.Metadata
		if len(pgEvent.Metadata) > 0 {
			if err := json.Unmarshal(pgEvent.Metadata, &metadata); err != nil {
				return nil, errors.Wrap(err, "failed to unmarshal event metadata")
			}
		}

		result = append(result, &events.Event{
			ID:            models.ID(pgEvent.ID),
			AggregateID:   models.ID(pgEvent.AggregateID),
			Topic:         events.Topic(pgEvent.EventType),
			EventType:     pgEvent.EventType,
			Version:       pgEvent.Version,
			Data:          json.RawMessage(pgEvent.Data),
			Metadata:      metadata,
			Timestamp:     pgEvent.Timestamp,
			CorrelationID: models.ID(pgEvent.CorrelationID),
		})
	}
	return result, nil
}
