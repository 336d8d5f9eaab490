package kafka_test

import (
	"context"
	"testing"
	"time"

	"go-salescrm/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)
	event := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		AggregateType: "sale_log",
		AggregateID:   uuid.NewString(),
		EventType:     "sales.deal.closed",
		Topic:         "sales.deal.closed.v1",
		Payload:       []byte(`{"dealAmount":100000}`),
		Status:        kafka.OutboxStatusPending,
	}

	t.Run("inserts through the transaction when given one", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO outbox_events").
			WithArgs(
				event.ID, event.RequestID, event.AggregateType,
				event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.Begin()
		require.NoError(t, err)

		assert.NoError(t, repo.WithTx(tx).Create(context.Background(), event))
		assert.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)
	now := time.Now()

	columns := []string{
		"id", "request_id", "aggregate_type", "aggregate_id",
		"event_type", "topic", "payload", "status", "retry_count", "next_retry_at",
	}
	mock.ExpectQuery("FROM outbox_events").
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 50).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("ob-1", "req-1", "sale_log", "agg-1", "sales.deal.closed", "sales.deal.closed.v1", []byte(`{}`), "pending", 0, now).
			AddRow("ob-2", "", "sale_log", "agg-2", "sales.deal.closed", "sales.deal.closed.v1", []byte(`{}`), "failed", 3, now))

	events, err := repo.ListPending(context.Background(), 50)

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "ob-1", events[0].ID)
	assert.Equal(t, "req-1", events[0].RequestID)
	assert.Equal(t, 3, events[1].RetryCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := kafka.NewOutboxRepository(db)

	mock.ExpectExec("UPDATE outbox_events").
		WithArgs("ob-1", kafka.OutboxStatusFailed, "broker unreachable").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkFailed(context.Background(), "ob-1", "broker unreachable"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateOutboxEvent(t *testing.T) {
	valid := kafka.OutboxEvent{
		ID:      uuid.NewString(),
		Topic:   "sales.deal.closed.v1",
		Payload: []byte(`{}`),
		Status:  kafka.OutboxStatusPending,
	}

	assert.NoError(t, kafka.ValidateOutboxEvent(valid))

	missingID := valid
	missingID.ID = ""
	assert.Error(t, kafka.ValidateOutboxEvent(missingID))

	missingTopic := valid
	missingTopic.Topic = ""
	assert.Error(t, kafka.ValidateOutboxEvent(missingTopic))

	emptyPayload := valid
	emptyPayload.Payload = nil
	assert.Error(t, kafka.ValidateOutboxEvent(emptyPayload))

	badStatus := valid
	badStatus.Status = "queued"
	assert.Error(t, kafka.ValidateOutboxEvent(badStatus))
}
