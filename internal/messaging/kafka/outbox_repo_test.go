package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func pendingEvent() OutboxEvent {
	return OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     uuid.NewString(),
		AggregateType: "checkin",
		AggregateID:   uuid.NewString(),
		EventType:     "checkin_recorded",
		Topic:         "gym.checkin.recorded.v1",
		Payload:       []byte(`{"action":"checked_in"}`),
		Status:        OutboxStatusPending,
	}
}

func TestOutboxRepository_Create_UsesCallerTx(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	defer db.Close()

	event := pendingEvent()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outbox_events").
		WithArgs(
			event.ID, event.RequestID, event.AggregateType,
			event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)

	repo := NewOutboxRepository(db)
	assert.NoError(t, repo.WithTx(tx).Create(context.Background(), event))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	defer db.Close()

	id := uuid.NewString()
	rows := sqlmock.NewRows([]string{
		"id", "aggregate_type", "aggregate_id", "event_type",
		"topic", "payload", "status", "retry_count", "next_retry_at",
	}).AddRow(
		id, "checkin", uuid.NewString(), "checkin_recorded",
		"gym.checkin.recorded.v1", []byte(`{}`), OutboxStatusPending, 0, time.Now(),
	)

	mock.ExpectQuery("FROM outbox_events").
		WithArgs(OutboxStatusPending, OutboxStatusFailed, 50).
		WillReturnRows(rows)

	repo := NewOutboxRepository(db)
	events, err := repo.ListPending(context.Background(), 50)
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, id, events[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed_SchedulesRetry(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	defer db.Close()

	id := uuid.NewString()
	mock.ExpectExec("UPDATE outbox_events").
		WithArgs(id, OutboxStatusFailed, "broker unreachable").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewOutboxRepository(db)
	assert.NoError(t, repo.MarkFailed(context.Background(), id, "broker unreachable"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateOutboxEvent(t *testing.T) {
	assert.NoError(t, ValidateOutboxEvent(pendingEvent()))

	missingTopic := pendingEvent()
	missingTopic.Topic = ""
	assert.Error(t, ValidateOutboxEvent(missingTopic))

	badStatus := pendingEvent()
	badStatus.Status = "queued"
	assert.Error(t, ValidateOutboxEvent(badStatus))

	empty := pendingEvent()
	empty.Payload = nil
	assert.Error(t, ValidateOutboxEvent(empty))
}
