package events

import (
	"context"
	"log/slog"
	"os"
	"testing"
)

func TestMockEventPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := NewMockEventPublisher(logger)
	ctx := context.Background()

	t.Run("RecordsPublishedEvents", func(t *testing.T) {
		event := NewEvent(EventExchangeCompleted, ExchangeCompletedEvent{
			UserID:          1,
			MessageEntryID:  10,
			ResponseEntryID: 11,
		})

		if err := publisher.Publish(ctx, event); err != nil {
			t.Fatalf("Publish failed: %v", err)
		}

		recorded := publisher.GetPublishedEvents()
		if len(recorded) != 1 {
			t.Fatalf("expected 1 event, got %d", len(recorded))
		}
		if recorded[0].Type != EventExchangeCompleted {
			t.Errorf("expected event type %q, got %q", EventExchangeCompleted, recorded[0].Type)
		}
	})

	t.Run("EnvelopeStructure", func(t *testing.T) {
		publisher.ClearEvents()

		event := NewEvent(EventUserRegistered, UserRegisteredEvent{
			UserID:    123,
			StudentID: "student01",
			School:    "Hanguk Middle School",
		})
		if err := publisher.Publish(ctx, event); err != nil {
			t.Fatalf("Publish failed: %v", err)
		}

		recorded := publisher.GetPublishedEvents()
		if len(recorded) != 1 {
			t.Fatalf("expected 1 event, got %d", len(recorded))
		}

		got := recorded[0]
		if got.ID == "" {
			t.Error("event ID should not be empty")
		}
		if got.Source != "chat-relay-service" {
			t.Errorf("expected source 'chat-relay-service', got %q", got.Source)
		}
		if got.Version != "1.0" {
			t.Errorf("expected version '1.0', got %q", got.Version)
		}
		if got.Timestamp.IsZero() {
			t.Error("event timestamp should not be zero")
		}
	})

	t.Run("ClearEvents", func(t *testing.T) {
		publisher.ClearEvents()
		if got := publisher.GetPublishedEvents(); len(got) != 0 {
			t.Errorf("expected no events after clear, got %d", len(got))
		}
	})
}

// Integration test example (would require a running Kafka broker).
func TestKafkaEventPublisher_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}
	if os.Getenv("KAFKA_BROKERS") == "" {
		t.Skip("KAFKA_BROKERS not configured")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher, err := NewKafkaEventPublisher([]string{os.Getenv("KAFKA_BROKERS")}, "chat-relay.events.test", logger)
	if err != nil {
		t.Fatalf("failed to create kafka publisher: %v", err)
	}
	defer publisher.Close()

	event := NewEvent(EventExchangeCompleted, ExchangeCompletedEvent{UserID: 1})
	if err := publisher.Publish(context.Background(), event); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
}
