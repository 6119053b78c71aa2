package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/studyrelay/chat-relay-service/internal/chatbot"
	"github.com/studyrelay/chat-relay-service/internal/events"
	"github.com/studyrelay/chat-relay-service/internal/models"
	"github.com/studyrelay/chat-relay-service/internal/validator"
)

// mockGenerator is a scriptable response-generation collaborator.
type mockGenerator struct {
	answer string
	err    error
	calls  int
}

func (g *mockGenerator) GenerateResponse(_ context.Context, _ string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}

func newTestChatService(repo *memoryRepository, gen chatbot.ResponseGenerator) (ChatService, *events.MockEventPublisher) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := events.NewMockEventPublisher(logger)
	return NewChatService(repo, gen, validator.New(), publisher, logger, 5*time.Second), publisher
}

func TestChatService_Exchange(t *testing.T) {
	ctx := context.Background()

	t.Run("AppendsMessageThenResponse", func(t *testing.T) {
		repo := newMemoryRepository()
		gen := &mockGenerator{answer: "hello back"}
		service, publisher := newTestChatService(repo, gen)

		resp, err := service.Exchange(ctx, 1, &validator.ChatRequest{Message: "hi"})
		if err != nil {
			t.Fatalf("Exchange failed: %v", err)
		}
		if resp.Answer != "hello back" {
			t.Errorf("answer = %q, want %q", resp.Answer, "hello back")
		}

		history, err := service.History(ctx, 1)
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if len(history.Entries) != 2 {
			t.Fatalf("expected exactly 2 entries, got %d", len(history.Entries))
		}
		if history.Entries[0].Kind != models.EntryMessage || history.Entries[0].Text != "hi" {
			t.Errorf("first entry = %+v, want message %q", history.Entries[0], "hi")
		}
		if history.Entries[1].Kind != models.EntryResponse || history.Entries[1].Text != "hello back" {
			t.Errorf("second entry = %+v, want response %q", history.Entries[1], "hello back")
		}
		if history.Entries[1].CreatedAt.Before(history.Entries[0].CreatedAt) {
			t.Error("response must not precede its message in time")
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("expected 1 event, got %d", len(published))
		}
		if published[0].Type != events.EventExchangeCompleted {
			t.Errorf("event type = %q, want %q", published[0].Type, events.EventExchangeCompleted)
		}
	})

	t.Run("CollaboratorFailure_MessageStillRecorded", func(t *testing.T) {
		repo := newMemoryRepository()
		gen := &mockGenerator{err: errors.New("model offline")}
		service, publisher := newTestChatService(repo, gen)

		_, err := service.Exchange(ctx, 1, &validator.ChatRequest{Message: "hi"})
		if !errors.Is(err, ErrCollaboratorUnavailable) {
			t.Fatalf("expected ErrCollaboratorUnavailable, got %v", err)
		}

		history, err := service.History(ctx, 1)
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if len(history.Entries) != 1 {
			t.Fatalf("expected the inbound message to remain recorded, got %d entries", len(history.Entries))
		}
		if history.Entries[0].Kind != models.EntryMessage {
			t.Errorf("surviving entry kind = %q, want message", history.Entries[0].Kind)
		}

		// No fabricated response entry and no completion event.
		if got := publisher.GetPublishedEvents(); len(got) != 0 {
			t.Errorf("expected no events on failed exchange, got %d", len(got))
		}
	})

	t.Run("ResponseWriteFailure_Surfaced", func(t *testing.T) {
		repo := newMemoryRepository()
		// The generator arms the store to fail the next append, so the
		// message write succeeds and the response write does not.
		service, _ := newTestChatService(repo, &failSecondAppendGenerator{repo: repo, answer: "x"})

		_, err := service.Exchange(ctx, 1, &validator.ChatRequest{Message: "hi"})
		if !errors.Is(err, ErrPersistence) {
			t.Fatalf("expected ErrPersistence, got %v", err)
		}

		history, _ := service.History(ctx, 1)
		if len(history.Entries) != 1 || history.Entries[0].Kind != models.EntryMessage {
			t.Fatalf("the recorded message must survive a failed response write, got %+v", history.Entries)
		}
	})

	t.Run("ValidationFailure_NothingWritten", func(t *testing.T) {
		repo := newMemoryRepository()
		gen := &mockGenerator{answer: "unused"}
		service, _ := newTestChatService(repo, gen)

		_, err := service.Exchange(ctx, 1, &validator.ChatRequest{Message: ""})
		if !errors.Is(err, ErrValidationFailed) {
			t.Fatalf("expected ErrValidationFailed, got %v", err)
		}
		if gen.calls != 0 {
			t.Error("generator must not run for invalid input")
		}
		count, _ := repo.Conversation().CountByUser(ctx, 1)
		if count != 0 {
			t.Errorf("expected no entries, got %d", count)
		}
	})
}

// failSecondAppendGenerator arms the conversation repo to fail its next
// append right before returning, so the response write fails while the
// message write has already happened.
type failSecondAppendGenerator struct {
	repo   *memoryRepository
	answer string
}

func (g *failSecondAppendGenerator) GenerateResponse(_ context.Context, _ string) (string, error) {
	g.repo.conversationRepo.failNextAppend = true
	return g.answer, nil
}

func TestChatService_History(t *testing.T) {
	ctx := context.Background()

	t.Run("EmptyHistoryIsNotAnError", func(t *testing.T) {
		repo := newMemoryRepository()
		service, _ := newTestChatService(repo, &mockGenerator{answer: "a"})

		history, err := service.History(ctx, 42)
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if history.Entries == nil {
			t.Fatal("expected an empty slice, not nil")
		}
		if len(history.Entries) != 0 {
			t.Fatalf("expected no entries, got %d", len(history.Entries))
		}
	})

	t.Run("MultipleExchangesAscending", func(t *testing.T) {
		repo := newMemoryRepository()
		service, _ := newTestChatService(repo, &mockGenerator{answer: "ack"})

		for _, msg := range []string{"one", "two", "three"} {
			if _, err := service.Exchange(ctx, 1, &validator.ChatRequest{Message: msg}); err != nil {
				t.Fatalf("Exchange(%q) failed: %v", msg, err)
			}
		}

		history, err := service.History(ctx, 1)
		if err != nil {
			t.Fatalf("History failed: %v", err)
		}
		if len(history.Entries) != 6 {
			t.Fatalf("expected 6 entries, got %d", len(history.Entries))
		}
		for i := 1; i < len(history.Entries); i++ {
			if history.Entries[i].CreatedAt.Before(history.Entries[i-1].CreatedAt) {
				t.Fatalf("entries out of order at %d", i)
			}
		}
		// message/response kinds alternate within each pair
		for i := 0; i < len(history.Entries); i += 2 {
			if history.Entries[i].Kind != models.EntryMessage || history.Entries[i+1].Kind != models.EntryResponse {
				t.Fatalf("pair %d has kinds %q/%q", i/2, history.Entries[i].Kind, history.Entries[i+1].Kind)
			}
		}
	})

	t.Run("PerUserIsolation", func(t *testing.T) {
		repo := newMemoryRepository()
		service, _ := newTestChatService(repo, &mockGenerator{answer: "ack"})

		if _, err := service.Exchange(ctx, 1, &validator.ChatRequest{Message: "mine"}); err != nil {
			t.Fatalf("Exchange failed: %v", err)
		}
		if _, err := service.Exchange(ctx, 2, &validator.ChatRequest{Message: "theirs"}); err != nil {
			t.Fatalf("Exchange failed: %v", err)
		}

		history, _ := service.History(ctx, 1)
		for _, e := range history.Entries {
			if e.Text == "theirs" {
				t.Fatal("history leaked another user's entries")
			}
		}
	})
}

func TestChatService_ExportHistory(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	service, _ := newTestChatService(repo, &mockGenerator{answer: "ack"})

	if _, err := service.Exchange(ctx, 1, &validator.ChatRequest{Message: "hi"}); err != nil {
		t.Fatalf("Exchange failed: %v", err)
	}

	data, err := service.ExportHistory(ctx, 1)
	if err != nil {
		t.Fatalf("ExportHistory failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty workbook")
	}
	// .xlsx files are zip archives
	if !bytes.HasPrefix(data, []byte{'P', 'K'}) {
		t.Error("expected xlsx (zip) magic bytes")
	}
}
