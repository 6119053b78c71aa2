package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/studyrelay/chat-relay-service/internal/chatbot"
	"github.com/studyrelay/chat-relay-service/internal/events"
	"github.com/studyrelay/chat-relay-service/internal/models"
	"github.com/studyrelay/chat-relay-service/internal/repositories"
	"github.com/studyrelay/chat-relay-service/internal/validator"
)

// ===== RESPONSE DTOs =====

type ExchangeResponse struct {
	Answer string `json:"answer"`
}

type HistoryResponse struct {
	Entries []models.HistoryItem `json:"entries"`
	Total   int                  `json:"total"`
}

// ===== SERVICE INTERFACE =====

// ChatService orchestrates the request/response cycle: record the inbound
// message, invoke the response generator, record the response. Callers are
// already authenticated; this service never re-checks authentication.
type ChatService interface {
	Exchange(ctx context.Context, userID uint, req *validator.ChatRequest) (*ExchangeResponse, error)
	History(ctx context.Context, userID uint) (*HistoryResponse, error)

	// ExportHistory renders the full history as an .xlsx workbook.
	ExportHistory(ctx context.Context, userID uint) ([]byte, error)
}

// ===== SERVICE IMPLEMENTATION =====

type chatService struct {
	repo      repositories.Repository
	generator chatbot.ResponseGenerator
	validator *validator.Validator
	publisher events.EventPublisher
	logger    *slog.Logger

	generateTimeout time.Duration
}

func NewChatService(
	repo repositories.Repository,
	generator chatbot.ResponseGenerator,
	v *validator.Validator,
	publisher events.EventPublisher,
	logger *slog.Logger,
	generateTimeout time.Duration,
) ChatService {
	return &chatService{
		repo:            repo,
		generator:       generator,
		validator:       v,
		publisher:       publisher,
		logger:          logger,
		generateTimeout: generateTimeout,
	}
}

func (s *chatService) Exchange(ctx context.Context, userID uint, req *validator.ChatRequest) (*ExchangeResponse, error) {
	if verrs := s.validator.ValidateChat(req); verrs.HasErrors() {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, verrs.Error())
	}

	// The inbound message is recorded before the generator runs: it happened
	// regardless of whether a response can be produced.
	messageEntry := &models.ConversationEntry{
		UserID: userID,
		Kind:   models.EntryMessage,
		Text:   req.Message,
	}
	if err := s.repo.Conversation().Append(ctx, messageEntry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	genCtx, cancel := context.WithTimeout(ctx, s.generateTimeout)
	defer cancel()

	answer, err := s.generator.GenerateResponse(genCtx, req.Message)
	if err != nil {
		// No fabricated response entry; the message above stays recorded.
		s.logger.Error("response generation failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrCollaboratorUnavailable, err)
	}

	responseEntry := &models.ConversationEntry{
		UserID: userID,
		Kind:   models.EntryResponse,
		Text:   answer,
	}
	if err := s.repo.Conversation().Append(ctx, responseEntry); err != nil {
		// The message write already happened and stands; the failure is
		// surfaced, never swallowed into a success.
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.publishEvent(ctx, events.NewEvent(events.EventExchangeCompleted, events.ExchangeCompletedEvent{
		UserID:          userID,
		MessageEntryID:  messageEntry.ID,
		ResponseEntryID: responseEntry.ID,
		MessageChars:    len(req.Message),
		ResponseChars:   len(answer),
	}))

	return &ExchangeResponse{Answer: answer}, nil
}

func (s *chatService) History(ctx context.Context, userID uint) (*HistoryResponse, error) {
	entries, err := s.repo.Conversation().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	items := make([]models.HistoryItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, models.HistoryItem{
			Kind:      entry.Kind,
			Text:      entry.Text,
			CreatedAt: entry.CreatedAt,
		})
	}

	return &HistoryResponse{Entries: items, Total: len(items)}, nil
}

func (s *chatService) ExportHistory(ctx context.Context, userID uint) ([]byte, error) {
	history, err := s.History(ctx, userID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "History"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Kind", "Text", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, item := range history.Entries {
		values := []interface{}{string(item.Kind), item.Text, item.CreatedAt.Format(time.RFC3339)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render history workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *chatService) publishEvent(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed", "type", event.Type, "error", err)
	}
}
