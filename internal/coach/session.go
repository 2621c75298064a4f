// ABOUTME: Chat session: answer questions and keep the conversation log.
// ABOUTME: The store is the only copy of history; nothing is cached here.
package coach

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/coach/internal/logging"
	"github.com/harperreed/coach/internal/models"
	"github.com/rs/zerolog"
)

// NoHistory is the reply to a recall request when the log is empty.
const NoHistory = "No previous chat found."

// Store is the slice of storage.Repository a Session needs.
type Store interface {
	ListEntries(limit int) ([]*models.Entry, error)
	AppendExchange(user, bot models.ChatTurn) error
	ListChat(limit int) ([]models.ChatTurn, error)
	ClearChat() error
}

// Session ties the Responder to the wellness and chat logs.
type Session struct {
	store     Store
	responder *Responder
	now       func() time.Time
	logger    zerolog.Logger
}

// NewSession creates a Session.
func NewSession(logger zerolog.Logger, store Store, responder *Responder) *Session {
	return &Session{
		store:     store,
		responder: responder,
		now:       time.Now,
		logger:    logging.Component(logger, "session"),
	}
}

// Ask answers question. Recall requests such as "last 3 chats" are
// answered from the chat log without calling the model or appending.
// Every other question is sent to the coach and the exchange is appended,
// even when the reply is a flagged failure. Only storage errors are
// returned.
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	if n, ok := ParseRecall(question); ok {
		turns, err := s.Recall(n)
		if err != nil {
			return "", err
		}
		if len(turns) == 0 {
			return NoHistory, nil
		}
		return FormatTurns(turns), nil
	}

	rows, err := s.store.ListEntries(ContextRows)
	if err != nil {
		return "", fmt.Errorf("load recent entries: %w", err)
	}

	reply := s.responder.Respond(ctx, question, rows)

	user, bot := models.NewExchange(s.now(), question, reply)
	if err := s.store.AppendExchange(user, bot); err != nil {
		return reply, fmt.Errorf("save exchange: %w", err)
	}
	s.logger.Debug().Bool("failed", IsError(reply)).Msg("exchange saved")

	return reply, nil
}

// Recall returns the last n exchanges.
func (s *Session) Recall(n int) ([]models.ChatTurn, error) {
	return s.History(2 * n)
}

// History returns the last limit turns, or all turns when limit <= 0.
func (s *Session) History(limit int) ([]models.ChatTurn, error) {
	turns, err := s.store.ListChat(limit)
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}
	return turns, nil
}

// Clear deletes the chat log.
func (s *Session) Clear() error {
	if err := s.store.ClearChat(); err != nil {
		return fmt.Errorf("clear chat history: %w", err)
	}
	return nil
}

// FormatTurns renders turns one per line as "Speaker (timestamp): message".
func FormatTurns(turns []models.ChatTurn) string {
	lines := make([]string, len(turns))
	for i, t := range turns {
		lines[i] = fmt.Sprintf("%s (%s): %s", t.Speaker(), t.Timestamp, t.Message)
	}
	return strings.Join(lines, "\n")
}
