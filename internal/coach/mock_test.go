// ABOUTME: Test doubles for the coach package.
// ABOUTME: Canned generator and an in-memory store.
package coach

import (
	"context"

	"github.com/harperreed/coach/internal/models"
)

type mockGenerator struct {
	reply   string
	err     error
	panics  bool
	prompts []string
}

func (m *mockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.panics {
		panic("generator exploded")
	}
	return m.reply, m.err
}

type memStore struct {
	entries []*models.Entry
	chat    []models.ChatTurn
	saveErr error
}

func (m *memStore) ListEntries(limit int) ([]*models.Entry, error) {
	if limit > 0 && limit < len(m.entries) {
		return m.entries[len(m.entries)-limit:], nil
	}
	return m.entries, nil
}

func (m *memStore) AppendExchange(user, bot models.ChatTurn) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.chat = append(m.chat, user, bot)
	return nil
}

func (m *memStore) ListChat(limit int) ([]models.ChatTurn, error) {
	if limit > 0 && limit < len(m.chat) {
		return m.chat[len(m.chat)-limit:], nil
	}
	return m.chat, nil
}

func (m *memStore) ClearChat() error {
	m.chat = nil
	return nil
}
