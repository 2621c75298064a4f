// ABOUTME: ChatTurn model for the user/coach conversation log.
// ABOUTME: Turns are always written in user-then-bot pairs.
package models

import "time"

// TimestampLayout is the format of chat and tip-usage timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// Role identifies the speaker of a chat turn.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// ChatTurn is one message in the conversation.
type ChatTurn struct {
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Role      Role   `json:"role" yaml:"role"`
	Message   string `json:"message" yaml:"message"`
}

// NewExchange returns the user and bot turns for one exchange, sharing a
// single timestamp.
func NewExchange(at time.Time, question, reply string) (ChatTurn, ChatTurn) {
	ts := at.Format(TimestampLayout)
	return ChatTurn{Timestamp: ts, Role: RoleUser, Message: question},
		ChatTurn{Timestamp: ts, Role: RoleBot, Message: reply}
}

// Record returns the turn as text fields: timestamp, role, message.
func (c ChatTurn) Record() []string {
	return []string{c.Timestamp, string(c.Role), c.Message}
}

// Speaker is the display name for the turn's role.
func (c ChatTurn) Speaker() string {
	if c.Role == RoleUser {
		return "You"
	}
	return "Coach"
}
