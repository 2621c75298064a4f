// ABOUTME: Coach Responder: prompt the model with recent rows and a question.
// ABOUTME: Failures come back as a flagged string, never as an error.
package coach

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/llm"
	"github.com/harperreed/coach/internal/logging"
	"github.com/harperreed/coach/internal/models"
	"github.com/rs/zerolog"
)

// ErrorPrefix starts every user-visible failure string.
const ErrorPrefix = "❌"

// Responder asks the model for advice.
type Responder struct {
	gen    llm.Generator
	logger zerolog.Logger
}

// NewResponder creates a Responder backed by gen.
func NewResponder(logger zerolog.Logger, gen llm.Generator) *Responder {
	return &Responder{
		gen:    gen,
		logger: logging.Component(logger, "coach"),
	}
}

// Respond returns the model's advice for question given the recent rows,
// trimmed and on a single line. Any failure, including a panic in the
// generator, is returned as a string starting with ErrorPrefix.
func (r *Responder) Respond(ctx context.Context, question string, rows []*models.Entry) (reply string) {
	reqID := uuid.New().String()
	log := r.logger.With().Str("request_id", reqID).Logger()

	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic", p).Msg("coach request panicked")
			reply = errorReply(fmt.Errorf("%v", p))
		}
	}()

	prompt := BuildPrompt(RenderContext(rows), question)
	log.Debug().Int("rows", len(rows)).Int("prompt_len", len(prompt)).Msg("asking coach")

	text, err := r.gen.Generate(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("coach request failed")
		return errorReply(err)
	}

	reply = Flatten(text)
	if reply == "" {
		log.Warn().Msg("coach returned empty reply")
		return errorReply(llm.ErrEmptyResponse)
	}
	return reply
}

// Flatten trims text and replaces line breaks with spaces.
func Flatten(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\r\n", " ")
	return strings.ReplaceAll(text, "\n", " ")
}

// IsError reports whether reply is a flagged failure string.
func IsError(reply string) bool {
	return strings.HasPrefix(reply, ErrorPrefix)
}

func errorReply(err error) string {
	return fmt.Sprintf("%s Coach error: %v", ErrorPrefix, err)
}
