// ABOUTME: Random tip selection with an optional category filter.
// ABOUTME: Every selection, including the placeholder, is recorded as usage.
package tips

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/harperreed/coach/internal/logging"
	"github.com/harperreed/coach/internal/models"
	"github.com/rs/zerolog"
)

// UsageRecorder persists tip usage. storage.Repository satisfies it.
type UsageRecorder interface {
	AppendTipUsage(u models.TipUsage) error
}

// Selector picks tips from a fixed list.
type Selector struct {
	tips   []models.Tip
	usage  UsageRecorder
	rng    *rand.Rand
	now    func() time.Time
	logger zerolog.Logger
}

// Option configures a Selector.
type Option func(*Selector)

// WithRand sets the random source, mainly for deterministic tests.
func WithRand(r *rand.Rand) Option {
	return func(s *Selector) { s.rng = r }
}

// WithClock sets the time source used for usage timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Selector) { s.now = now }
}

// NewSelector creates a Selector over tips. A nil usage recorder disables
// usage logging.
func NewSelector(logger zerolog.Logger, tips []models.Tip, usage UsageRecorder, opts ...Option) *Selector {
	s := &Selector{
		tips:   tips,
		usage:  usage,
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		now:    time.Now,
		logger: logging.Component(logger, "tips"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Daily returns a random tip. An empty category draws from every tip;
// otherwise only tips whose category matches ignoring case are eligible.
// When nothing matches, a placeholder naming the requested category is
// returned.
func (s *Selector) Daily(category string) models.Tip {
	pool := s.Filter(category)

	var tip models.Tip
	if len(pool) == 0 {
		tip = models.PlaceholderTip(category)
	} else {
		tip = pool[s.rng.IntN(len(pool))]
	}

	s.record(tip)
	return tip
}

// Filter returns the tips eligible for category.
func (s *Selector) Filter(category string) []models.Tip {
	if category == "" {
		return s.tips
	}

	var pool []models.Tip
	for _, t := range s.tips {
		if strings.EqualFold(t.Category, category) {
			pool = append(pool, t)
		}
	}
	return pool
}

// Categories lists the distinct categories in first-seen order.
func (s *Selector) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range s.tips {
		if t.Category == "" || seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		out = append(out, t.Category)
	}
	return out
}

func (s *Selector) record(tip models.Tip) {
	if s.usage == nil {
		return
	}
	if err := s.usage.AppendTipUsage(models.NewTipUsage(s.now(), tip)); err != nil {
		s.logger.Warn().Err(err).Str("category", tip.Category).Msg("failed to record tip usage")
	}
}
