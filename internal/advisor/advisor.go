// Package advisor asks a text-generation model for spending advice and
// category suggestions. Every failure degrades to a friendly message; nothing
// here returns an error to the UI.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/theirongolddev/dompet/internal/config"
	"github.com/theirongolddev/dompet/internal/logging"
	"github.com/theirongolddev/dompet/internal/model"
	"github.com/theirongolddev/dompet/internal/pipeline"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// MinTransactions is the fewest transactions worth sending.
	MinTransactions = 3
	// MaxTransactions caps the prompt to the newest N by date.
	MaxTransactions = 30

	requestTimeout = 45 * time.Second
)

// User-facing messages.
const (
	MsgNeedMoreData  = "Add at least 3 transactions so there is something to analyse."
	MsgNotConfigured = "No advisor API key is configured. Run `dompet setup` or set GEMINI_API_KEY to enable advice."
	MsgEmptyAnswer   = "The advisor is taking a short break. Try again later!"
	MsgUnavailable   = "Could not reach the advisor. Check your internet connection and try again."
)

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Advisor wraps a Generator. A nil Generator means advice is not configured.
type Advisor struct {
	gen      Generator
	log      *zap.Logger
	group    singleflight.Group
	inflight atomic.Int32
}

// New returns an Advisor backed by gen, which may be nil.
func New(gen Generator, log *zap.Logger) *Advisor {
	return &Advisor{gen: gen, log: logging.OrNop(log)}
}

// Configured reports whether a generator is available.
func (a *Advisor) Configured() bool { return a.gen != nil }

// InFlight reports whether an advice request is running. UIs use it to keep
// the trigger disabled until the answer arrives.
func (a *Advisor) InFlight() bool { return a.inflight.Load() > 0 }

// Advise returns advice for txs. Calls that overlap an in-flight request
// share its result instead of starting another.
func (a *Advisor) Advise(ctx context.Context, txs []model.Transaction) string {
	if len(txs) < MinTransactions {
		return MsgNeedMoreData
	}
	if a.gen == nil {
		return MsgNotConfigured
	}

	prompt, err := AdvicePrompt(txs)
	if err != nil {
		a.log.Error("building advice prompt", zap.Error(err))
		return MsgUnavailable
	}

	v, _, _ := a.group.Do("advice", func() (any, error) {
		a.inflight.Add(1)
		defer a.inflight.Add(-1)

		ctx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()

		start := time.Now()
		text, err := a.gen.Generate(ctx, prompt)
		if err != nil {
			a.log.Warn("advice request failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
			return MsgUnavailable, nil
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return MsgEmptyAnswer, nil
		}
		a.log.Debug("advice received", zap.Int("chars", len(text)), zap.Duration("elapsed", time.Since(start)))
		return text, nil
	})
	return v.(string)
}

// Categorize suggests a registered category id for description.
func (a *Advisor) Categorize(ctx context.Context, description string) (string, bool) {
	description = strings.TrimSpace(description)
	if a.gen == nil || description == "" {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	text, err := a.gen.Generate(ctx, CategorizePrompt(description))
	if err != nil {
		a.log.Warn("categorize request failed", zap.Error(err))
		return "", false
	}
	id := strings.ToLower(strings.Trim(strings.TrimSpace(text), "\"'`.[] "))
	if _, ok := config.KindOfCategory(id); !ok {
		a.log.Debug("discarding unknown category suggestion", zap.String("suggestion", text))
		return "", false
	}
	return id, true
}

type promptRecord struct {
	Type     string `json:"type"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Desc     string `json:"desc"`
}

// AdvicePrompt serialises the newest transactions by date into the prompt.
func AdvicePrompt(txs []model.Transaction) (string, error) {
	recent := pipeline.Recent(txs, MaxTransactions)
	records := make([]promptRecord, len(recent))
	for i, t := range recent {
		records[i] = promptRecord{
			Type:     t.Kind.String(),
			Amount:   t.Amount.String(),
			Category: t.Category,
			Date:     t.Date.Format(time.DateOnly),
			Desc:     t.Description,
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encoding transactions: %w", err)
	}

	return fmt.Sprintf(`Act as a cheerful, friendly and motivating personal finance coach.
Analyse the following transactions (JSON, newest first):
%s

Give 3 short, practical, actionable tips.
If spending exceeds income, give a gentle warning but stay encouraging.
If the user is saving well, praise them!
Keep formatting simple: short paragraphs or bullet points.`, data), nil
}

// CategorizePrompt asks for exactly one registered category id.
func CategorizePrompt(description string) string {
	return fmt.Sprintf(`Classify this income or expense into exactly one of these category ids:
[%s].

Description: %q

Reply with the category id only. If unsure, reply "other".`, strings.Join(config.AllCategoryIDs(), ", "), description)
}
