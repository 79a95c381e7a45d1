// Package dispatch routes interpreted messages to their handlers. It is the
// seam between the pure NLP components and the stateful dialogue engine:
// one call per incoming message, one structured reply out.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pandhu/duitbot/internal/common"
	"github.com/pandhu/duitbot/internal/dialogue"
	"github.com/pandhu/duitbot/internal/extract"
	"github.com/pandhu/duitbot/internal/goal"
	"github.com/pandhu/duitbot/internal/intent"
	"github.com/pandhu/duitbot/internal/model"
	"github.com/pandhu/duitbot/internal/nlp"
	"github.com/pandhu/duitbot/internal/service"
	"github.com/pandhu/duitbot/internal/tips"
)

// DefaultCollaboratorTimeout bounds every storage and insight call. A
// timeout degrades to an apologetic reply, never a crash.
const DefaultCollaboratorTimeout = 3 * time.Second

// Scratch keys for entities collected across turns. The intent driving the
// exchange lives in the pending-action queue, not scratch.
const (
	scratchAmount      = "pending_amount"
	scratchCategory    = "pending_category"
	scratchDate        = "pending_date"
	scratchDescription = "pending_description"
)

var (
	affirmativeWords = map[string]struct{}{
		"ya": {}, "iya": {}, "benar": {}, "betul": {}, "ok": {}, "oke": {}, "yes": {}, "yoi": {}, "sip": {},
	}
	negativeWords = map[string]struct{}{
		"tidak": {}, "ulangi": {}, "no": {}, "salah": {}, "bukan": {}, "nggak": {}, "gak": {},
	}
	cancelWords = map[string]struct{}{
		"batal": {}, "batalkan": {}, "cancel": {},
	}
)

// Dispatcher interprets one message at a time per user and produces a
// reply. All collaborator calls go through a bounded timeout.
type Dispatcher struct {
	storage    service.Storage
	insights   service.Insights
	planner    *goal.Planner
	tips       *tips.Service
	classifier *intent.Classifier
	contexts   *dialogue.Store
	clock      service.Clock
	timeout    time.Duration
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithClock overrides the time source.
func WithClock(c service.Clock) Option {
	return func(d *Dispatcher) { d.clock = c }
}

// WithTimeout overrides the collaborator call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) { d.timeout = timeout }
}

// New wires a dispatcher from its collaborators.
func New(storage service.Storage, insights service.Insights, planner *goal.Planner, tipSvc *tips.Service, classifier *intent.Classifier, contexts *dialogue.Store, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		storage:    storage,
		insights:   insights,
		planner:    planner,
		tips:       tipSvc,
		classifier: classifier,
		contexts:   contexts,
		clock:      service.SystemClock{},
		timeout:    DefaultCollaboratorTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle processes one raw message from a user and returns the reply. The
// per-user context lock is held for the whole call, so messages from the
// same user serialize while distinct users proceed in parallel.
func (d *Dispatcher) Handle(ctx context.Context, userID, rawText string) (model.Reply, error) {
	normalized := nlp.Normalize(rawText)
	now := d.clock.Now()

	sentiment := nlp.ScoreSentiment(normalized)
	detected, confidence := d.classifier.Classify(normalized)
	entities := extract.Entities(normalized, now)

	dctx, release := d.contexts.Acquire(userID)
	defer release()

	common.LogDebug("message interpreted", common.Fields{
		"user":       userID,
		"intent":     detected,
		"confidence": confidence,
		"state":      dctx.State,
	})
	if detected == model.IntentUnknown && confidence > 0 {
		// Below-threshold score: the classifier saw something but was not
		// sure enough to act on it.
		common.LogDebug("intent unresolved", common.Fields{
			"user":       userID,
			"confidence": confidence,
			"error":      common.ErrAmbiguousIntent.Error(),
		})
	}

	// Any reply clears the error state.
	if dctx.State == dialogue.StateError {
		dctx.Reset(now)
	}

	var reply model.Reply
	if dctx.State.Awaiting() {
		r, handled := d.resolveClarification(ctx, dctx, userID, normalized, detected, entities, now)
		if handled {
			reply = r
		} else {
			// Not an answer to the pending clarification; treat it as a
			// fresh command.
			dctx.Reset(now)
			reply = d.route(ctx, dctx, userID, detected, entities, normalized, now)
		}
	} else {
		reply = d.route(ctx, dctx, userID, detected, entities, normalized, now)
	}

	dctx.LastIntent = detected
	dctx.LastEntities = entities
	dctx.Touch(d.clock.Now())

	if reply.Kind == model.ReplyText && sentiment.Stressed() {
		reply.Content = attachAdvisories(reply.Content, sentiment.Advisories)
	}

	return reply, nil
}

// resolveClarification tries to read the message as an answer to the
// pending multi-turn exchange. The second return is false when the message
// should instead be routed as a new command.
func (d *Dispatcher) resolveClarification(ctx context.Context, dctx *dialogue.Context, userID, text string, detected model.Intent, entities model.ExtractedEntities, now time.Time) (model.Reply, bool) {
	switch dctx.State {
	case dialogue.StateAwaitingConfirmation:
		return d.resolveConfirmation(ctx, dctx, userID, text, now)

	case dialogue.StateAwaitingAmount:
		if member(cancelWords, firstWord(text)) {
			dctx.Reset(now)
			return model.TextReply(replyCancelled), true
		}
		if entities.Amount != nil {
			dctx.SetScratch(scratchAmount, *entities.Amount, dialogue.DefaultExpiry, now)
			dctx.Pop()
			dctx.Push(dialogue.StateAwaitingConfirmation, now)
			return d.confirmationPrompt(dctx, now), true
		}
		if detected != model.IntentUnknown {
			return model.Reply{}, false
		}
		return model.TextReply(replyAskAmount), true

	case dialogue.StateAwaitingCategory:
		if member(cancelWords, firstWord(text)) {
			dctx.Reset(now)
			return model.TextReply(replyCancelled), true
		}
		dctx.SetScratch(scratchCategory, entities.Category, dialogue.DefaultExpiry, now)
		dctx.Pop()
		dctx.Push(dialogue.StateAwaitingConfirmation, now)
		return d.confirmationPrompt(dctx, now), true

	default:
		return model.Reply{}, false
	}
}

func (d *Dispatcher) resolveConfirmation(ctx context.Context, dctx *dialogue.Context, userID, text string, now time.Time) (model.Reply, bool) {
	first := firstWord(text)

	switch {
	case member(affirmativeWords, first):
		reply := d.commitPending(ctx, dctx, userID, now)
		return reply, true

	case member(cancelWords, first):
		dctx.Reset(now)
		return model.TextReply(replyCancelled), true

	case member(negativeWords, first):
		// Back to collecting the amount; everything else already known
		// stays in scratch.
		dctx.Pop()
		dctx.Push(dialogue.StateAwaitingAmount, now)
		return model.TextReply(replyRetryAmount), true

	default:
		return model.Reply{}, false
	}
}

// confirmationPrompt summarizes the pending action and asks for a yes/no.
func (d *Dispatcher) confirmationPrompt(dctx *dialogue.Context, now time.Time) model.Reply {
	pending := pendingIntent(dctx)

	amount := decimal.Zero
	if v, ok := dctx.Scratch(scratchAmount, now); ok {
		amount = v.(decimal.Decimal)
	}
	category := extract.CatchAllCategory
	if v, ok := dctx.Scratch(scratchCategory, now); ok {
		category = v.(string)
	}

	var prompt string
	switch pending {
	case model.IntentAddIncome:
		prompt = "Konfirmasi: catat pemasukan sebesar Rp " + FormatRupiah(amount) +
			" dari kategori " + category + "?"
	case model.IntentSetBudget:
		prompt = "Konfirmasi: atur budget kategori " + category +
			" sebesar Rp " + FormatRupiah(amount) + "?"
	default:
		prompt = "Konfirmasi: catat pengeluaran sebesar Rp " + FormatRupiah(amount) +
			" untuk kategori " + category + "?"
	}

	return model.ConfirmationReply(prompt, "Ya, Benar", "Tidak, Ulangi", "Batal")
}

// commitPending dequeues the confirmed action, executes it against the
// entities accumulated in scratch, then resets the context to idle.
func (d *Dispatcher) commitPending(ctx context.Context, dctx *dialogue.Context, userID string, now time.Time) model.Reply {
	pending := model.IntentAddExpense
	if action := dctx.NextPending(); action != nil {
		pending = action.Intent
	}

	amountVal, ok := dctx.Scratch(scratchAmount, now)
	if !ok {
		// Scratch expired mid-conversation; nothing safe to commit.
		common.LogWarn("pending action dropped", common.Fields{
			"user":  userID,
			"error": common.ErrContextCorrupted.Error(),
		})
		dctx.Reset(now)
		return model.TextReply(replyUnknown)
	}
	amount := amountVal.(decimal.Decimal)

	category := extract.CatchAllCategory
	if v, ok := dctx.Scratch(scratchCategory, now); ok {
		category = v.(string)
	}
	date := now
	if v, ok := dctx.Scratch(scratchDate, now); ok {
		date = v.(time.Time)
	}
	description := ""
	if v, ok := dctx.Scratch(scratchDescription, now); ok {
		description = v.(string)
	}

	var reply model.Reply
	switch pending {
	case model.IntentAddIncome:
		reply = d.commitTransaction(ctx, dctx, userID, model.TransactionIncome, amount, category, date, description, now)
	case model.IntentSetBudget:
		reply = d.commitBudget(ctx, dctx, userID, category, amount, now)
	default:
		reply = d.commitTransaction(ctx, dctx, userID, model.TransactionExpense, amount, category, date, description, now)
	}

	if dctx.State != dialogue.StateError {
		dctx.Reset(now)
	}
	return reply
}

// pendingIntent peeks the intent of the oldest queued action without
// consuming it. Commit is the only consumer.
func pendingIntent(dctx *dialogue.Context) model.Intent {
	if len(dctx.Pending) > 0 {
		return dctx.Pending[0].Intent
	}
	return model.IntentAddExpense
}

// beginAmountPrompt stashes what is already known, queues the action, and
// asks for the amount.
func (d *Dispatcher) beginAmountPrompt(dctx *dialogue.Context, pendingIntent model.Intent, entities model.ExtractedEntities, text string, prompt string, now time.Time) model.Reply {
	common.LogDebug("clarification needed", common.Fields{
		"intent": pendingIntent,
		"error":  common.ErrMissingEntity.Error(),
	})
	dctx.SetScratch(scratchCategory, entities.Category, dialogue.DefaultExpiry, now)
	dctx.SetScratch(scratchDate, entities.Date, dialogue.DefaultExpiry, now)
	dctx.SetScratch(scratchDescription, text, dialogue.DefaultExpiry, now)
	dctx.QueuePending(dialogue.PendingAction{
		Kind:     "amount",
		Intent:   pendingIntent,
		QueuedAt: now,
	})
	dctx.Push(dialogue.StateAwaitingAmount, now)
	return model.TextReply(prompt)
}

// fail logs the error, moves the dialogue to the error state, and returns
// the apologetic reply. No partial write survives.
func (d *Dispatcher) fail(dctx *dialogue.Context, err error, op string, now time.Time) model.Reply {
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%s: %w", op, common.ErrCollaboratorTimeout)
	} else {
		err = fmt.Errorf("%s: %v: %w", op, err, common.ErrCollaboratorUnavailable)
	}
	userErr := common.NewUserError(replyInternalError, err)
	common.LogError(userErr, "handler failed", common.Fields{
		"op":        op,
		"retryable": common.IsRetryable(userErr),
	})
	dctx.Reset(now)
	dctx.Push(dialogue.StateError, now)
	return model.TextReply(replyInternalError)
}

// callCtx bounds a collaborator call.
func (d *Dispatcher) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d.timeout)
}

func (d *Dispatcher) invalidateInsights(userID string) {
	if inv, ok := d.insights.(interface{ Invalidate(string) }); ok {
		inv.Invalidate(userID)
	}
}

func firstWord(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func member(set map[string]struct{}, word string) bool {
	_, ok := set[word]
	return ok
}

func attachAdvisories(content string, advisories []nlp.Advisory) string {
	var sb strings.Builder
	sb.WriteString(content)
	for _, adv := range advisories {
		sb.WriteString("\n\n💭 ")
		sb.WriteString(adv.Message)
		if adv.Suggestion != "" {
			sb.WriteString("\n")
			sb.WriteString(adv.Suggestion)
		}
	}
	return sb.String()
}
