// Package gateway implements the simulated settlement boundary. Every
// submission resolves after a fixed artificial delay; nothing real moves.
package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/billfold/billfold/internal/common"
	"github.com/billfold/billfold/internal/model"
	"github.com/billfold/billfold/internal/service"
	"github.com/google/uuid"
)

// Default artificial latencies, matching the original product's canned
// two-second "processing" pause.
const (
	DefaultTransferDelay = 2 * time.Second
	DefaultDepositDelay  = 2 * time.Second
	DefaultSupportDelay  = time.Second
)

// DeclineRule lets tests and demos inject a settlement failure. A nil rule
// never declines, which is the shipped behavior.
type DeclineRule func(transfer model.PendingTransfer) error

// DepositDeclineRule is the deposit-side counterpart of DeclineRule.
type DepositDeclineRule func(request model.DepositRequest) error

var (
	_ service.TransferGateway = (*Simulated)(nil)
	_ service.DepositGateway  = (*Simulated)(nil)
	_ service.SupportGateway  = (*Simulated)(nil)
)

// Simulated settles transfers and deposits after a fixed delay. It is safe
// for concurrent use; each submission gets a fresh unique identifier.
type Simulated struct {
	provider       service.DataProvider
	decline        DeclineRule
	declineDeposit DepositDeclineRule
	now            func() time.Time
	transferDelay  time.Duration
	depositDelay   time.Duration
	supportDelay   time.Duration
}

// Option customizes a simulated gateway.
type Option func(*Simulated)

// WithTransferDelay overrides the artificial transfer latency.
func WithTransferDelay(delay time.Duration) Option {
	return func(g *Simulated) { g.transferDelay = delay }
}

// WithDepositDelay overrides the artificial deposit latency.
func WithDepositDelay(delay time.Duration) Option {
	return func(g *Simulated) { g.depositDelay = delay }
}

// WithSupportDelay overrides the artificial support-ticket latency.
func WithSupportDelay(delay time.Duration) Option {
	return func(g *Simulated) { g.supportDelay = delay }
}

// WithDeclineRule installs a settlement decline rule.
func WithDeclineRule(rule DeclineRule) Option {
	return func(g *Simulated) { g.decline = rule }
}

// WithDepositDeclineRule installs a deposit decline rule.
func WithDepositDeclineRule(rule DepositDeclineRule) Option {
	return func(g *Simulated) { g.declineDeposit = rule }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Simulated) { g.now = now }
}

// NewSimulated creates a gateway backed by the provider's fee and rate
// tables.
func NewSimulated(provider service.DataProvider, opts ...Option) (*Simulated, error) {
	if provider == nil {
		return nil, fmt.Errorf("data provider is required")
	}

	g := &Simulated{
		provider:      provider,
		now:           time.Now,
		transferDelay: DefaultTransferDelay,
		depositDelay:  DefaultDepositDelay,
		supportDelay:  DefaultSupportDelay,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// SubmitTransfer settles a pending transfer after the artificial delay and
// returns a receipt with a freshly generated transaction id. The only
// failure modes are context cancellation and an injected decline.
func (g *Simulated) SubmitTransfer(ctx context.Context, transfer model.PendingTransfer) (model.Receipt, error) {
	if transfer.Recipient == nil {
		return model.Receipt{}, fmt.Errorf("transfer has no recipient")
	}

	if err := g.wait(ctx, g.transferDelay); err != nil {
		return model.Receipt{}, err
	}

	if g.decline != nil {
		if err := g.decline(transfer); err != nil {
			return model.Receipt{}, fmt.Errorf("%w: %v", common.ErrTransferDeclined, err)
		}
	}

	fee, err := g.provider.Fee(ctx, transfer.Currency)
	if err != nil {
		return model.Receipt{}, fmt.Errorf("failed to look up fee: %w", err)
	}
	rate, err := g.provider.ExchangeRate(ctx, transfer.Currency)
	if err != nil {
		return model.Receipt{}, fmt.Errorf("failed to look up exchange rate: %w", err)
	}

	return model.Receipt{
		TransactionID: newTransactionID("TX"),
		Amount:        transfer.Amount,
		Fee:           fee,
		Total:         transfer.Amount.Add(fee),
		Currency:      transfer.Currency,
		RecipientName: transfer.Recipient.DisplayName(),
		Description:   transfer.Description,
		USDValue:      transfer.Amount.Mul(rate),
		SubmittedAt:   g.now(),
	}, nil
}

// SubmitDeposit settles an add-funds request after the artificial delay.
func (g *Simulated) SubmitDeposit(ctx context.Context, request model.DepositRequest) (model.DepositReceipt, error) {
	method, ok := model.DepositMethodByID(request.Method)
	if !ok {
		return model.DepositReceipt{}, fmt.Errorf("unknown deposit method %q", request.Method)
	}

	if err := g.wait(ctx, g.depositDelay); err != nil {
		return model.DepositReceipt{}, err
	}

	if g.declineDeposit != nil {
		if err := g.declineDeposit(request); err != nil {
			return model.DepositReceipt{}, fmt.Errorf("%w: %v", common.ErrDepositDeclined, err)
		}
	}

	fee := model.DepositFee(request.Method, request.Amount)

	return model.DepositReceipt{
		ReferenceID:    newTransactionID("DEP"),
		Method:         request.Method,
		Amount:         request.Amount,
		Fee:            fee,
		Total:          request.Amount.Add(fee),
		Currency:       request.Currency,
		ProcessingTime: method.ProcessingTime,
		SubmittedAt:    g.now(),
	}, nil
}

// SubmitSupportTicket files a help request after the artificial delay. The
// ticket is acknowledged, never stored; there is no backend to route it to.
func (g *Simulated) SubmitSupportTicket(ctx context.Context, ticket model.SupportTicket) (model.TicketReceipt, error) {
	if errs := ticket.Validate(); len(errs) > 0 {
		return model.TicketReceipt{}, fmt.Errorf("invalid support ticket: %d field(s) rejected", len(errs))
	}

	if err := g.wait(ctx, g.supportDelay); err != nil {
		return model.TicketReceipt{}, err
	}

	return model.TicketReceipt{
		TicketID:     newTransactionID("TKT"),
		Category:     ticket.Category,
		Subject:      ticket.Subject,
		ResponseTime: "within 24 hours",
		SubmittedAt:  g.now(),
	}, nil
}

// wait blocks for the artificial delay, honoring cancellation. There is no
// timeout handling beyond the caller's context; the delay always elapses.
func (g *Simulated) wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// newTransactionID generates a unique display identifier like TX-1A2B3C4D.
func newTransactionID(prefix string) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return prefix + "-" + id[:8]
}
