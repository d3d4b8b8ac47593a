package board

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"brutus/internal/domain"
)

const DefaultPollInterval = 5 * time.Second

type OrderLister interface {
	ListOrders(ctx context.Context) ([]Order, error)
}

// Poller drives the board: it fetches the order list on a fixed
// interval, diffs against the previous poll to spot new orders and
// hands each snapshot to the render callback. At most one poll runs at
// a time; a tick that lands while a poll is outstanding is skipped, so
// a slow server never stacks requests.
type Poller struct {
	client   OrderLister
	interval time.Duration
	logger   *zap.Logger

	render func(Snapshot)
	print  func(Order, string)

	enabled   atomic.Bool
	autoPrint atomic.Bool
	inFlight  atomic.Bool

	kick chan struct{}
	seen map[int64]bool
}

// NewPoller wires a poller around the given client. render receives
// every successful poll's snapshot; print receives each newly observed
// pending order together with its rendered receipt when auto-print is
// on. Either callback may be nil.
func NewPoller(client OrderLister, interval time.Duration, render func(Snapshot), print func(Order, string), logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	p := &Poller{
		client:   client,
		interval: interval,
		logger:   logger,
		render:   render,
		print:    print,
		kick:     make(chan struct{}, 1),
		seen:     make(map[int64]bool),
	}
	p.enabled.Store(true)
	return p
}

// SetEnabled pauses or resumes periodic polling. A forced refresh via
// Refresh still goes through while paused.
func (p *Poller) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

func (p *Poller) SetAutoPrint(enabled bool) {
	p.autoPrint.Store(enabled)
}

// Refresh requests an immediate poll, used after every board action so
// the view reflects the server without waiting out the interval.
func (p *Poller) Refresh() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// Run polls until ctx is cancelled. It performs one poll up front so
// the board is populated before the first tick.
func (p *Poller) Run(ctx context.Context) {
	p.poll(ctx, true)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx, false)
		case <-p.kick:
			p.poll(ctx, true)
		}
	}
}

func (p *Poller) poll(ctx context.Context, forced bool) {
	if !forced && !p.enabled.Load() {
		return
	}
	if !p.inFlight.CompareAndSwap(false, true) {
		p.logger.Debug("poll still in flight, skipping tick")
		return
	}
	defer p.inFlight.Store(false)

	orders, err := p.client.ListOrders(ctx)
	if err != nil {
		p.logger.Warn("failed to fetch orders", zap.Error(err))
		return
	}

	newIDs := NewIDs(p.seen, orders)
	p.seen = IDSet(orders)

	snapshot := Partition(orders)
	if p.render != nil {
		p.render(snapshot)
	}

	if p.autoPrint.Load() && p.print != nil && len(newIDs) > 0 {
		p.printNewPending(orders, newIDs)
	}
}

// printNewPending prints each newly observed order that is still
// pending. An order only ever shows up in newIDs once, so each order
// prints at most one receipt.
func (p *Poller) printNewPending(orders []Order, newIDs []int64) {
	isNew := make(map[int64]bool, len(newIDs))
	for _, id := range newIDs {
		isNew[id] = true
	}

	now := time.Now()
	for _, o := range orders {
		if !isNew[o.ID] || o.Status != string(domain.StatusPending) {
			continue
		}
		p.logger.Info("auto-printing new order", zap.Int64("orderId", o.ID))
		p.print(o, Receipt(o, now))
	}
}
