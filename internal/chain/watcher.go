package chain

import (
	"context"
	"log/slog"
	"time"

	"github.com/ShivamAgarwal-code/Talent-Cred/internal/alert"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/domain/model"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/metrics"
	"github.com/google/uuid"
)

// PendingProvider lists applications parked in ONCHAIN_PENDING.
type PendingProvider interface {
	ListOnchainPending(ctx context.Context) ([]model.LoanApplication, error)
}

// Confirmer finalizes a decision once its transaction settled. confirmed=false
// voids the decision back to PENDING.
type Confirmer interface {
	ConfirmDecision(ctx context.Context, id uuid.UUID, confirmed bool) error
}

// WatcherConfig tunes the receipt polling loop.
type WatcherConfig struct {
	PollInterval time.Duration
	// DecisionExpiry voids decisions whose transaction has not settled within
	// the window. Zero disables expiry.
	DecisionExpiry time.Duration
}

// Watcher polls the chain for receipts of recorded approval transactions and
// drives ONCHAIN_PENDING applications to their final status. It is the only
// component allowed to confirm an approval, which keeps the database from
// running ahead of the chain.
type Watcher struct {
	cfg     WatcherConfig
	client  ReceiptClient
	pending PendingProvider
	confirm Confirmer
	alerter alert.Alerter
	logger  *slog.Logger
	now     func() time.Time
}

func NewWatcher(cfg WatcherConfig, client ReceiptClient, pending PendingProvider, confirm Confirmer, alerter alert.Alerter, logger *slog.Logger) *Watcher {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 15 * time.Second
	}
	return &Watcher{
		cfg:     cfg,
		client:  client,
		pending: pending,
		confirm: confirm,
		alerter: alerter,
		logger:  logger.With("component", "receipt_watcher"),
		now:     time.Now,
	}
}

// Run polls until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	w.logger.Info("receipt watcher started", "poll_interval", w.cfg.PollInterval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("receipt watcher stopped")
			return ctx.Err()
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *Watcher) tick(ctx context.Context) {
	start := w.now()
	metrics.WatcherTicks.Inc()
	defer func() {
		metrics.WatcherTickLatency.Observe(time.Since(start).Seconds())
	}()

	apps, err := w.pending.ListOnchainPending(ctx)
	if err != nil {
		w.logger.Error("list onchain pending applications", "error", err)
		return
	}

	for _, app := range apps {
		w.check(ctx, app)
	}
}

func (w *Watcher) check(ctx context.Context, app model.LoanApplication) {
	if app.DecisionTxHash == nil {
		// Should not happen; an application cannot enter ONCHAIN_PENDING
		// without a recorded hash. Void so it does not wedge the queue.
		w.logger.Error("onchain pending application has no tx hash, voiding", "application_id", app.ID)
		w.void(ctx, app, "missing transaction hash")
		return
	}

	status, err := w.client.TransactionStatus(ctx, *app.DecisionTxHash)
	if err != nil {
		metrics.WatcherReceiptChecks.WithLabelValues("error").Inc()
		w.logger.Warn("receipt lookup failed",
			"application_id", app.ID,
			"tx_hash", *app.DecisionTxHash,
			"error", err,
		)
		return
	}

	switch status {
	case ReceiptConfirmed:
		metrics.WatcherReceiptChecks.WithLabelValues("confirmed").Inc()
		if err := w.confirm.ConfirmDecision(ctx, app.ID, true); err != nil {
			w.logger.Error("confirm approved application", "application_id", app.ID, "error", err)
			w.sendAlert(ctx, alert.Alert{
				Type:    alert.TypeOriginationFailed,
				Title:   "Loan origination failed after confirmed transaction",
				Message: err.Error(),
				Fields:  map[string]string{"application_id": app.ID.String(), "tx_hash": *app.DecisionTxHash},
			})
		}

	case ReceiptReverted:
		metrics.WatcherReceiptChecks.WithLabelValues("reverted").Inc()
		w.void(ctx, app, "transaction reverted")

	case ReceiptPending:
		metrics.WatcherReceiptChecks.WithLabelValues("pending").Inc()
		if w.expired(app) {
			w.void(ctx, app, "decision expired before settlement")
		}
	}
}

func (w *Watcher) expired(app model.LoanApplication) bool {
	if w.cfg.DecisionExpiry <= 0 || app.DecisionRecordedAt == nil {
		return false
	}
	return w.now().Sub(*app.DecisionRecordedAt) > w.cfg.DecisionExpiry
}

func (w *Watcher) void(ctx context.Context, app model.LoanApplication, reason string) {
	if err := w.confirm.ConfirmDecision(ctx, app.ID, false); err != nil {
		w.logger.Error("void decision", "application_id", app.ID, "reason", reason, "error", err)
		return
	}
	w.logger.Warn("decision voided", "application_id", app.ID, "reason", reason)
	w.sendAlert(ctx, alert.Alert{
		Type:    alert.TypeDecisionVoided,
		Title:   "Approval decision voided",
		Message: reason,
		Fields:  map[string]string{"application_id": app.ID.String()},
	})
}

func (w *Watcher) sendAlert(ctx context.Context, a alert.Alert) {
	if w.alerter == nil {
		return
	}
	if err := w.alerter.Send(ctx, a); err != nil {
		w.logger.Warn("alert send failed", "type", a.Type, "error", err)
	}
}
