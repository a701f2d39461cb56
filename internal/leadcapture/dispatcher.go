// Package leadcapture fans a captured lead or an issued quote out to the
// spreadsheet relay, the sales inbox, the CRM and the records database.
// Every collaborator is best-effort: failures are logged and never reach
// the visitor.
package leadcapture

import (
	"context"
	stderrors "errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"winhouse-quote/internal/common/errors"
	"winhouse-quote/internal/common/logger"
	"winhouse-quote/internal/common/metrics"
	leadsync "winhouse-quote/internal/handlers/crm/lead-sync"
	"winhouse-quote/internal/models"
	"winhouse-quote/internal/quote"
)

type EventRelay interface {
	Relay(ctx context.Context, event models.WebhookEvent) error
}

type Notifier interface {
	Notify(ctx context.Context, lead models.LeadNotification) error
}

type CRMSync interface {
	Execute(ctx context.Context, input *leadsync.Input) (*leadsync.Output, error)
}

type RecordStore interface {
	SaveQuote(ctx context.Context, q models.QuoteRecord) (string, error)
	SaveLead(ctx context.Context, l models.LeadRecord) (string, error)
}

// Dependencies lists the collaborators. Nil ones are skipped.
type Dependencies struct {
	Logger   logger.Logger
	Relay    EventRelay
	Notifier Notifier
	CRM      CRMSync
	Records  RecordStore
}

type Dispatcher struct {
	deps    Dependencies
	logger  logger.Logger
	timeout time.Duration
	now     func() time.Time
	wg      sync.WaitGroup
}

func NewDispatcher(deps Dependencies, timeout time.Duration) *Dispatcher {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{
		deps:    deps,
		logger:  log.WithFields(map[string]interface{}{"component": "leadcapture"}),
		timeout: timeout,
		now:     time.Now,
	}
}

// WithClock overrides the event timestamp source.
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// LeadCaptured starts the post-lead fan-out and returns immediately.
func (d *Dispatcher) LeadCaptured(sub Submission) {
	lead := sub.lead()
	timestamp := d.now()

	if d.deps.Relay != nil {
		d.spawn("relay", func(ctx context.Context) error {
			return d.deps.Relay.Relay(ctx, LeadCapturedEvent(sub, timestamp))
		})
	}
	if d.deps.Notifier != nil {
		d.spawn("email", func(ctx context.Context) error {
			return d.deps.Notifier.Notify(ctx, sub.Notification())
		})
	}
	if d.deps.CRM != nil {
		d.spawn("crm", func(ctx context.Context) error {
			_, err := d.deps.CRM.Execute(ctx, &leadsync.Input{
				Lead:        lead,
				QuoteNumber: sub.State.QuoteNumber,
				Industry:    sub.IndustryName,
				TotalAmount: sub.Calculation.Total,
				Modules:     sub.ModuleNames,
			})
			return err
		})
	}
	if d.deps.Records != nil {
		d.spawn("records_lead", func(ctx context.Context) error {
			_, err := d.deps.Records.SaveLead(ctx, models.LeadRecord{
				SessionID: sub.SessionID,
				Name:      lead.Name,
				Email:     lead.Email,
				Phone:     lead.Phone,
				Company:   lead.Company,
				Role:      lead.Role,
				Notes:     lead.Notes,
				Source:    models.SourceQuoteTool,
				CreatedAt: timestamp,
			})
			return err
		})
	}
}

// QuoteCreated records an issued quote and relays the event.
func (d *Dispatcher) QuoteCreated(sub Submission) {
	timestamp := d.now()
	metrics.QuotesCreated.WithLabelValues(strconv.Itoa(sub.Calculation.DiscountPercent)).Inc()
	metrics.QuoteTotal.Observe(float64(sub.Calculation.Total))

	if d.deps.Relay != nil {
		d.spawn("relay", func(ctx context.Context) error {
			return d.deps.Relay.Relay(ctx, QuoteEvent(models.EventQuoteCreated, sub, timestamp))
		})
	}
	if d.deps.Records != nil {
		d.spawn("records_quote", func(ctx context.Context) error {
			_, err := d.deps.Records.SaveQuote(ctx, models.QuoteRecord{
				QuoteNumber: sub.State.QuoteNumber,
				SessionID:   sub.SessionID,
				IndustryID:  sub.State.SelectedIndustry,
				BudgetRange: sub.State.SelectedBudget,
				StyleID:     sub.State.SelectedStyle,
				ModuleIDs:   sub.State.ModuleIDs(),
				Calculation: sub.Calculation,
				ValidUntil:  quote.ValidUntil(timestamp),
				Status:      models.QuoteSent,
				CreatedAt:   timestamp,
			})
			return err
		})
	}
}

// QuoteDownloaded relays a document download.
func (d *Dispatcher) QuoteDownloaded(sub Submission) {
	if d.deps.Relay == nil {
		return
	}
	timestamp := d.now()
	d.spawn("relay", func(ctx context.Context) error {
		return d.deps.Relay.Relay(ctx, QuoteEvent(models.EventQuoteDownloaded, sub, timestamp))
	})
}

// Wait blocks until every in-flight fan-out call has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) spawn(name string, call func(ctx context.Context) error) {
	d.wg.Add(1)
	metrics.FanoutActive.Inc()

	go func() {
		defer d.wg.Done()
		defer metrics.FanoutActive.Dec()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("fan-out call panicked", map[string]interface{}{
					"collaborator": name,
					"panic":        r,
				})
			}
		}()

		// Detached from the request context.
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := call(ctx); err != nil {
			stdErr := classify(name, err)
			d.logger.Error("fan-out call failed", map[string]interface{}{
				"collaborator": name,
				"code":         string(stdErr.Code),
				"category":     errors.GetErrorCategory(stdErr.Code),
				"retryable":    stdErr.Retryable,
				"error":        err.Error(),
			})
		}
	}()
}

func classify(collaborator string, err error) *errors.StandardError {
	var stdErr *errors.StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	switch collaborator {
	case "email":
		return errors.NewNotificationSendFailedError(collaborator, err)
	case "records_lead", "records_quote":
		return errors.NewDatabaseInsertFailedError(err)
	default:
		return errors.NewExternalServiceError(collaborator, err)
	}
}

// LeadCapturedEvent is the spreadsheet row for a new lead.
func LeadCapturedEvent(sub Submission, at time.Time) models.WebhookEvent {
	lead := sub.lead()
	return models.WebhookEvent{
		Event:     models.EventLeadCaptured,
		Timestamp: at.UTC().Format(time.RFC3339),
		Data: map[string]interface{}{
			"leadName":      lead.Name,
			"leadEmail":     lead.Email,
			"leadPhone":     lead.Phone,
			"leadCompany":   lead.Company,
			"leadRole":      string(lead.Role),
			"industrySlug":  sub.State.SelectedIndustry,
			"industryName":  sub.IndustryName,
			"budgetRange":   string(sub.State.SelectedBudget),
			"budgetLabel":   sub.BudgetLabel,
			"styleName":     sub.StyleName,
			"moduleCount":   len(sub.ModuleNames),
			"modules":       strings.Join(sub.ModuleNames, ", "),
			"totalAmount":   sub.Calculation.Total,
			"monthlyAmount": sub.Calculation.MonthlyTotal,
			"estimatedDays": sub.Calculation.EstimatedDays,
		},
	}
}

// QuoteEvent describes an issued or downloaded quote.
func QuoteEvent(event models.EventType, sub Submission, at time.Time) models.WebhookEvent {
	lead := sub.lead()
	return models.WebhookEvent{
		Event:     event,
		Timestamp: at.UTC().Format(time.RFC3339),
		Data: map[string]interface{}{
			"quoteNumber":     sub.State.QuoteNumber,
			"leadEmail":       lead.Email,
			"industrySlug":    sub.State.SelectedIndustry,
			"industryName":    sub.IndustryName,
			"moduleCount":     len(sub.ModuleNames),
			"subtotal":        sub.Calculation.Subtotal,
			"discountPercent": sub.Calculation.DiscountPercent,
			"totalAmount":     sub.Calculation.Total,
			"monthlyAmount":   sub.Calculation.MonthlyTotal,
		},
	}
}
