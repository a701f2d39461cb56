package leadcapture

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"winhouse-quote/internal/catalog"
	"winhouse-quote/internal/common/logger"
	leadsync "winhouse-quote/internal/handlers/crm/lead-sync"
	"winhouse-quote/internal/models"
	"winhouse-quote/internal/wizard"
)

var fixedNow = time.Date(2024, 12, 1, 2, 30, 0, 0, time.UTC)

type recorder struct {
	mu            sync.Mutex
	events        []models.WebhookEvent
	notifications []models.LeadNotification
	crm           []*leadsync.Input
	quotes        []models.QuoteRecord
	leads         []models.LeadRecord
	deadlines     []bool
	err           error
}

func (r *recorder) sawDeadline(ctx context.Context) {
	_, ok := ctx.Deadline()
	r.deadlines = append(r.deadlines, ok)
}

func (r *recorder) Relay(ctx context.Context, event models.WebhookEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sawDeadline(ctx)
	r.events = append(r.events, event)
	return r.err
}

func (r *recorder) Notify(ctx context.Context, lead models.LeadNotification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sawDeadline(ctx)
	r.notifications = append(r.notifications, lead)
	return r.err
}

func (r *recorder) Execute(ctx context.Context, input *leadsync.Input) (*leadsync.Output, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sawDeadline(ctx)
	r.crm = append(r.crm, input)
	if r.err != nil {
		return nil, r.err
	}
	return &leadsync.Output{Success: true}, nil
}

func (r *recorder) SaveQuote(ctx context.Context, q models.QuoteRecord) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quotes = append(r.quotes, q)
	return "q-1", r.err
}

func (r *recorder) SaveLead(ctx context.Context, l models.LeadRecord) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leads = append(r.leads, l)
	return "l-1", r.err
}

func sampleSubmission(t *testing.T) Submission {
	t.Helper()
	cat := catalog.Default()

	store := wizard.New(wizard.WithClock(func() time.Time { return fixedNow }))
	store.SetIndustry("real-estate")
	store.SetBudget(models.Budget20To50)
	store.SetStyle("luxury")
	for _, id := range []string{"landing-page", "property-listing"} {
		m, ok := cat.Module(id)
		require.True(t, ok)
		store.AddModule(m)
	}
	store.SetLead(models.LeadFormData{
		Name:        "Nguyễn Văn A",
		Email:       "a@example.com",
		Phone:       "0901234567",
		Role:        models.RoleOwner,
		AcceptTerms: true,
	})
	store.EnsureQuoteNumber(func() string { return "WH2412-K7Z0" })

	return NewSubmission(cat, "sess-1", store.State(), store.Calculation())
}

func TestNewSubmission(t *testing.T) {
	sub := sampleSubmission(t)

	assert.Equal(t, "Bất động sản", sub.IndustryName)
	assert.Equal(t, "20 - 50 triệu", sub.BudgetLabel)
	assert.Equal(t, "Sang trọng", sub.StyleName)
	assert.Equal(t, []string{"Trang chủ & Landing Page", "Danh sách bất động sản"}, sub.ModuleNames)

	n := sub.Notification()
	assert.Equal(t, "Nguyễn Văn A", n.Name)
	assert.Equal(t, int64(17_000_000), n.TotalAmount)
	assert.Equal(t, int64(500_000), n.MonthlyAmount)
	assert.Equal(t, "WH2412-K7Z0", n.QuoteNumber)
}

func TestLeadCapturedEvent(t *testing.T) {
	event := LeadCapturedEvent(sampleSubmission(t), fixedNow)

	assert.Equal(t, models.EventLeadCaptured, event.Event)
	assert.Equal(t, "2024-12-01T02:30:00Z", event.Timestamp)
	assert.Equal(t, "a@example.com", event.Data["leadEmail"])
	assert.Equal(t, "20-50", event.Data["budgetRange"])
	assert.Equal(t, "Trang chủ & Landing Page, Danh sách bất động sản", event.Data["modules"])
	assert.Equal(t, 2, event.Data["moduleCount"])
	assert.Equal(t, int64(17_000_000), event.Data["totalAmount"])
}

func TestDispatcher_LeadCaptured(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(Dependencies{
		Logger:   logger.NewTestLogger(t),
		Relay:    rec,
		Notifier: rec,
		CRM:      rec,
		Records:  rec,
	}, time.Second).WithClock(func() time.Time { return fixedNow })

	d.LeadCaptured(sampleSubmission(t))
	d.Wait()

	require.Len(t, rec.events, 1)
	assert.Equal(t, models.EventLeadCaptured, rec.events[0].Event)
	require.Len(t, rec.notifications, 1)
	assert.Equal(t, "Bất động sản", rec.notifications[0].Industry)
	require.Len(t, rec.crm, 1)
	assert.Equal(t, "WH2412-K7Z0", rec.crm[0].QuoteNumber)
	require.Len(t, rec.leads, 1)
	assert.Equal(t, "sess-1", rec.leads[0].SessionID)
	assert.Equal(t, models.SourceQuoteTool, rec.leads[0].Source)
	assert.Empty(t, rec.quotes)

	for _, hasDeadline := range rec.deadlines {
		assert.True(t, hasDeadline)
	}
}

func TestDispatcher_FailuresAreLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	rec := &recorder{err: errors.New("down")}
	d := NewDispatcher(Dependencies{
		Logger:   logger.NewZapAdapter(zap.New(core)),
		Relay:    rec,
		Notifier: rec,
		CRM:      rec,
		Records:  rec,
	}, time.Second)

	d.LeadCaptured(sampleSubmission(t))
	d.Wait()

	entries := logs.FilterMessage("fan-out call failed").All()
	require.Len(t, entries, 4)

	codes := map[string]interface{}{}
	for _, e := range entries {
		fields := e.ContextMap()
		codes[fields["collaborator"].(string)] = fields["code"]
	}
	assert.Equal(t, map[string]interface{}{
		"relay":        "EXTERNAL_SERVICE_ERROR",
		"email":        "NOTIFICATION_SEND_FAILED",
		"crm":          "EXTERNAL_SERVICE_ERROR",
		"records_lead": "DATABASE_INSERT_FAILED",
	}, codes)
}

func TestDispatcher_QuoteCreated(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(Dependencies{Relay: rec, Records: rec}, time.Second).
		WithClock(func() time.Time { return fixedNow })

	d.QuoteCreated(sampleSubmission(t))
	d.Wait()

	require.Len(t, rec.events, 1)
	assert.Equal(t, models.EventQuoteCreated, rec.events[0].Event)
	assert.Equal(t, "WH2412-K7Z0", rec.events[0].Data["quoteNumber"])

	require.Len(t, rec.quotes, 1)
	q := rec.quotes[0]
	assert.Equal(t, "WH2412-K7Z0", q.QuoteNumber)
	assert.Equal(t, []string{"landing-page", "property-listing"}, q.ModuleIDs)
	assert.Equal(t, fixedNow.AddDate(0, 0, 30), q.ValidUntil)
	assert.Equal(t, models.QuoteSent, q.Status)
}

func TestDispatcher_QuoteDownloaded(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(Dependencies{Relay: rec}, time.Second)

	d.QuoteDownloaded(sampleSubmission(t))
	d.Wait()

	require.Len(t, rec.events, 1)
	assert.Equal(t, models.EventQuoteDownloaded, rec.events[0].Event)
}

func TestDispatcher_NilCollaboratorsAreSkipped(t *testing.T) {
	d := NewDispatcher(Dependencies{}, 0)
	d.LeadCaptured(sampleSubmission(t))
	d.QuoteCreated(sampleSubmission(t))
	d.QuoteDownloaded(sampleSubmission(t))
	d.Wait()
}
