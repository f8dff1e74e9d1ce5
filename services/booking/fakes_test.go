package booking

import (
	"context"
	"sync"
	"time"

	bookedRepo "asst/database/repository/booked"
	catalogRepo "asst/database/repository/catalog"
	"asst/models"
	"asst/services/events"
	"asst/services/payment"
)

// memCatalog is an in-memory CatalogRepository.
type memCatalog struct {
	services map[string]*models.BookableService
	inputs   map[string][]models.CustomInput
}

func newMemCatalog(svcs ...*models.BookableService) *memCatalog {
	c := &memCatalog{services: map[string]*models.BookableService{}, inputs: map[string][]models.CustomInput{}}
	for _, s := range svcs {
		c.services[s.ID] = s
	}
	return c
}

func (c *memCatalog) CreateService(_ context.Context, svc *models.BookableService) error {
	c.services[svc.ID] = svc
	return nil
}

func (c *memCatalog) UpdateService(_ context.Context, svc *models.BookableService) error {
	c.services[svc.ID] = svc
	return nil
}

func (c *memCatalog) DeleteService(_ context.Context, id string) error {
	delete(c.services, id)
	delete(c.inputs, id)
	return nil
}

func (c *memCatalog) GetServiceByID(_ context.Context, id string) (*models.BookableService, error) {
	if s, ok := c.services[id]; ok {
		return s, nil
	}
	return nil, catalogRepo.ErrNotFound
}

func (c *memCatalog) GetServiceBySlug(_ context.Context, slug string) (*models.BookableService, error) {
	for _, s := range c.services {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, catalogRepo.ErrNotFound
}

func (c *memCatalog) SlugExists(ctx context.Context, slug string) (bool, error) {
	_, err := c.GetServiceBySlug(ctx, slug)
	return err == nil, nil
}

func (c *memCatalog) NameExists(_ context.Context, name, excludeID string) (bool, error) {
	for _, s := range c.services {
		if s.Name == name && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (c *memCatalog) ListServices(_ context.Context, _, _ int64) ([]models.BookableService, int64, error) {
	out := []models.BookableService{}
	for _, s := range c.services {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (c *memCatalog) ListInputs(_ context.Context, bookableID string) ([]models.CustomInput, error) {
	return c.inputs[bookableID], nil
}

func (c *memCatalog) CreateInput(_ context.Context, in *models.CustomInput) error {
	in.Position = len(c.inputs[in.BookableID]) + 1
	c.inputs[in.BookableID] = append(c.inputs[in.BookableID], *in)
	return nil
}

func (c *memCatalog) DeleteInput(_ context.Context, bookableID, inputID string) error {
	return nil
}

// memBooked is an in-memory BookedRepository with the same one-way payment
// transition as the Mongo implementation.
type memBooked struct {
	mu       sync.Mutex
	bookings []*models.BookedService
	createFn func(*models.BookedService) error
}

func (b *memBooked) Create(_ context.Context, booking *models.BookedService) error {
	if b.createFn != nil {
		if err := b.createFn(booking); err != nil {
			return err
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	booking.CreatedAt = time.Now()
	b.bookings = append(b.bookings, booking)
	return nil
}

func (b *memBooked) find(match func(*models.BookedService) bool) (*models.BookedService, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, bk := range b.bookings {
		if match(bk) {
			cp := *bk
			return &cp, nil
		}
	}
	return nil, bookedRepo.ErrNotFound
}

func (b *memBooked) GetByID(_ context.Context, id string) (*models.BookedService, error) {
	return b.find(func(bk *models.BookedService) bool { return bk.ID == id })
}

func (b *memBooked) GetBySessionID(_ context.Context, sessionID string) (*models.BookedService, error) {
	return b.find(func(bk *models.BookedService) bool { return bk.StripeSessionID == sessionID })
}

func (b *memBooked) MarkPaid(_ context.Context, sessionID, paymentIntentID string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, bk := range b.bookings {
		if bk.StripeSessionID == sessionID && bk.PaymentStatus == models.PaymentPending {
			bk.PaymentStatus = models.PaymentCompleted
			bk.PaymentIntentID = paymentIntentID
			return true, nil
		}
	}
	return false, nil
}

func (b *memBooked) SetAssignedWorker(context.Context, string, string) error { return nil }
func (b *memBooked) MarkConfirmed(context.Context, string) error              { return nil }

func (b *memBooked) ListByUser(context.Context, string) ([]models.BookedService, error) {
	return nil, nil
}

func (b *memBooked) ListByWorker(context.Context, string) ([]models.BookedService, error) {
	return nil, nil
}

func (b *memBooked) ListAll(context.Context, int64, int64) ([]models.BookedService, int64, error) {
	return nil, 0, nil
}

func (b *memBooked) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.bookings)
}

type mockGateway struct {
	createFunc  func(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error)
	captureFunc func(ctx context.Context, paymentIntentID string) error
	verifyFunc  func(payload []byte, signature string) (*payment.Event, error)
	requests    []payment.CheckoutRequest
}

func (g *mockGateway) CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	g.requests = append(g.requests, req)
	if g.createFunc != nil {
		return g.createFunc(ctx, req)
	}
	return &payment.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.test/cs_test_1"}, nil
}

func (g *mockGateway) CapturePayment(ctx context.Context, paymentIntentID string) error {
	if g.captureFunc != nil {
		return g.captureFunc(ctx, paymentIntentID)
	}
	return nil
}

func (g *mockGateway) VerifyEvent(payload []byte, signature string) (*payment.Event, error) {
	if g.verifyFunc != nil {
		return g.verifyFunc(payload, signature)
	}
	return &payment.Event{}, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	paid []string
	err  error
}

func (n *recordingNotifier) NotifyBookingPaid(_ context.Context, b *models.BookedService) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paid = append(n.paid, b.ID)
	return n.err
}

func (n *recordingNotifier) calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.paid)
}

type recordingPublisher struct {
	mu    sync.Mutex
	types []string
}

func (p *recordingPublisher) Publish(_ context.Context, evt events.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.types = append(p.types, evt.Type)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type memLedger struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (l *memLedger) MarkProcessed(_ context.Context, id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.seen == nil {
		l.seen = map[string]bool{}
	}
	if l.seen[id] {
		return false, nil
	}
	l.seen[id] = true
	return true, nil
}

func (l *memLedger) Forget(_ context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.seen, id)
	return nil
}

// weekdayService is bookable Monday to Friday from 09:00 to 17:00 at 50.00 per hour.
func weekdayService() *models.BookableService {
	return &models.BookableService{
		ID:            "svc-1",
		Name:          "Deep Clean",
		Slug:          "deep-clean",
		Description:   "Full apartment clean",
		PriceCents:    5000,
		Unit:          "hour",
		DaysAvailable: []string{"mon", "tue", "wed", "thu", "fri"},
		HourStart:     models.NewTimeOfDay(9, 0),
		HourEnd:       models.NewTimeOfDay(17, 0),
	}
}

func completeUser() *models.User {
	return &models.User{
		ID:    "user-1",
		Email: "jane@example.com",
		Profile: models.UserProfile{
			Name:        "Jane Doe",
			PhoneNumber: "+15551234567",
		},
	}
}

type fixture struct {
	svc       *DefaultBookingService
	catalog   *memCatalog
	booked    *memBooked
	gateway   *mockGateway
	notifier  *recordingNotifier
	publisher *recordingPublisher
}

// monday4March2024 is the clock used by booking tests; Wednesday the 6th is bookable.
var monday4March2024 = time.Date(2024, time.March, 4, 8, 0, 0, 0, time.Local)

func newFixture() *fixture {
	f := &fixture{
		catalog:   newMemCatalog(weekdayService()),
		booked:    &memBooked{},
		gateway:   &mockGateway{},
		notifier:  &recordingNotifier{},
		publisher: &recordingPublisher{},
	}
	f.svc = &DefaultBookingService{
		Catalog:  f.catalog,
		Booked:   f.booked,
		Gateway:  f.gateway,
		Notifier: f.notifier,
		Events:   f.publisher,
		Ledger:   &memLedger{},
		RootURL:  "https://asst.test/",
		Currency: "usd",
		Now:      func() time.Time { return monday4March2024 },
	}
	return f
}
