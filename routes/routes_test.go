package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"asst/handlers"
	"asst/models"
	"asst/services/booking"
	"asst/services/catalog"
	"asst/services/staff"
	"asst/services/user"
	"asst/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	customer = &models.User{ID: "u1", Profile: models.UserProfile{Name: "Ann", PhoneNumber: "+15551234567"}}
	manager  = &models.User{ID: "admin", Permissions: []string{models.PermissionManage}}
)

type tokens map[string]*models.User

func (t tokens) Authenticate(_ context.Context, token string) (*models.User, error) {
	if u, ok := t[token]; ok {
		return u, nil
	}
	return nil, utils.Unauthorized("Invalid or expired token")
}

type stubBooking struct {
	booking.BookingService
	lastRequest booking.BookingRequest
	payload     []byte
	signature   string
	webhookErr  error
}

func (s *stubBooking) GetServiceForm(_ context.Context, slug string) (*models.BookableService, *booking.Form, error) {
	if slug != "deep-clean" {
		return nil, nil, utils.BadRequest("Bad request")
	}
	svc := &models.BookableService{ID: "s1", Slug: slug, Name: "Deep Clean", PriceCents: 5000, Unit: "hour"}
	return svc, booking.BuildForm(svc, nil), nil
}

func (s *stubBooking) Book(_ context.Context, req booking.BookingRequest) (*booking.BookingResult, error) {
	s.lastRequest = req
	if req.Values["selected_time"] == "8:00 PM" {
		return nil, utils.Validation(utils.FieldErrors{"selected_time": {"The selected time must be between 09:00 AM and 05:00 PM"}})
	}
	return &booking.BookingResult{
		Booking:     &models.BookedService{ID: "b1"},
		RedirectURL: "/payments/booking-overview?session_id=cs_1",
		CheckoutURL: "https://checkout.stripe.com/c/cs_1",
		SessionID:   "cs_1",
	}, nil
}

func (s *stubBooking) HandleWebhook(_ context.Context, payload []byte, signature string) error {
	s.payload = payload
	s.signature = signature
	return s.webhookErr
}

func (s *stubBooking) GetOverview(_ context.Context, actor *models.User, sessionID string) (*models.BookedService, error) {
	if sessionID != "cs_1" {
		return nil, utils.BadRequest("Bad request")
	}
	return &models.BookedService{ID: "b1", UserID: actor.ID, StripeSessionID: sessionID, TotalPriceCents: 10000}, nil
}

type stubCatalog struct {
	catalog.CatalogService
	created *catalog.ServiceInput
}

func (s *stubCatalog) ListServices(_ context.Context, page int) (*catalog.ServicePage, error) {
	return &catalog.ServicePage{Page: page, TotalPages: 1, Services: []models.BookableService{}}, nil
}

func (s *stubCatalog) CreateService(_ context.Context, actor *models.User, input catalog.ServiceInput) (*models.BookableService, error) {
	if !actor.Can(models.PermissionManage) {
		return nil, utils.Forbidden("You do not have permission to manage bookings")
	}
	s.created = &input
	return &models.BookableService{ID: "s1", Name: input.Name, Slug: "deep-clean"}, nil
}

type stubStaff struct {
	staff.StaffService
	assigned [2]string
}

func (s *stubStaff) AssignWorker(_ context.Context, _ *models.User, bookingID, workerID string) (*models.BookedService, error) {
	s.assigned = [2]string{bookingID, workerID}
	return &models.BookedService{ID: bookingID, AssignedWorkerID: workerID}, nil
}

func (s *stubStaff) WorkerDashboard(_ context.Context, worker *models.User) ([]models.BookedService, error) {
	if !worker.IsWorker() {
		return nil, utils.Forbidden("Only workers can access this page")
	}
	return []models.BookedService{}, nil
}

type stubUsers struct {
	user.UserService
}

func (stubUsers) GetProfile(_ context.Context, actor *models.User) (*user.ProfileView, error) {
	return &user.ProfileView{User: actor, CompletedProfile: actor.HasCompletedProfile()}, nil
}

type testServer struct {
	router  *gin.Engine
	booking *stubBooking
	catalog *stubCatalog
	staff   *stubStaff
}

func newTestServer() *testServer {
	return newLimitedTestServer(1000)
}

func newLimitedTestServer(maxRequestsPerMin int) *testServer {
	ts := &testServer{booking: &stubBooking{}, catalog: &stubCatalog{}, staff: &stubStaff{}}
	hb := &handlers.HandlerBundle{
		Auth:     tokens{"customer": customer, "manager": manager},
		Services: handlers.NewServiceHandler(ts.catalog, ts.booking),
		Booking:  handlers.NewBookingHandler(ts.booking, "pk_test"),
		Users:    handlers.NewUserHandler(stubUsers{}),
		Admin:    handlers.NewAdminHandler(ts.catalog, ts.staff),
		Workers:  handlers.NewWorkerHandler(ts.staff),
	}
	ts.router = gin.New()
	RegisterRoutes(ts.router, hb, nil, maxRequestsPerMin)
	return ts
}

func (ts *testServer) do(method, path, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	ts := newTestServer()
	w := ts.do(http.MethodGet, "/health", "", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPublicServiceRoutes(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodGet, "/services?page=2", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["page"])

	w = ts.do(http.MethodGet, "/services/deep-clean", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "50.00", body["price"])
	fields := body["form"].(map[string]any)["fields"].([]any)
	assert.Len(t, fields, 4)

	w = ts.do(http.MethodGet, "/services/unknown", "", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookRequiresAuthentication(t *testing.T) {
	ts := newTestServer()
	w := ts.do(http.MethodPost, "/services/deep-clean/book", "", bytes.NewBufferString(`{}`), "application/json")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookWithJSONBody(t *testing.T) {
	ts := newTestServer()
	body := bytes.NewBufferString(`{"address":"1 Main St","selected_date":"Mar 6, 2024","selected_time":"10:00 AM","quantity":2,"custom_input_0":true}`)

	w := ts.do(http.MethodPost, "/services/deep-clean/book", "customer", body, "application/json")
	require.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, "/payments/booking-overview?session_id=cs_1", w.Header().Get("Location"))
	req := ts.booking.lastRequest
	assert.Equal(t, customer, req.User)
	assert.Equal(t, "deep-clean", req.Slug)
	assert.Equal(t, "2", req.Values["quantity"])
	assert.Equal(t, "true", req.Values["custom_input_0"])
}

func TestBookWithFormBodyReportsFieldErrors(t *testing.T) {
	ts := newTestServer()
	form := url.Values{"address": {"1 Main St"}, "selected_time": {"8:00 PM"}}

	w := ts.do(http.MethodPost, "/services/deep-clean/book", "customer",
		bytes.NewBufferString(form.Encode()), "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	fields := decode(t, w)["fields"].(map[string]any)
	assert.Contains(t, fields, "selected_time")
}

func TestWebhookPassesRawBodyAndSignature(t *testing.T) {
	ts := newTestServer()
	payload := `{"id":"evt_1","type":"checkout.session.completed"}`
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", "t=1,v1=abc")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, payload, string(ts.booking.payload))
	assert.Equal(t, "t=1,v1=abc", ts.booking.signature)

	ts.booking.webhookErr = utils.Integration("Invalid webhook payload or signature", nil)
	w = ts.do(http.MethodPost, "/payments/webhook", "", bytes.NewBufferString(payload), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookIsNotRateLimited(t *testing.T) {
	ts := newLimitedTestServer(4)
	payload := `{"id":"evt_1","type":"checkout.session.completed"}`

	for i := 0; i < 5; i++ {
		w := ts.do(http.MethodPost, WebhookPath, "", bytes.NewBufferString(payload), "application/json")
		require.Equal(t, http.StatusOK, w.Code, "delivery %d", i+1)
	}

	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/services", "", nil, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, ts.do(http.MethodGet, "/services", "", nil, "").Code)
}

func TestWebhookRejectsOversizedBody(t *testing.T) {
	ts := newTestServer()
	payload := bytes.NewBufferString(`{"id":"evt_1","pad":"` + strings.Repeat("x", handlers.MaxWebhookBodyBytes) + `"}`)

	w := ts.do(http.MethodPost, WebhookPath, "", payload, "application/json")
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Nil(t, ts.booking.payload)
}

func TestBookingOverview(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodGet, "/payments/booking-overview?session_id=cs_1", "customer", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "100.00", body["totalPrice"])
	assert.Equal(t, "pk_test", body["stripePublishableKey"])

	w = ts.do(http.MethodGet, "/payments/booking-overview?session_id=nope", "customer", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestManageCreateService(t *testing.T) {
	ts := newTestServer()
	body := bytes.NewBufferString(`{"name":"Deep Clean","price":"50.00","available_days":["mon","tue"]}`)

	w := ts.do(http.MethodPost, "/manage/services", "manager", body, "application/json")
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, ts.catalog.created)
	assert.Equal(t, []string{"mon", "tue"}, ts.catalog.created.DaysAvailable)
	assert.Nil(t, ts.catalog.created.Thumbnail)

	w = ts.do(http.MethodPost, "/manage/services", "customer", bytes.NewBufferString(`{"name":"x"}`), "application/json")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(http.MethodGet, "/manage/services", "customer", nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestManageAssignWorker(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodPut, "/manage/booked-services/b1/assign-worker", "manager",
		bytes.NewBufferString(`{"workerId":"w1"}`), "application/json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, [2]string{"b1", "w1"}, ts.staff.assigned)
}

func TestWorkerDashboardForbidsCustomers(t *testing.T) {
	ts := newTestServer()
	w := ts.do(http.MethodGet, "/worker-dashboard", "customer", nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestProfile(t *testing.T) {
	ts := newTestServer()
	w := ts.do(http.MethodGet, "/profile", "customer", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["completedProfile"])
}
