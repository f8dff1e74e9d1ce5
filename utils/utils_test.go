package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"asst/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAsAppError(t *testing.T) {
	nf := NotFound("Service")
	wrapped := fmt.Errorf("catalog: %w", nf)
	assert.Same(t, nf, AsAppError(wrapped))

	internal := AsAppError(errors.New("boom"))
	assert.Equal(t, CodeInternal, internal.Code)
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus)
	assert.EqualError(t, errors.Unwrap(internal), "boom")
}

func TestRespondErrorWritesFieldsAndExtra(t *testing.T) {
	fields := FieldErrors{}
	fields.Add("selected_time", "The selected time must be between 09:00 AM and 05:00 PM")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/services/x/book", nil)

	RespondError(c, Validation(fields).WithExtra("redirect", "/profile"))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, CodeValidation, body.Code)
	assert.Equal(t, fields, body.Fields)
	assert.Equal(t, "/profile", body.Extra["redirect"])
	assert.True(t, c.IsAborted())
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/panic", func(*gin.Context) { panic("unexpected") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), CodeInternal)
}

func TestFieldErrorsErrorIsSorted(t *testing.T) {
	f := FieldErrors{}
	f.Add("quantity", "This field is required.")
	f.Add("address", "This field is required.")
	f.Add("address", "Too long.")

	assert.Equal(t, "[address: This field is required.; Too long., quantity: This field is required.]", f.Error())

	other := FieldErrors{"quantity": {"Ensure this value is at least 1."}}
	f.Merge(other)
	assert.Len(t, f["quantity"], 2)
}

type profileForm struct {
	Name  string   `json:"name" validate:"required"`
	Phone string   `json:"phoneNumber" validate:"phone"`
	Email string   `json:"email" validate:"omitempty,email"`
	Days  []string `json:"available_days" validate:"dive,weekday"`
}

func TestValidatorCustomTags(t *testing.T) {
	ok := profileForm{Name: "Ada", Phone: "+254712345678", Days: []string{"mon", "SAT"}}
	require.NoError(t, Validator().Struct(ok))

	// An empty phone number is allowed.
	require.NoError(t, Validator().Struct(profileForm{Name: "Ada"}))

	bad := profileForm{Phone: "12-34", Email: "nope", Days: []string{"funday"}}
	fields := ToFieldErrors(Validator().Struct(bad))

	assert.Equal(t, []string{"This field is required."}, fields["name"])
	assert.Contains(t, fields["phoneNumber"][0], "format: '+999999999'")
	assert.Equal(t, []string{"Enter a valid email address."}, fields["email"])
	assert.Contains(t, fields["available_days[0]"][0], "is not a valid day")
}

func TestToFieldErrorsNonValidatorError(t *testing.T) {
	fields := ToFieldErrors(errors.New("broken"))
	assert.Equal(t, []string{"broken"}, fields["__all__"])
}

func TestIsDayCode(t *testing.T) {
	assert.True(t, IsDayCode("sun"))
	assert.False(t, IsDayCode("Sun"))
	assert.False(t, IsDayCode(""))
}

func TestTokenRoundTrip(t *testing.T) {
	prev := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = "test-secret"
	t.Cleanup(func() { config.AppConfig.JWTSecret = prev })

	token, err := GenerateToken("user-1", "ada@example.com", time.Hour)
	require.NoError(t, err)

	id, err := ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)

	assert.Equal(t, HashToken(token), HashToken(token))
	assert.Len(t, HashToken(token), 64)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	prev := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = "test-secret"
	t.Cleanup(func() { config.AppConfig.JWTSecret = prev })

	token, err := GenerateToken("user-1", "ada@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = ExtractIDFromToken(token)
	assert.Error(t, err)
}

func TestGenerateTokenWithoutSecret(t *testing.T) {
	prev := config.AppConfig.JWTSecret
	config.AppConfig.JWTSecret = ""
	t.Cleanup(func() { config.AppConfig.JWTSecret = prev })

	_, err := GenerateToken("user-1", "ada@example.com", time.Hour)
	assert.Error(t, err)
}
