package v1_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio-contact-backend/internal/delivery/http/middleware"
	v1 "portfolio-contact-backend/internal/delivery/http/v1"
	"portfolio-contact-backend/internal/domain"
	"portfolio-contact-backend/internal/usecase"
	"portfolio-contact-backend/pkg/email"
	"portfolio-contact-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockContactUsecase struct {
	mock.Mock
}

func (m *MockContactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	return m.Called(ctx, req).Error(0)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(uc domain.ContactUsecase) *gin.Engine {
	return v1.NewRouter(v1.RouterDeps{
		ContactUC: uc,
		HealthUC:  usecase.NewHealthUsecase("file", false),
	})
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Origin", "https://someone-elses-site.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func assertCORS(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "authorization, x-client-info, apikey, content-type", w.Header().Get("Access-Control-Allow-Headers"))
}

const janeJSON = `{"name":"Jane Doe","email":"jane@example.com","subject":"Hi","message":"Hello there"}`

func TestPreflight(t *testing.T) {
	uc := new(MockContactUsecase)
	r := newRouter(uc)

	for _, path := range []string{"/v1/contact", "/v1/send-contact-email", "/anything"} {
		w := do(r, http.MethodOptions, path, "")
		assert.Equal(t, http.StatusNoContent, w.Code, path)
		assert.Empty(t, w.Body.String(), path)
		assertCORS(t, w)
	}
	uc.AssertNotCalled(t, "SendContactMessage", mock.Anything, mock.Anything)
}

func TestSubmitContactSuccess(t *testing.T) {
	uc := new(MockContactUsecase)
	r := newRouter(uc)

	var got *domain.ContactRequest
	uc.On("SendContactMessage", mock.Anything, mock.AnythingOfType("*domain.ContactRequest")).Return(nil).Run(func(args mock.Arguments) {
		got = args.Get(1).(*domain.ContactRequest)
	})

	for _, path := range []string{"/v1/contact", "/v1/send-contact-email"} {
		w := do(r, http.MethodPost, path, janeJSON)

		require.Equal(t, http.StatusOK, w.Code, path)
		assertCORS(t, w)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Email sent successfully", body["message"])
		assert.NotEmpty(t, body["request_id"])

		assert.Equal(t, &domain.ContactRequest{Name: "Jane Doe", Email: "jane@example.com", Subject: "Hi", Message: "Hello there"}, got)
	}
	uc.AssertNumberOfCalls(t, "SendContactMessage", 2)
}

func TestSubmitContactFailures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "provider rejected",
			err:     fmt.Errorf("failed to send contact email: %w", fmt.Errorf("%w: resend API error (401): API key is invalid", email.ErrProviderRejected)),
			status:  http.StatusInternalServerError,
			message: "Failed to send message. Please try again later.",
		},
		{
			name:    "provider unreachable",
			err:     errors.Join(email.ErrTransport, errors.New("dial tcp: connection refused")),
			status:  http.StatusInternalServerError,
			message: "Failed to send message. Please try again later.",
		},
		{
			name:    "validation at the boundary",
			err:     &validation.FieldError{Field: "email", Tag: "email", Message: "Please enter a valid email"},
			status:  http.StatusBadRequest,
			message: "Please enter a valid email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockContactUsecase)
			uc.On("SendContactMessage", mock.Anything, mock.Anything).Return(tt.err)

			w := do(newRouter(uc), http.MethodPost, "/v1/contact", janeJSON)

			assert.Equal(t, tt.status, w.Code)
			assertCORS(t, w)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body["error"])
			assert.NotContains(t, w.Body.String(), "API key is invalid")
			assert.NotContains(t, w.Body.String(), "connection refused")
			_, hasSuccess := body["success"]
			assert.False(t, hasSuccess)
		})
	}
}

func TestSubmitContactMalformedBody(t *testing.T) {
	uc := new(MockContactUsecase)
	w := do(newRouter(uc), http.MethodPost, "/v1/contact", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assertCORS(t, w)
	assert.JSONEq(t, `{"error":"Invalid request body","request_id":"`+w.Header().Get(middleware.RequestIDHeader)+`"}`, w.Body.String())
	uc.AssertNotCalled(t, "SendContactMessage", mock.Anything, mock.Anything)
}

func TestSubmitContactWithRealUsecase(t *testing.T) {
	sender := &recordingSender{}
	uc := usecase.NewContactUsecase(sender, usecase.ContactConfig{
		OwnerEmail: "owner@example.com",
		FromEmail:  "onboarding@resend.dev",
		FromName:   "Portfolio Contact",
	}, nil)
	r := newRouter(uc)

	t.Run("valid submission reaches the sender", func(t *testing.T) {
		w := do(r, http.MethodPost, "/v1/contact", janeJSON)
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, sender.sent, 1)
		assert.Equal(t, "New Contact Form: Hi", sender.sent[0].Subject)
	})

	t.Run("missing fields are rejected before any send", func(t *testing.T) {
		sender.sent = nil
		w := do(r, http.MethodPost, "/v1/contact", `{"email":"jane@example.com"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Name is required")
		assert.Empty(t, sender.sent)
	})
}

func TestHealthAndNotFound(t *testing.T) {
	r := newRouter(new(MockContactUsecase))

	w := do(r, http.MethodGet, "/v1/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email_provider":"file"`)
	assertCORS(t, w)

	w = do(r, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assertCORS(t, w)
	assert.Contains(t, w.Body.String(), `"error":"Not found"`)
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := newRouter(new(MockContactUsecase))

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "not valid!")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not valid!", w.Header().Get(middleware.RequestIDHeader))
	assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)
}

type recordingSender struct {
	sent []email.Message
}

func (s *recordingSender) Send(ctx context.Context, msg email.Message) error {
	s.sent = append(s.sent, msg)
	return nil
}
