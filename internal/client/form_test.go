package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"portfolio-contact-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSubmitter returns a canned result, optionally blocking until released
type fakeSubmitter struct {
	mu      sync.Mutex
	calls   []domain.ContactRequest
	result  domain.DispatchResult
	err     error
	entered chan struct{}
	release chan struct{}
}

func (s *fakeSubmitter) Submit(ctx context.Context, fields domain.ContactRequest) (domain.DispatchResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, fields)
	s.mu.Unlock()
	if s.entered != nil {
		close(s.entered)
	}
	if s.release != nil {
		<-s.release
	}
	return s.result, s.err
}

func (s *fakeSubmitter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func fill(t *testing.T, f *Form, req domain.ContactRequest) {
	t.Helper()
	require.NoError(t, f.SetField("name", req.Name))
	require.NoError(t, f.SetField("email", req.Email))
	require.NoError(t, f.SetField("subject", req.Subject))
	require.NoError(t, f.SetField("message", req.Message))
}

func TestFormDeliveredClearsAndReverts(t *testing.T) {
	sub := &fakeSubmitter{result: domain.DispatchResult{Outcome: domain.OutcomeDelivered}}
	f := NewForm(sub, WithDisplayInterval(30*time.Millisecond))
	defer f.Close()

	var mu sync.Mutex
	var phases []Phase
	f.OnChange(func(s FormState) {
		mu.Lock()
		phases = append(phases, s.Phase)
		mu.Unlock()
	})

	fill(t, f, jane())
	result, ok := f.Submit(context.Background())
	require.True(t, ok)
	assert.Equal(t, domain.OutcomeDelivered, result.Outcome)

	state := f.State()
	assert.Equal(t, PhaseDelivered, state.Phase)
	assert.Equal(t, domain.ContactRequest{}, state.Fields)
	require.NotNil(t, state.Notice)
	assert.Equal(t, "Message sent!", state.Notice.Title)
	assert.False(t, state.Notice.Destructive)
	assert.False(t, state.CanSubmit())

	assert.ErrorIs(t, f.SetField("name", "x"), ErrNotEditing)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return phases[len(phases)-1] == PhaseEditing
	}, time.Second, 5*time.Millisecond)

	state = f.State()
	assert.Equal(t, PhaseEditing, state.Phase)
	assert.Equal(t, domain.ContactRequest{}, state.Fields)
	assert.True(t, state.CanSubmit())

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, phases, PhaseSending)
}

func TestFormDefaultDisplayInterval(t *testing.T) {
	f := NewForm(&fakeSubmitter{})
	assert.Equal(t, 3*time.Second, f.displayInterval)
}

func TestFormTransportFailurePreservesFields(t *testing.T) {
	tests := []struct {
		name string
		sub  *fakeSubmitter
	}{
		{name: "endpoint 500", sub: &fakeSubmitter{result: domain.DispatchResult{Outcome: domain.OutcomeTransportFailed, Detail: "contact endpoint returned 500"}}},
		{name: "submitter error", sub: &fakeSubmitter{err: errors.New("boom")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewForm(tt.sub)
			defer f.Close()
			fill(t, f, jane())

			result, ok := f.Submit(context.Background())
			require.True(t, ok)
			assert.Equal(t, domain.OutcomeTransportFailed, result.Outcome)

			state := f.State()
			assert.Equal(t, PhaseEditing, state.Phase)
			assert.Equal(t, jane(), state.Fields)
			require.NotNil(t, state.Notice)
			assert.Equal(t, "Failed to send message", state.Notice.Title)
			assert.Equal(t, "Please try again or contact me directly via email.", state.Notice.Detail)
			assert.True(t, state.Notice.Destructive)

			// The user can retry without retyping
			_, ok = f.Submit(context.Background())
			assert.True(t, ok)
			assert.Equal(t, 2, tt.sub.callCount())
		})
	}
}

func TestFormValidationRejectedStaysLocal(t *testing.T) {
	sub := &fakeSubmitter{result: domain.DispatchResult{Outcome: domain.OutcomeDelivered}}
	f := NewForm(sub)
	defer f.Close()

	require.NoError(t, f.SetField("email", "bad"))

	result, ok := f.Submit(context.Background())
	require.True(t, ok)
	assert.Equal(t, domain.OutcomeValidationRejected, result.Outcome)
	assert.Equal(t, "name", result.Field)
	assert.Zero(t, sub.callCount())

	state := f.State()
	assert.Equal(t, PhaseEditing, state.Phase)
	assert.Equal(t, "bad", state.Fields.Email)
	require.NotNil(t, state.Notice)
	assert.Equal(t, "Please check your input", state.Notice.Title)
	assert.Equal(t, "Name is required", state.Notice.Detail)

	f.DismissNotice()
	assert.Nil(t, f.State().Notice)
	f.DismissNotice()
}

func TestFormIgnoresSubmitWhileSending(t *testing.T) {
	sub := &fakeSubmitter{
		result:  domain.DispatchResult{Outcome: domain.OutcomeDelivered},
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	f := NewForm(sub, WithDisplayInterval(time.Hour))
	defer f.Close()
	fill(t, f, jane())

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.Submit(context.Background())
	}()

	<-sub.entered
	state := f.State()
	assert.Equal(t, PhaseSending, state.Phase)
	assert.Equal(t, "Sending...", state.SubmitLabel())
	assert.False(t, state.CanSubmit())

	_, ok := f.Submit(context.Background())
	assert.False(t, ok)
	assert.ErrorIs(t, f.SetField("message", "changed"), ErrNotEditing)

	close(sub.release)
	<-done

	assert.Equal(t, 1, sub.callCount())
	assert.Equal(t, PhaseDelivered, f.State().Phase)

	_, ok = f.Submit(context.Background())
	assert.False(t, ok, "delivered confirmation is showing")
}

func TestFormWithRealClientAgainstFailingEndpoint(t *testing.T) {
	srv, stub := newEndpoint(t, http.StatusInternalServerError, `{"error":"Failed to send message. Please try again later."}`)
	f := NewForm(New(srv.URL))
	defer f.Close()
	fill(t, f, jane())

	result, ok := f.Submit(context.Background())
	require.True(t, ok)
	assert.Equal(t, domain.OutcomeTransportFailed, result.Outcome)
	assert.Equal(t, jane(), f.State().Fields)
	assert.EqualValues(t, 1, stub.calls.Load())
}

func TestFormSharedClientBusy(t *testing.T) {
	f := NewForm(&fakeSubmitter{err: ErrSubmitInProgress})
	fill(t, f, jane())

	_, ok := f.Submit(context.Background())
	assert.False(t, ok)
	assert.Equal(t, PhaseEditing, f.State().Phase)
	assert.Equal(t, jane(), f.State().Fields)
}

func TestFormUnknownField(t *testing.T) {
	f := NewForm(&fakeSubmitter{})
	assert.ErrorIs(t, f.SetField("phone", "123"), ErrUnknownField)
}

func TestFormStateIsACopy(t *testing.T) {
	f := NewForm(&fakeSubmitter{})
	require.NoError(t, f.SetField("email", "bad"))
	f.Submit(context.Background())

	s := f.State()
	s.Notice.Title = "changed"
	assert.Equal(t, "Please check your input", f.State().Notice.Title)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "editing", PhaseEditing.String())
	assert.Equal(t, "sending", PhaseSending.String())
	assert.Equal(t, "delivered", PhaseDelivered.String())
	assert.Equal(t, "phase(7)", Phase(7).String())
	assert.Equal(t, "Send Message", FormState{}.SubmitLabel())
}
