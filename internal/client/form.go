package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"portfolio-contact-backend/internal/domain"
)

// DefaultDisplayInterval is how long the delivered confirmation stays up
const DefaultDisplayInterval = 3 * time.Second

var (
	ErrNotEditing   = errors.New("client: form is not accepting input")
	ErrUnknownField = errors.New("client: unknown form field")
)

type Phase int

const (
	PhaseEditing Phase = iota
	PhaseSending
	PhaseDelivered
)

func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseSending:
		return "sending"
	case PhaseDelivered:
		return "delivered"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Notice is a transient, dismissable message for the user
type Notice struct {
	Title       string
	Detail      string
	Destructive bool
}

// FormState is the whole visible state of the contact form
type FormState struct {
	Phase  Phase
	Fields domain.ContactRequest
	Notice *Notice
}

// SubmitLabel is the text on the submit control for the current phase
func (s FormState) SubmitLabel() string {
	if s.Phase == PhaseSending {
		return "Sending..."
	}
	return "Send Message"
}

// CanSubmit reports whether the submit control is enabled
func (s FormState) CanSubmit() bool {
	return s.Phase == PhaseEditing
}

// Submitter is satisfied by *Client
type Submitter interface {
	Submit(ctx context.Context, fields domain.ContactRequest) (domain.DispatchResult, error)
}

type FormOption func(*Form)

func WithDisplayInterval(d time.Duration) FormOption {
	return func(f *Form) {
		if d > 0 {
			f.displayInterval = d
		}
	}
}

// Form owns the form state and drives one submission at a time
type Form struct {
	mu              sync.Mutex
	state           FormState
	submitter       Submitter
	displayInterval time.Duration
	revert          *time.Timer
	onChange        func(FormState)
}

func NewForm(submitter Submitter, opts ...FormOption) *Form {
	f := &Form{
		submitter:       submitter,
		displayInterval: DefaultDisplayInterval,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// OnChange registers fn to receive a copy of the state after every transition
func (f *Form) OnChange(fn func(FormState)) {
	f.mu.Lock()
	f.onChange = fn
	f.mu.Unlock()
}

// State returns a copy of the current state
func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// SetField edits one field by wire name. Input is only accepted while editing.
func (f *Form) SetField(name, value string) error {
	f.mu.Lock()
	if f.state.Phase != PhaseEditing {
		f.mu.Unlock()
		return ErrNotEditing
	}

	switch name {
	case "name":
		f.state.Fields.Name = value
	case "email":
		f.state.Fields.Email = value
	case "subject":
		f.state.Fields.Subject = value
	case "message":
		f.state.Fields.Message = value
	default:
		f.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	f.commitLocked()
	return nil
}

// DismissNotice clears the current notice, if any
func (f *Form) DismissNotice() {
	f.mu.Lock()
	if f.state.Notice == nil {
		f.mu.Unlock()
		return
	}
	f.state.Notice = nil
	f.commitLocked()
}

// Submit sends the current fields. It returns false, without doing anything,
// when the form is not in the editing phase, so repeated clicks coalesce.
func (f *Form) Submit(ctx context.Context) (domain.DispatchResult, bool) {
	f.mu.Lock()
	if f.state.Phase != PhaseEditing {
		f.mu.Unlock()
		return domain.DispatchResult{}, false
	}

	fields := f.state.Fields
	if _, err := domain.ValidateContact(fields); err != nil {
		result := domain.ResultFromError(err)
		f.state.Notice = rejectedNotice(result)
		f.commitLocked()
		return result, true
	}

	f.state.Phase = PhaseSending
	f.state.Notice = nil
	f.commitLocked()

	result, err := f.submitter.Submit(ctx, fields)

	f.mu.Lock()
	switch {
	case errors.Is(err, ErrSubmitInProgress):
		// Another form shares the client; nothing was sent
		f.state.Phase = PhaseEditing
		f.commitLocked()
		return domain.DispatchResult{}, false
	case err != nil:
		result = domain.DispatchResult{Outcome: domain.OutcomeTransportFailed, Detail: err.Error()}
	}

	switch result.Outcome {
	case domain.OutcomeDelivered:
		f.state = FormState{
			Phase: PhaseDelivered,
			Notice: &Notice{
				Title:  "Message sent!",
				Detail: "Thank you for reaching out. I'll get back to you soon!",
			},
		}
		f.stopRevertLocked()
		f.revert = time.AfterFunc(f.displayInterval, f.reopen)
	case domain.OutcomeValidationRejected:
		f.state.Phase = PhaseEditing
		f.state.Notice = rejectedNotice(result)
	default:
		f.state.Phase = PhaseEditing
		f.state.Notice = &Notice{
			Title:       "Failed to send message",
			Detail:      "Please try again or contact me directly via email.",
			Destructive: true,
		}
	}
	f.commitLocked()
	return result, true
}

// Close stops a pending revert to the editing phase
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopRevertLocked()
}

func (f *Form) reopen() {
	f.mu.Lock()
	if f.state.Phase != PhaseDelivered {
		f.mu.Unlock()
		return
	}
	f.state.Phase = PhaseEditing
	f.state.Fields = domain.ContactRequest{}
	f.revert = nil
	f.commitLocked()
}

func (f *Form) stopRevertLocked() {
	if f.revert != nil {
		f.revert.Stop()
		f.revert = nil
	}
}

func (f *Form) snapshotLocked() FormState {
	s := f.state
	if s.Notice != nil {
		n := *s.Notice
		s.Notice = &n
	}
	return s
}

// commitLocked releases the lock and notifies the observer outside of it
func (f *Form) commitLocked() {
	snap := f.snapshotLocked()
	fn := f.onChange
	f.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}

func rejectedNotice(result domain.DispatchResult) *Notice {
	return &Notice{
		Title:       "Please check your input",
		Detail:      result.Detail,
		Destructive: true,
	}
}
