package domain

import (
	"errors"
	"fmt"

	"portfolio-contact-backend/pkg/email"
	"portfolio-contact-backend/pkg/validation"
)

// DispatchOutcome classifies one submission attempt
type DispatchOutcome int

const (
	OutcomeDelivered DispatchOutcome = iota
	OutcomeValidationRejected
	OutcomeTransportFailed
	OutcomeProviderRejected
)

func (o DispatchOutcome) String() string {
	switch o {
	case OutcomeDelivered:
		return "delivered"
	case OutcomeValidationRejected:
		return "validation_rejected"
	case OutcomeTransportFailed:
		return "transport_failed"
	case OutcomeProviderRejected:
		return "provider_rejected"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

func (o DispatchOutcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// DispatchResult is produced once per attempt and consumed by the form
type DispatchResult struct {
	Outcome DispatchOutcome `json:"outcome"`
	Detail  string          `json:"detail,omitempty"`
	// Field is set for validation rejections only
	Field string `json:"field,omitempty"`
}

// OK reports whether the submission was delivered
func (r DispatchResult) OK() bool {
	return r.Outcome == OutcomeDelivered
}

// ResultFromError maps a pipeline error onto the outcome taxonomy
func ResultFromError(err error) DispatchResult {
	if err == nil {
		return DispatchResult{Outcome: OutcomeDelivered}
	}

	var fe *validation.FieldError
	switch {
	case errors.As(err, &fe):
		return DispatchResult{Outcome: OutcomeValidationRejected, Detail: fe.Message, Field: fe.Field}
	case errors.Is(err, email.ErrProviderRejected), errors.Is(err, email.ErrInvalidMessage):
		return DispatchResult{Outcome: OutcomeProviderRejected, Detail: err.Error()}
	default:
		return DispatchResult{Outcome: OutcomeTransportFailed, Detail: err.Error()}
	}
}
