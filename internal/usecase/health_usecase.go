package usecase

import (
	"context"
	"strconv"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	emailProvider       string
	confirmationEnabled bool
}

func NewHealthUsecase(emailProvider string, confirmationEnabled bool) HealthUsecase {
	return &healthUsecase{
		emailProvider:       emailProvider,
		confirmationEnabled: confirmationEnabled,
	}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	return map[string]string{
		"status":               "ok",
		"email_provider":       u.emailProvider,
		"confirmation_enabled": strconv.FormatBool(u.confirmationEnabled),
	}
}
