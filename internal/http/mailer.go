package http

import (
	"context"
	"log"
)

// Mailer delivers password-reset tokens. Actual delivery is an external
// collaborator; the default implementation only logs.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

type LogMailer struct{}

func (LogMailer) SendPasswordReset(_ context.Context, email, _ string) error {
	log.Printf("password reset requested for %s (no mail transport configured)", email)
	return nil
}
