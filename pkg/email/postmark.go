package email

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mrz1836/postmark"
)

// PostmarkSender delivers through Postmark's transactional API
type PostmarkSender struct {
	client *postmark.Client
}

// NewPostmarkSender creates a Postmark-backed sender
func NewPostmarkSender(serverToken, accountToken string, timeout time.Duration) *PostmarkSender {
	client := postmark.NewClient(serverToken, accountToken)
	client.HTTPClient = &http.Client{Timeout: timeout}
	return &PostmarkSender{client: client}
}

// Send implements EmailSender. Postmark takes a comma separated recipient list.
func (s *PostmarkSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:     msg.From,
		To:       strings.Join(msg.To, ","),
		Subject:  msg.Subject,
		HTMLBody: msg.HTML,
		ReplyTo:  msg.ReplyTo,
	})
	if err != nil {
		if isTransportError(err) {
			return errors.Join(ErrTransport, err)
		}
		return errors.Join(ErrProviderRejected, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrProviderRejected,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}

func isTransportError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
