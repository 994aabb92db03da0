package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// FileSender writes messages to a local outbox instead of sending them.
// Each message produces an .html body and a .json metadata file.
type FileSender struct {
	dir string
	now func() time.Time
}

func NewFileSender(dir string) *FileSender {
	return &FileSender{dir: dir, now: time.Now}
}

type outboxMetadata struct {
	Timestamp string   `json:"timestamp"`
	From      string   `json:"from"`
	To        []string `json:"to"`
	Subject   string   `json:"subject"`
	ReplyTo   string   `json:"reply_to,omitempty"`
}

func (s *FileSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create outbox: %v", ErrTransport, err)
	}

	now := s.now()
	base := fmt.Sprintf("%s_%s", now.Format("2006_01_02_150405.000000"), slugify(msg.Subject))

	if err := os.WriteFile(filepath.Join(s.dir, base+".html"), []byte(msg.HTML), 0o644); err != nil {
		return fmt.Errorf("%w: failed to write html: %v", ErrTransport, err)
	}

	meta, err := json.MarshalIndent(outboxMetadata{
		Timestamp: now.Format(time.RFC3339Nano),
		From:      msg.From,
		To:        msg.To,
		Subject:   msg.Subject,
		ReplyTo:   msg.ReplyTo,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, base+".json"), meta, 0o644); err != nil {
		return fmt.Errorf("%w: failed to write metadata: %v", ErrTransport, err)
	}
	return nil
}

var slugRegex = regexp.MustCompile(`[^a-z0-9\-_.]`)

func slugify(s string) string {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
	s = slugRegex.ReplaceAllString(s, "")
	if len(s) > 80 {
		s = s[:80]
	}
	if s == "" {
		s = "email"
	}
	return s
}
