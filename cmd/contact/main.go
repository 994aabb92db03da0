// Command contact submits one message to the portfolio contact endpoint from
// the terminal.
//
//	contact -name "Jane Doe" -email jane@example.com -subject Hi -message "Hello there"
//	echo "Hello there" | contact -name Jane -email jane@example.com -subject Hi -message -
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-contact-backend/config"
	"portfolio-contact-backend/internal/client"
	"portfolio-contact-backend/internal/domain"
	"portfolio-contact-backend/pkg/logger"
)

const (
	exitDelivered = 0
	exitRejected  = 1
	exitFailed    = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg := config.LoadClientConfig()

	fs := flag.NewFlagSet("contact", flag.ContinueOnError)
	fs.SetOutput(stderr)
	endpoint := fs.String("endpoint", cfg.Endpoint, "contact endpoint URL")
	timeout := fs.Duration("timeout", cfg.Timeout, "request timeout")
	var fields domain.ContactRequest
	fs.StringVar(&fields.Name, "name", "", "your name")
	fs.StringVar(&fields.Email, "email", "", "your email address")
	fs.StringVar(&fields.Subject, "subject", "", "message subject")
	fs.StringVar(&fields.Message, "message", "", `message body, or "-" to read it from stdin`)
	if err := fs.Parse(args); err != nil {
		return exitFailed
	}

	if fields.Message == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "read message: %v\n", err)
			return exitFailed
		}
		fields.Message = string(raw)
	}

	c := client.New(*endpoint, client.WithTimeout(*timeout), client.WithLogger(logger.Log))
	form := client.NewForm(c, client.WithDisplayInterval(time.Hour))
	defer form.Close()

	form.OnChange(func(s client.FormState) {
		if s.Phase == client.PhaseSending {
			fmt.Fprintln(stdout, s.SubmitLabel())
		}
		if s.Notice != nil {
			printNotice(stdout, *s.Notice)
		}
	})

	for name, value := range map[string]string{
		"name":    fields.Name,
		"email":   fields.Email,
		"subject": fields.Subject,
		"message": fields.Message,
	} {
		if err := form.SetField(name, value); err != nil {
			fmt.Fprintf(stderr, "set %s: %v\n", name, err)
			return exitFailed
		}
	}

	result, ok := form.Submit(ctx)
	if !ok {
		fmt.Fprintln(stderr, "submission already in progress")
		return exitFailed
	}

	switch result.Outcome {
	case domain.OutcomeDelivered:
		return exitDelivered
	case domain.OutcomeValidationRejected:
		return exitRejected
	default:
		if result.Detail != "" {
			fmt.Fprintf(stderr, "error: %s\n", result.Detail)
		}
		return exitFailed
	}
}

func printNotice(w io.Writer, n client.Notice) {
	prefix := ""
	if n.Destructive {
		prefix = "! "
	}
	fmt.Fprintf(w, "%s%s\n", prefix, n.Title)
	if n.Detail != "" {
		fmt.Fprintf(w, "  %s\n", n.Detail)
	}
}
