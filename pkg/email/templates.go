package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName          string
	SenderEmail         string
	Subject             string
	Message             string
	OwnerName           string
	ConfirmationEnabled bool
}

// MessageHTML escapes the message and turns newlines into <br> tags
func (d ContactEmailData) MessageHTML() template.HTML {
	escaped := template.HTMLEscapeString(strings.ReplaceAll(d.Message, "\r\n", "\n"))
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

const notificationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Form Message</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h2>New Contact Form Message</h2>
    <p><strong>From:</strong> {{.SenderName}}</p>
    <p><strong>Email:</strong> {{.SenderEmail}}</p>
    <p><strong>Subject:</strong> {{.Subject}}</p>
    <h3>Message:</h3>
    <p>{{.MessageHTML}}</p>
{{- if not .ConfirmationEnabled}}
    <hr>
    <p style="color: #888; font-size: 12px;">Note: Confirmation emails are not currently enabled. The sender has not received a copy of this message.</p>
{{- end}}
</body>
</html>`

const confirmationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Thank you for reaching out!</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h1>Thank you for your message, {{.SenderName}}!</h1>
    <p>I have received your message and will get back to you soon.</p>
    <p><strong>Your message:</strong></p>
    <p>{{.MessageHTML}}</p>
    <br>
    <p>Best regards,{{if .OwnerName}}<br>{{.OwnerName}}{{end}}</p>
</body>
</html>`

var (
	notificationTmpl = template.Must(template.New("notification").Parse(notificationTemplate))
	confirmationTmpl = template.Must(template.New("confirmation").Parse(confirmationTemplate))
)

// NotificationSubject is the owner-facing subject line
func NotificationSubject(subject string) string {
	return "New Contact Form: " + subject
}

// ConfirmationSubject is the subject of the copy sent to the submitter
const ConfirmationSubject = "Thank you for reaching out!"

// RenderNotification renders the email sent to the site owner
func RenderNotification(data ContactEmailData) (string, error) {
	return render(notificationTmpl, data)
}

// RenderConfirmation renders the thank-you email sent to the submitter
func RenderConfirmation(data ContactEmailData) (string, error) {
	return render(confirmationTmpl, data)
}

func render(tmpl *template.Template, data ContactEmailData) (string, error) {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}
