package report

import (
	"fmt"
	"net/smtp"
	"strings"
)

const mimeBoundary = "=_market_brief_alt"

type EmailConfig struct {
	Host           string
	Port           int
	SenderEmail    string
	SenderPassword string
	RecipientEmail string
}

type Sender interface {
	Send(subject, textBody, htmlBody string) error
}

// SMTPSender delivers one report per run over standard mail submission.
// STARTTLS is negotiated by smtp.SendMail on port 587.
type SMTPSender struct {
	cfg EmailConfig
}

func NewSMTPSender(cfg EmailConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(subject, textBody, htmlBody string) error {
	msg := BuildMessage(s.cfg.SenderEmail, s.cfg.RecipientEmail, subject, textBody, htmlBody)

	auth := smtp.PlainAuth("", s.cfg.SenderEmail, s.cfg.SenderPassword, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	if err := smtp.SendMail(addr, auth, s.cfg.SenderEmail, []string{s.cfg.RecipientEmail}, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// BuildMessage assembles a multipart/alternative message with a plain-text
// fallback part followed by the HTML part.
func BuildMessage(from, to, subject, textBody, htmlBody string) []byte {
	var msg strings.Builder

	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n", mimeBoundary)
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s\r\n", mimeBoundary)
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	msg.WriteString(textBody)
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s\r\n", mimeBoundary)
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.WriteString(htmlBody)
	msg.WriteString("\r\n")

	fmt.Fprintf(&msg, "--%s--\r\n", mimeBoundary)

	return []byte(msg.String())
}
