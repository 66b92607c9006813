// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mail provides the outbound email collaborator used by the signup flow.

Delivery is strictly fire-and-forget from the caller's perspective: a
transport failure is logged and swallowed so that account creation never
fails because of a transient mail outage.

Implementations:

  - SMTPSender: plain-auth SMTP delivery for production.
  - LogSender: logs the message instead of sending it (development default).
*/
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Message is a fully rendered outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a single email message.
//
// Send reports delivery success but implementations must never let a
// transport error propagate as a panic; callers treat a false return as a
// loggable, non-fatal condition.
type Sender interface {
	Send(ctx context.Context, msg Message) bool
}

// # SMTP Delivery

// SMTPSender delivers mail through a plain-auth SMTP relay.
type SMTPSender struct {
	addr   string
	from   string
	auth   smtp.Auth
	logger *slog.Logger
}

// NewSMTPSender constructs an [SMTPSender].
//
// # Parameters
//   - host, port: SMTP relay endpoint.
//   - username, password: plain-auth credentials; empty username disables auth.
//   - from: the envelope sender address.
func NewSMTPSender(host string, port int, username, password, from string, logger *slog.Logger) *SMTPSender {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SMTPSender{
		addr:   fmt.Sprintf("%s:%d", host, port),
		from:   from,
		auth:   auth,
		logger: logger,
	}
}

// Send delivers the message over SMTP. It returns false on any transport
// failure after logging it; it never aborts the triggering request.
func (sender *SMTPSender) Send(ctx context.Context, msg Message) bool {

	// Assemble a minimal RFC 5322 payload.
	var payload strings.Builder
	payload.WriteString("From: " + sender.from + "\r\n")
	payload.WriteString("To: " + msg.To + "\r\n")
	payload.WriteString("Subject: " + msg.Subject + "\r\n")
	payload.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n")
	payload.WriteString("\r\n")
	payload.WriteString(msg.Body)

	if err := smtp.SendMail(sender.addr, sender.auth, sender.from, []string{msg.To}, []byte(payload.String())); err != nil {
		sender.logger.ErrorContext(ctx, "mail_delivery_failed",
			slog.String("to", msg.To),
			slog.Any("error", err),
		)
		return false
	}

	return true
}

// # Development Delivery

// LogSender writes the message to the structured log instead of sending it.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender constructs a [LogSender].
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message and always reports success.
func (sender *LogSender) Send(ctx context.Context, msg Message) bool {
	sender.logger.InfoContext(ctx, "mail_logged_instead_of_sent",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body),
	)
	return true
}
