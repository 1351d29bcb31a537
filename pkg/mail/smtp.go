package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Message adalah satu email outbound. AuthEmail/AuthPassword adalah
// kredensial mailbox asli; HeaderFrom boleh alias.
type Message struct {
	HeaderFrom   string
	AuthEmail    string
	AuthPassword string
	To           string
	CC           *string
	BCC          *string
	Subject      string
	Body         string
	HTML         bool
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type smtpSender struct {
	host    string
	port    string
	timeout time.Duration
	log     *zap.Logger
}

func NewSMTPSender(host, port string, timeout time.Duration, log *zap.Logger) Sender {
	return &smtpSender{
		host:    host,
		port:    port,
		timeout: timeout,
		log:     log.With(zap.String("component", "smtp")),
	}
}

func (s *smtpSender) Send(ctx context.Context, msg Message) error {
	addr := net.JoinHostPort(s.host, s.port)

	dialer := net.Dialer{Timeout: s.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		s.log.Error("Failed to dial SMTP server", zap.Error(err), zap.String("addr", addr))
		return fmt.Errorf("dial SMTP server %s: %w", addr, err)
	}

	// Deadline menyeluruh untuk sesi, bukan cuma dial
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	} else {
		conn.SetDeadline(time.Now().Add(s.timeout))
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("SMTP handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsConfig := &tls.Config{ServerName: s.host}
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("STARTTLS: %w", err)
		}
	}

	auth := smtp.PlainAuth("", msg.AuthEmail, msg.AuthPassword, s.host)
	if err := client.Auth(auth); err != nil {
		s.log.Error("SMTP authentication failed",
			zap.Error(err),
			zap.String("auth_email", msg.AuthEmail),
		)
		return fmt.Errorf("SMTP auth for %s: %w", msg.AuthEmail, err)
	}

	if err := client.Mail(msg.AuthEmail); err != nil {
		return fmt.Errorf("MAIL FROM: %w", err)
	}

	for _, rcpt := range recipients(msg) {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("RCPT TO %s: %w", rcpt, err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA: %w", err)
	}

	if _, err := writer.Write(buildMIME(msg)); err != nil {
		writer.Close()
		return fmt.Errorf("write message body: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("finish message body: %w", err)
	}

	if err := client.Quit(); err != nil {
		// Pesan sudah diterima server di titik ini; cukup dicatat
		s.log.Warn("SMTP QUIT failed", zap.Error(err))
	}

	return nil
}

// recipients mengumpulkan semua alamat RCPT. BCC ikut di sini tapi tidak
// pernah muncul di header.
func recipients(msg Message) []string {
	rcpts := splitAddresses(msg.To)
	if msg.CC != nil {
		rcpts = append(rcpts, splitAddresses(*msg.CC)...)
	}
	if msg.BCC != nil {
		rcpts = append(rcpts, splitAddresses(*msg.BCC)...)
	}
	return rcpts
}

func splitAddresses(raw string) []string {
	var addrs []string
	for _, part := range strings.Split(raw, ",") {
		addr := strings.TrimSpace(part)
		if addr != "" {
			addrs = append(addrs, addr)
		}
	}
	return addrs
}

func buildMIME(msg Message) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", msg.HeaderFrom)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	if msg.CC != nil && strings.TrimSpace(*msg.CC) != "" {
		fmt.Fprintf(&b, "Cc: %s\r\n", *msg.CC)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	if msg.HTML {
		b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	} else {
		b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	}
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")

	return []byte(b.String())
}
