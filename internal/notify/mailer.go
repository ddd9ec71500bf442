package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"time"
)

// Mailer sends transactional email to buyers.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, c OrderConfirmation) error
}

// SMTPConfig is the outgoing mail server and sender identity.
type SMTPConfig struct {
	Host         string
	Port         int
	Username     string
	Password     string
	From         string
	FromName     string
	ContactPhone string
}

type sendFunc func(ctx context.Context, from string, to []string, msg []byte) error

// SMTPMailer delivers multipart (plain text + HTML) mail over SMTP with
// STARTTLS when the server offers it.
type SMTPMailer struct {
	cfg  SMTPConfig
	send sendFunc
}

// NewSMTPMailer returns a Mailer for cfg.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	m := &SMTPMailer{cfg: cfg}
	m.send = m.deliver
	return m
}

// SendOrderConfirmation renders and sends the confirmation to the buyer.
func (m *SMTPMailer) SendOrderConfirmation(ctx context.Context, c OrderConfirmation) error {
	if c.ShopName == "" {
		c.ShopName = m.cfg.FromName
	}
	if c.ContactPhone == "" {
		c.ContactPhone = m.cfg.ContactPhone
	}
	msg, err := RenderOrderConfirmation(c)
	if err != nil {
		return err
	}

	from := mail.Address{Name: m.cfg.FromName, Address: m.cfg.From}
	to := mail.Address{Name: c.BuyerName, Address: c.BuyerEmail}
	raw, err := buildMIME(from, to, msg, time.Now())
	if err != nil {
		return err
	}
	if err := m.send(ctx, m.cfg.From, []string{c.BuyerEmail}, raw); err != nil {
		return fmt.Errorf("send confirmation for %s: %w", c.OrderRef, err)
	}
	log.Printf("[Email] Order confirmation sent to %s for %s", c.BuyerEmail, c.OrderRef)
	return nil
}

func (m *SMTPMailer) deliver(ctx context.Context, from string, to []string, msg []byte) error {
	addr := net.JoinHostPort(m.cfg.Host, fmt.Sprint(m.cfg.Port))
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}
	if m.cfg.Username != "" {
		if err := c.Auth(smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

func buildMIME(from, to mail.Address, msg Message, date time.Time) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	for _, part := range []struct{ contentType, content string }{
		{"text/plain; charset=UTF-8", msg.Text},
		{"text/html; charset=UTF-8", msg.HTML},
	} {
		pw, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {part.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, err
		}
		qp := quotedprintable.NewWriter(pw)
		if _, err := qp.Write([]byte(part.content)); err != nil {
			return nil, err
		}
		if err := qp.Close(); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "From: %s\r\n", from.String())
	fmt.Fprintf(&out, "To: %s\r\n", to.String())
	fmt.Fprintf(&out, "Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", msg.Subject))
	fmt.Fprintf(&out, "Date: %s\r\n", date.Format(time.RFC1123Z))
	fmt.Fprintf(&out, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&out, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", mw.Boundary())
	out.Write(body.Bytes())
	return out.Bytes(), nil
}
