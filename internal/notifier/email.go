package notifier

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/julianstephens/growthdash/internal/accountability"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	htmlSanitizer = bluemonday.UGCPolicy()
	noteSanitizer = bluemonday.StrictPolicy()

	// deliverFunc is swapped in tests to capture the outgoing message
	deliverFunc = deliverSMTP
)

// EmailConfig holds SMTP settings; Password comes from the keyring or environment
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
	StartTLS bool
}

// EmailChannel sends a multipart (plain text + HTML) message over SMTP
type EmailChannel struct {
	cfg EmailConfig
}

type renderedEmail struct {
	Subject string
	Text    string
	HTML    string
}

func NewEmailChannel(cfg EmailConfig) (*EmailChannel, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host is not configured")
	}
	if cfg.From == "" {
		return nil, errors.New("email sender is not configured")
	}
	if len(cfg.To) == 0 {
		return nil, errors.New("email recipient is not configured")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &EmailChannel{cfg: cfg}, nil
}

func (c *EmailChannel) Name() string { return ChannelEmail }

func (c *EmailChannel) Send(ctx context.Context, msg accountability.Message) error {
	rendered, err := renderEmail(msg)
	if err != nil {
		return err
	}
	data, err := buildMIME(c.cfg.From, c.cfg.To, rendered, time.Now())
	if err != nil {
		return err
	}
	return deliverFunc(ctx, c.cfg, data)
}

func renderEmail(msg accountability.Message) (renderedEmail, error) {
	var md strings.Builder
	fmt.Fprintf(&md, "## %s %s\n\n", accountability.Emoji(msg.Tier), msg.Title)
	fmt.Fprintf(&md, "%s\n\n", msg.Body)
	fmt.Fprintf(&md, "**Tier:** %s  \n%s\n", accountability.Badge(msg.Tier), msg.Summary())

	notes := sanitizedNotes(msg.Notes)
	if len(notes) > 0 {
		md.WriteString("\n### Today's notes\n\n")
		for _, n := range notes {
			fmt.Fprintf(&md, "- %s\n", n)
		}
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(md.String()), &buf); err != nil {
		return renderedEmail{}, fmt.Errorf("failed to render email body: %w", err)
	}

	var text strings.Builder
	fmt.Fprintf(&text, "%s\n\n%s\n\nTier: %s\n%s\n", msg.Title, msg.PlainBody(), accountability.Badge(msg.Tier), msg.Summary())
	if len(notes) > 0 {
		text.WriteString("\nToday's notes:\n")
		for _, n := range notes {
			fmt.Fprintf(&text, "- %s\n", n)
		}
	}

	return renderedEmail{
		Subject: headline(msg),
		Text:    text.String(),
		HTML:    string(htmlSanitizer.SanitizeBytes(buf.Bytes())),
	}, nil
}

// sanitizedNotes strips any markup from user notes before they enter the markdown source
func sanitizedNotes(notes []string) []string {
	var out []string
	for _, n := range notes {
		clean := strings.TrimSpace(noteSanitizer.Sanitize(n))
		if clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

func buildMIME(from string, to []string, email renderedEmail, date time.Time) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	headers := []string{
		"From: " + from,
		"To: " + strings.Join(to, ", "),
		"Subject: " + mime.QEncoding.Encode("utf-8", email.Subject),
		"Date: " + date.Format(time.RFC1123Z),
		"MIME-Version: 1.0",
		"Content-Type: multipart/alternative; boundary=" + mw.Boundary(),
	}
	var out bytes.Buffer
	out.WriteString(strings.Join(headers, "\r\n"))
	out.WriteString("\r\n\r\n")

	parts := []struct {
		contentType string
		body        string
	}{
		{"text/plain; charset=UTF-8", email.Text},
		{"text/html; charset=UTF-8", email.HTML},
	}
	for _, p := range parts {
		w, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {p.contentType},
			"Content-Transfer-Encoding": {"8bit"},
		})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(strings.ReplaceAll(p.body, "\n", "\r\n"))); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	out.Write(buf.Bytes())
	return out.Bytes(), nil
}

// deliverSMTP dials the server, upgrades with STARTTLS when configured and sends data to every recipient
func deliverSMTP(ctx context.Context, cfg EmailConfig, data []byte) error {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	dialer := net.Dialer{Timeout: 5 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to smtp server: %w", err)
	}
	deadline := time.Now().Add(15 * time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	client, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if cfg.StartTLS {
		if ok, _ := client.Extension("STARTTLS"); !ok {
			return errors.New("smtp server does not support STARTTLS")
		}
		if err := client.StartTLS(&tls.Config{ServerName: cfg.Host}); err != nil {
			return fmt.Errorf("starttls failed: %w", err)
		}
	}
	if cfg.Username != "" {
		if err := client.Auth(smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)); err != nil {
			return fmt.Errorf("smtp auth failed: %w", err)
		}
	}

	if err := client.Mail(cfg.From); err != nil {
		return err
	}
	for _, rcpt := range cfg.To {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("recipient %s rejected: %w", rcpt, err)
		}
	}
	wc, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return err
	}
	return client.Quit()
}
