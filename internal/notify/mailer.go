package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
)

// MailConfig carries the SMTP settings for the mailer.  It is injected
// at construction; the mailer never reads process-wide configuration.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

// ErrMailConfigMissing is returned when the mailer is constructed with
// incomplete SMTP settings.
var ErrMailConfigMissing = errors.New("mail configuration missing")

// SMTPMailer sends confirmation emails over SMTP with STARTTLS (as
// negotiated by the server).  Messages are Gmail/Outlook friendly:
// multipart/related wrapping a plain+HTML alternative, with the QR both
// inline (CID) and attached as a file.
type SMTPMailer struct {
	cfg MailConfig
	// send is swapped in tests; defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer validates the configuration and returns a mailer.
func NewSMTPMailer(cfg MailConfig) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.Port == 0 || cfg.Username == "" || cfg.Password == "" || cfg.Sender == "" {
		return nil, ErrMailConfigMissing
	}
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}, nil
}

// Send builds the MIME message and delivers it in one SMTP session.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := BuildMIME(m.cfg.Sender, msg)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := m.send(addr, auth, m.cfg.Sender, []string{msg.To}, body); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// qrContentID is the fixed Content-ID referenced by the HTML template
// (<img src="cid:qr-image">).
const qrContentID = "qr-image"

// BuildMIME renders the full RFC 2045 message for a confirmation email.
// Structure: multipart/related [ multipart/alternative [ text/plain,
// text/html ], inline qr.png, attached qr.png ].
func BuildMIME(sender string, msg Message) ([]byte, error) {
	var buf bytes.Buffer
	related := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", sender)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/related; boundary=%q\r\n\r\n", related.Boundary())

	// Alternative part: plain text first, HTML second (clients pick the
	// last part they can render).
	altBuf := &bytes.Buffer{}
	alt := multipart.NewWriter(altBuf)
	if err := writeTextPart(alt, "text/plain", msg.PlainBody); err != nil {
		return nil, err
	}
	if err := writeTextPart(alt, "text/html", msg.HTMLBody); err != nil {
		return nil, err
	}
	if err := alt.Close(); err != nil {
		return nil, err
	}
	altHeader := textproto.MIMEHeader{}
	altHeader.Set("Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", alt.Boundary()))
	part, err := related.CreatePart(altHeader)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(altBuf.Bytes()); err != nil {
		return nil, err
	}

	if len(msg.InlinePNG) > 0 {
		if err := writeImagePart(related, msg.InlinePNG, true); err != nil {
			return nil, err
		}
		if err := writeImagePart(related, msg.InlinePNG, false); err != nil {
			return nil, err
		}
	}
	if err := related.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTextPart(w *multipart.Writer, contentType, body string) error {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType+"; charset=utf-8")
	h.Set("Content-Transfer-Encoding", "8bit")
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = part.Write([]byte(strings.ReplaceAll(body, "\n", "\r\n")))
	return err
}

func writeImagePart(w *multipart.Writer, png []byte, inline bool) error {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", "image/png")
	h.Set("Content-Transfer-Encoding", "base64")
	if inline {
		// Direct assignment: MIMEHeader.Set would canonicalize the key to
		// "Content-Id", but the RFC 2392 spelling is "Content-ID".
		h["Content-ID"] = []string{"<" + qrContentID + ">"}
		h.Set("Content-Disposition", `inline; filename="qr.png"`)
	} else {
		h.Set("Content-Disposition", `attachment; filename="qr.png"`)
	}
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	enc := base64.StdEncoding.EncodeToString(png)
	// 76-character lines per RFC 2045.
	for len(enc) > 0 {
		n := 76
		if n > len(enc) {
			n = len(enc)
		}
		if _, err := part.Write([]byte(enc[:n] + "\r\n")); err != nil {
			return err
		}
		enc = enc[n:]
	}
	return nil
}
