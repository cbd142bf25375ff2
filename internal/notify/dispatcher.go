// Package notify holds the external collaborators of the reservation
// core: the confirmation-email dispatcher and the QR image renderer.
// Both are best effort; the reservation exists before either runs and
// neither failure is ever escalated to the caller.
package notify

import "context"

// Message is one confirmation email.  InlinePNG, when present, is
// embedded as an inline image (Content-ID "qr-image") and additionally
// attached as qr.png for clients that block inline content.
type Message struct {
	To        string
	Subject   string
	PlainBody string
	HTMLBody  string
	InlinePNG []byte
}

// Dispatcher delivers a confirmation message.  Implementations are
// invoked once per reservation creation; the core records the outcome
// on the reservation and never retries.
type Dispatcher interface {
	Send(ctx context.Context, msg Message) error
}

// QRRenderer produces an opaque PNG for the given payload (a check-in
// URL).  The core does not interpret the image contents.
type QRRenderer interface {
	RenderPNG(ctx context.Context, data string) ([]byte, error)
}
