package notify

import (
	"fmt"
	"html"
)

// ConfirmationEmail renders the plain and HTML bodies of the
// reservation confirmation.  The HTML references the inline QR by its
// fixed CID ("qr-image"), which must match what the mailer writes.
func ConfirmationEmail(eventName, firstName, lastName string) (plain, htmlBody string) {
	fullName := firstName + " " + lastName
	plain = fmt.Sprintf(
		"Hi %s,\n\nyour reservation for %s is confirmed.\n"+
			"Your QR code is attached; present it at the entrance.\n"+
			"The code works exactly once - after the first scan it is marked as used.\n",
		fullName, eventName)

	htmlBody = fmt.Sprintf(`<div style="font-family:sans-serif;max-width:640px;margin:0 auto;background:#ffffff;border:1px solid #e2e8f0;border-radius:16px;padding:24px;">
  <div style="font-size:18px;font-weight:900;color:#0f172a;">NivuGate</div>
  <div style="font-size:12px;color:#64748b;margin-top:4px;">Single-use QR reservations</div>
  <p style="font-size:15px;color:#334155;margin-top:18px;">
    Hi <b style="color:#0f172a;">%s</b>, your reservation is confirmed.
  </p>
  <div style="background:#f8fafc;border:1px solid #e2e8f0;border-radius:12px;padding:14px;margin-top:10px;">
    <div style="font-size:11px;letter-spacing:2px;font-weight:800;color:#7c3aed;text-transform:uppercase;">Event</div>
    <div style="font-size:18px;font-weight:900;color:#0f172a;margin-top:4px;">%s</div>
  </div>
  <p style="font-size:14px;color:#475569;margin-top:16px;">Present this QR at the entrance:</p>
  <div style="text-align:center;border:1px solid #e2e8f0;border-radius:12px;padding:16px;">
    <img src="cid:%s" alt="check-in QR" width="260" height="260" style="display:block;margin:0 auto;" />
  </div>
  <p style="font-size:12px;color:#64748b;margin-top:12px;">
    *The QR works a single time. Once scanned, it is marked as used.
  </p>
</div>`,
		html.EscapeString(fullName), html.EscapeString(eventName), qrContentID)
	return plain, htmlBody
}
