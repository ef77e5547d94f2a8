// Package deeplink builds the payment and confirmation links handed to the
// player's device. The hub never verifies that a payment happened: the
// player pays in their UPI app and confirms to the admin over WhatsApp.
package deeplink

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fftourney/hub/internal/hub"
)

const (
	DefaultPayeeLabel = "FFTournamentHub"
	DefaultQREndpoint = "https://api.qrserver.com/v1/create-qr-code/?size=250x250&data="
)

// Links is everything a client needs for the payment and confirmation steps.
type Links struct {
	PaymentURI      string `json:"paymentUri"`
	QRCodeURL       string `json:"qrCodeUrl"`
	ConfirmationURI string `json:"confirmationUri"`
}

type Builder struct {
	PayeeLabel string
	QREndpoint string
}

func (b Builder) Build(cfg hub.AppConfig, t hub.Tournament, p hub.UserProfile) Links {
	pay := PaymentURI(cfg.UPIID, b.PayeeLabel, t)
	return Links{
		PaymentURI:      pay,
		QRCodeURL:       QRCodeURL(b.QREndpoint, pay),
		ConfirmationURI: ConfirmationURI(cfg.AdminWhatsApp, t, p),
	}
}

// PaymentURI returns the UPI intent for the tournament's entry fee.
func PaymentURI(upiID, payeeLabel string, t hub.Tournament) string {
	if payeeLabel == "" {
		payeeLabel = DefaultPayeeLabel
	}
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&cu=INR&tn=%s",
		upiID, payeeLabel, FormatFee(t.EntryFee), Escape(t.Name+" Registration"))
}

func QRCodeURL(endpoint, paymentURI string) string {
	if endpoint == "" {
		endpoint = DefaultQREndpoint
	}
	return endpoint + Escape(paymentURI)
}

// ConfirmationURI returns the wa.me link carrying the prefilled slot
// confirmation message for the admin.
func ConfirmationURI(adminWhatsApp string, t hub.Tournament, p hub.UserProfile) string {
	return "https://wa.me/" + adminWhatsApp + "?text=" + Escape(ConfirmationMessage(t, p))
}

func ConfirmationMessage(t hub.Tournament, p hub.UserProfile) string {
	device := p.Device
	if device == "" {
		device = "N/A"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Hi Admin! I want to confirm my slot for %s.\n\n", t.Name)
	sb.WriteString("*PAYMENT DETAILS:*\n")
	fmt.Fprintf(&sb, "- *Tournament:* %s\n", t.Name)
	fmt.Fprintf(&sb, "- *Amount Paid:* ₹%s\n\n", FormatFee(t.EntryFee))
	sb.WriteString("*PLAYER DETAILS:*\n")
	fmt.Fprintf(&sb, "- *Name:* %s\n", p.FullName)
	fmt.Fprintf(&sb, "- *IGN:* %s\n", p.IGN)
	fmt.Fprintf(&sb, "- *UID:* %s\n", p.UID)
	fmt.Fprintf(&sb, "- *UPI ID:* %s\n", p.UPIID)
	fmt.Fprintf(&sb, "- *Device:* %s\n\n", device)
	sb.WriteString("I have attached the payment screenshot below.")
	return strings.TrimSpace(sb.String())
}

// FormatFee renders a fee without trailing zeros: 50 → "50", 49.5 → "49.5".
func FormatFee(fee float64) string {
	return strconv.FormatFloat(fee, 'f', -1, 64)
}

// Escape percent-encodes s the way browsers' encodeURIComponent does, so
// spaces become %20 and the marks !'()*~ are left alone.
func Escape(s string) string {
	const hex = "0123456789ABCDEF"

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hex[c>>4])
		sb.WriteByte(hex[c&0x0f])
	}
	return sb.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
