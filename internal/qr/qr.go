package qr

import (
	"errors"

	"github.com/skip2/go-qrcode"

	"oncampus/internal/models"
)

// ErrNoRedirect is returned for benefits without a redirect URL.
var ErrNoRedirect = errors.New("benefit has no redirect url")

type QRGenerator struct {
	size  int
	level qrcode.RecoveryLevel
}

func NewQRGenerator(size int) *QRGenerator {
	if size <= 0 {
		size = 256
	}
	return &QRGenerator{size: size, level: qrcode.Medium}
}

// BenefitPNG encodes the benefit's redirect URL as a PNG QR code.
func (q *QRGenerator) BenefitPNG(benefit models.Benefit) ([]byte, error) {
	if !benefit.HasRedirect() {
		return nil, ErrNoRedirect
	}
	return qrcode.Encode(benefit.RedirectURL, q.level, q.size)
}
