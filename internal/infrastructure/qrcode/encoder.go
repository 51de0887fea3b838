// Package qrcode renders registration codes as PNG QR images embedded in
// data URLs, the form clients place directly into an <img> tag.
package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"

	qr "github.com/skip2/go-qrcode"
)

const (
	dataURLPrefix = "data:image/png;base64,"
	defaultSize   = 256
)

// Encoder implements ports.TicketEncoder.
type Encoder struct {
	size  int
	level qr.RecoveryLevel
}

// NewEncoder returns an Encoder producing images of size x size pixels.
func NewEncoder(size int) *Encoder {
	if size <= 0 {
		size = defaultSize
	}
	return &Encoder{size: size, level: qr.Medium}
}

func (e *Encoder) Encode(code string) (string, error) {
	if code == "" {
		return "", errors.New("qrcode: empty registration code")
	}
	png, err := qr.Encode(code, e.level, e.size)
	if err != nil {
		return "", fmt.Errorf("qrcode: %w", err)
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(png), nil
}
