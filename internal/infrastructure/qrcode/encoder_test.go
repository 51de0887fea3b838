package qrcode

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"
)

func TestEncoder_Encode(t *testing.T) {
	enc := NewEncoder(128)

	payload, err := enc.Encode("alice-6650f0c2a1b2c3d4e5f60718-1778414400000")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.HasPrefix(payload, dataURLPrefix) {
		t.Fatalf("expected data URL, got %q", payload[:32])
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(payload, dataURLPrefix))
	if err != nil {
		t.Fatalf("payload is not base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("payload is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 128 {
		t.Fatalf("unexpected image size %v", b)
	}
}

func TestEncoder_DistinctCodes(t *testing.T) {
	enc := NewEncoder(0)

	a, _ := enc.Encode("alice-ev1-1")
	b, _ := enc.Encode("alice-ev1-2")
	if a == b {
		t.Fatalf("different codes produced the same payload")
	}
}

func TestEncoder_EmptyCode(t *testing.T) {
	if _, err := NewEncoder(64).Encode(""); err == nil {
		t.Fatalf("expected error for empty code")
	}
}
