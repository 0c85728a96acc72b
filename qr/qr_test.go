package qr

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

func TestDecodeRoundTrip(t *testing.T) {
	payload := "MECARD:N:Jane Doe;TEL:+14155552671;;"
	matrix, err := qrcode.NewQRCodeWriter().Encode(
		payload, gozxing.BarcodeFormat_QR_CODE, 240, 240, nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	img := image.NewGray(image.Rect(0, 0, matrix.GetWidth(), matrix.GetHeight()))
	for y := 0; y < matrix.GetHeight(); y++ {
		for x := 0; x < matrix.GetWidth(); x++ {
			if matrix.Get(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	got, err := Decode(img)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != payload {
		t.Errorf("payload = %q, want %q", got, payload)
	}
}

func TestDecodeNoCode(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 100, 100))
	for i := range img.Pix {
		img.Pix[i] = 255
	}

	_, err := Decode(img)
	if !errors.Is(err, ErrNoQRCode) {
		t.Fatalf("err = %v, want ErrNoQRCode", err)
	}
}

func TestDecodeNoiseImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 60, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			if (x*7+y*13)%3 == 0 {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	if _, err := Decode(img); !errors.Is(err, ErrNoQRCode) {
		t.Fatalf("err = %v, want ErrNoQRCode", err)
	}
}

func TestParseMECARD(t *testing.T) {
	payload := "MECARD:N:Doe,Jane;TEL:+14155552671;EMAIL:jane.doe@acmecorp.com;ORG:Acme Corp;URL:https://acmecorp.com;ADR:123 Main Street Springfield;;"

	contact, ok := ParseContact(payload)
	if !ok {
		t.Fatal("ParseContact returned ok=false for MECARD payload")
	}

	if contact.Name != "Doe Jane" {
		t.Errorf("name = %q, want %q", contact.Name, "Doe Jane")
	}
	if contact.Phone != "+14155552671" {
		t.Errorf("phone = %q", contact.Phone)
	}
	if contact.Email != "jane.doe@acmecorp.com" {
		t.Errorf("email = %q", contact.Email)
	}
	if contact.Company != "Acme Corp" {
		t.Errorf("company = %q", contact.Company)
	}
	if contact.Website != "https://acmecorp.com" {
		t.Errorf("website = %q", contact.Website)
	}
	if contact.Address != "123 Main Street Springfield" {
		t.Errorf("address = %q", contact.Address)
	}
}

func TestParseMECARDEscapedSemicolon(t *testing.T) {
	contact, ok := ParseContact(`MECARD:N:Jane Doe;ORG:Acme\; Inc;;`)
	if !ok {
		t.Fatal("ok = false")
	}
	if contact.Company != "Acme; Inc" {
		t.Errorf("company = %q, want escaped semicolon preserved", contact.Company)
	}
}

func TestParseVCard(t *testing.T) {
	payload := "BEGIN:VCARD\r\nVERSION:3.0\r\nN:Doe;Jane;;;\r\nFN:Jane Doe\r\nTITLE:Senior Engineer\r\nORG:Acme Corp\r\nTEL;TYPE=WORK,VOICE:+14155552671\r\nTEL;TYPE=HOME:+14155550000\r\nEMAIL;TYPE=WORK:jane.doe@acmecorp.com\r\nURL:https://acmecorp.com\r\nADR;TYPE=WORK:;;123 Main Street;Springfield;;12345;\r\nEND:VCARD"

	contact, ok := ParseContact(payload)
	if !ok {
		t.Fatal("ParseContact returned ok=false for vCard payload")
	}

	if contact.Name != "Jane Doe" {
		t.Errorf("name = %q", contact.Name)
	}
	if contact.Title != "Senior Engineer" {
		t.Errorf("title = %q", contact.Title)
	}
	if contact.Company != "Acme Corp" {
		t.Errorf("company = %q", contact.Company)
	}
	if contact.Phone != "+14155552671" {
		t.Errorf("phone = %q, want the first TEL kept", contact.Phone)
	}
	if contact.Email != "jane.doe@acmecorp.com" {
		t.Errorf("email = %q", contact.Email)
	}
	if contact.Address != "123 Main Street, Springfield, 12345" {
		t.Errorf("address = %q", contact.Address)
	}
}

func TestParseVCardStructuredNameFallback(t *testing.T) {
	payload := "BEGIN:VCARD\nVERSION:3.0\nN:Doe;Jane;;;\nEND:VCARD"

	contact, ok := ParseContact(payload)
	if !ok {
		t.Fatal("ok = false")
	}
	if contact.Name != "Jane Doe" {
		t.Errorf("name = %q, want assembled from structured N", contact.Name)
	}
}

func TestParseContactUnknownPayload(t *testing.T) {
	for _, payload := range []string{"https://acmecorp.com", "WIFI:S:guest;;", ""} {
		if _, ok := ParseContact(payload); ok {
			t.Errorf("ParseContact(%q) ok = true, want false", payload)
		}
	}

	if IsContact("https://acmecorp.com") {
		t.Error("IsContact = true for a URL payload")
	}
	if !IsContact("MECARD:N:Jane;;") {
		t.Error("IsContact = false for a MECARD payload")
	}
}
