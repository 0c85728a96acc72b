package qr

import (
	"errors"
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// ErrNoQRCode reports that the image carries no decodable QR code.
var ErrNoQRCode = errors.New("qr: no QR code found")

// Decode scans the image for a QR code and returns its text payload.
// Returns ErrNoQRCode when no code is present or decodable.
func Decode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("qr: create bitmap: %w", err)
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", ErrNoQRCode
	}

	return result.GetText(), nil
}
