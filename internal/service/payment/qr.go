package payment

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	defaultQRSize = 256
	maxQRSize     = 1024
)

// QRCode рендерит payload в PNG. size вне диапазона заменяется значением
// по умолчанию.
func QRCode(payload string, size int) ([]byte, error) {
	if size <= 0 || size > maxQRSize {
		size = defaultQRSize
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
