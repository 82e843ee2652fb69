package qrcode

import (
	"fmt"

	qr "github.com/skip2/go-qrcode"
)

// JoinURL builds the link players scan to join the game.
func JoinURL(host, sessionID string) string {
	return fmt.Sprintf("http://%s/?player=%s", host, sessionID)
}

// Generate creates a size×size QR code PNG for the given URL.
func Generate(url string, size int) ([]byte, error) {
	png, err := qr.Encode(url, qr.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
