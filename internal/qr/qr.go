package qr

import qrcode "github.com/skip2/go-qrcode"

const pngSize = 300

// Render returns a PNG image of the given text, sized for inline display
// or download. Pure function, no side effects.
func Render(text string) ([]byte, error) {
	return qrcode.Encode(text, qrcode.Medium, pngSize)
}
