package qr

import (
	"bytes"
	"testing"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderProducesPNG(t *testing.T) {
	png, err := Render("https://shrl.ink/aZ3kT9")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestRenderEmptyText(t *testing.T) {
	if _, err := Render(""); err == nil {
		t.Error("expected error for empty text")
	}
}
