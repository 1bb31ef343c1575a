package ml

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const fallbackImageMIME = "image/jpeg"

// decodeImage decodes a base64 image and sniffs its MIME type.
func decodeImage(imageBase64 string) ([]byte, string, error) {
	raw, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return nil, "", fmt.Errorf("invalid image base64: %w", err)
	}
	return raw, sniffImageMIME(raw), nil
}

func sniffImageMIME(raw []byte) string {
	mime := mimetype.Detect(raw).String()
	if !strings.HasPrefix(mime, "image/") {
		return fallbackImageMIME
	}
	return mime
}

// dataURL wraps a base64 image in a data URL. Payloads that fail to decode
// are passed through as JPEG and left for the provider to reject.
func dataURL(imageBase64 string) string {
	mime := fallbackImageMIME
	if _, sniffed, err := decodeImage(imageBase64); err == nil {
		mime = sniffed
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, imageBase64)
}
