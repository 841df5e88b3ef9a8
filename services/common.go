package services

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"strings"
)

// MaxImageBytes bounds a decoded analyze payload.
const MaxImageBytes = 20 * 1024 * 1024

var allowedImageMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
	"image/heic": ".heic",
	"image/heif": ".heif",
}

// ImagePayload is a decoded analyze request image.
type ImagePayload struct {
	Data     []byte
	MimeType string
	Hash     string
}

func (p ImagePayload) Extension() string {
	return allowedImageMimeTypes[p.MimeType]
}

// DecodeImagePayload accepts raw base64 or a data:<mime>;base64, URL and
// checks that the bytes are an image.
func DecodeImagePayload(payload string) (*ImagePayload, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, newValidationError("image", "image is required")
	}

	declaredMime := ""
	if strings.HasPrefix(payload, "data:") {
		header, body, found := strings.Cut(payload, ",")
		if !found || !strings.HasSuffix(header, ";base64") {
			return nil, newValidationError("image", "data URL must be base64 encoded")
		}
		declaredMime = strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64"))
		payload = body
	}

	data, err := decodeBase64(payload)
	if err != nil {
		return nil, newValidationError("image", "image is not valid base64")
	}
	if len(data) == 0 {
		return nil, newValidationError("image", "image is empty")
	}
	if len(data) > MaxImageBytes {
		return nil, newValidationError("image", "image is too large")
	}

	mimeType := http.DetectContentType(data)
	if _, ok := allowedImageMimeTypes[mimeType]; !ok {
		// HEIC is not sniffed by net/http, trust the data URL for it
		if _, declared := allowedImageMimeTypes[declaredMime]; declared && strings.HasPrefix(declaredMime, "image/hei") {
			mimeType = declaredMime
		} else {
			return nil, newValidationError("image", "unsupported image type "+mimeType)
		}
	}

	sum := sha256.Sum256(data)
	return &ImagePayload{Data: data, MimeType: mimeType, Hash: hex.EncodeToString(sum[:])}, nil
}

func decodeBase64(value string) ([]byte, error) {
	value = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, value)
	for _, encoding := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if data, err := encoding.DecodeString(value); err == nil {
			return data, nil
		}
	}
	return nil, errors.New("invalid base64")
}

func StrPointer(str string) *string {
	if str == "" {
		return nil
	}
	return &str
}

func GetEnv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}
