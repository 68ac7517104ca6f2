package model

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// MaxImageSize is the largest accepted review photo in bytes.
const MaxImageSize = 5 << 20

var (
	ErrUnsupportedImage = errors.New("only png, jpg and jpeg images are allowed")
	ErrImageTooLarge    = errors.New("image must not exceed 5MB")
	ErrMalformedImage   = errors.New("malformed data image")
)

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
}

func ImageExtension(contentType string) (string, bool) {
	ext, ok := imageExtensions[strings.ToLower(contentType)]

	return ext, ok
}

func IsDataImage(value string) bool {
	return strings.HasPrefix(value, "data:")
}

// DataImage is a decoded base64 data URI.
type DataImage struct {
	ContentType string
	Extension   string
	Data        []byte
}

// DecodeDataImage parses data:<type>;base64,<payload> and enforces the type and size limits.
func DecodeDataImage(value string) (DataImage, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(value, "data:"), ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return DataImage{}, ErrMalformedImage
	}

	contentType := strings.TrimSuffix(header, ";base64")

	ext, ok := ImageExtension(contentType)
	if !ok {
		return DataImage{}, ErrUnsupportedImage
	}

	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageSize+2 {
		return DataImage{}, ErrImageTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return DataImage{}, fmt.Errorf("%w: %w", ErrMalformedImage, err)
	}

	if len(data) > MaxImageSize {
		return DataImage{}, ErrImageTooLarge
	}

	return DataImage{ContentType: strings.ToLower(contentType), Extension: ext, Data: data}, nil
}
