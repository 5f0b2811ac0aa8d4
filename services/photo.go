package services

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// validatePhoto accepts an empty payload (no photo) or an image of at most maxBytes.
func validatePhoto(photo []byte, maxBytes int64) error {
	if len(photo) == 0 {
		return nil
	}
	if maxBytes > 0 && int64(len(photo)) > maxBytes {
		return fmt.Errorf("%w: photo is %d bytes, limit is %d", ErrInvalidInput, len(photo), maxBytes)
	}
	mt := mimetype.Detect(photo)
	if !strings.HasPrefix(mt.String(), "image/") {
		return fmt.Errorf("%w: photo must be an image, got %s", ErrInvalidInput, mt.String())
	}
	return nil
}
