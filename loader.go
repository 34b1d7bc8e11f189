package sylva

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// LoadSilhouette opens and decodes a silhouette image (PNG or JPEG).
// Decoding failures are wrapped with the path so the caller can tell which
// of several clouds failed to initialize.
func LoadSilhouette(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sylva: load silhouette %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("sylva: load silhouette %q: %w", path, err)
	}
	return img, nil
}
