package render

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// Normalize ensures the PNG has exactly the given dimensions. Screenshots
// taken at the right viewport pass through unchanged; anything else (a
// device scale factor the browser applied, for instance) is filled to the
// exact bounds and re-encoded.
func Normalize(data []byte, width, height int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding screenshot: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return data, nil
	}

	fitted := imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding screenshot: %w", err)
	}
	return buf.Bytes(), nil
}
