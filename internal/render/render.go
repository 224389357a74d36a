// Package render produces the fixed-size raster image for a composed HTML
// document using headless Chrome.
package render

import (
	"context"
	"fmt"
	"os"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Frame TVs display 1920x1080 artwork.
const (
	DefaultWidth  = 1920
	DefaultHeight = 1080
)

// Options controls the rendered image dimensions.
type Options struct {
	Width  int
	Height int
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	return o
}

// Screenshot renders the HTML document in headless Chrome and returns a PNG
// screenshot at the configured dimensions. The document is served from a
// temporary file over file:// so absolute local asset references in its
// stylesheet resolve.
func Screenshot(ctx context.Context, html string, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	docPath, err := writeTempDocument(html)
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.Remove(docPath) }()

	controlURL, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	defer func() { _ = browser.Close() }()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + docPath})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.Width,
		Height:            opts.Height,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("setting viewport: %w", err)
	}

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("waiting for page load: %w", err)
	}

	data, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("capturing screenshot: %w", err)
	}

	return data, nil
}

// writeTempDocument writes the HTML document to a temporary file and returns
// its path. The caller removes the file.
func writeTempDocument(html string) (string, error) {
	tmp, err := os.CreateTemp("", "frame-*.html")
	if err != nil {
		return "", fmt.Errorf("creating temp document: %w", err)
	}
	if _, err := tmp.WriteString(html); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("writing temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("closing temp document: %w", err)
	}
	return tmp.Name(), nil
}
