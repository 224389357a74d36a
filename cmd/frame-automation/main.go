// frame-automation renders a markdown file into a 1920x1080 image and pushes
// it to a Samsung Frame TV's Art Mode. Configuration is entirely via FRAME_*
// environment variables; see the README.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/tavva/frame-automation/internal/config"
	"github.com/tavva/frame-automation/internal/markdown"
	"github.com/tavva/frame-automation/internal/render"
	"github.com/tavva/frame-automation/internal/state"
	"github.com/tavva/frame-automation/internal/theme"
	"github.com/tavva/frame-automation/internal/tv"
)

// runTimeout bounds a whole run; rendering plus upload comfortably fits.
const runTimeout = 2 * time.Minute

func main() {
	if err := run(); err != nil {
		slog.Error("frame update failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	thm, err := theme.Resolve(cfg.ThemesDir, cfg.Theme)
	if err != nil {
		return err
	}
	slog.Info("theme resolved", "theme", thm.Name, "base_dir", thm.BaseDir)

	css := theme.RewriteAssetURLs(thm.CSS, thm.BaseDir)

	source, err := os.ReadFile(cfg.ContentFile)
	if err != nil {
		return fmt.Errorf("reading content file: %w", err)
	}

	contentHTML, err := markdown.Convert(source)
	if err != nil {
		return err
	}
	doc := markdown.Document(contentHTML, css)

	slog.Info("rendering image", "width", render.DefaultWidth, "height", render.DefaultHeight)
	png, err := render.Screenshot(ctx, doc, render.Options{})
	if err != nil {
		return fmt.Errorf("rendering image: %w", err)
	}
	png, err = render.Normalize(png, render.DefaultWidth, render.DefaultHeight)
	if err != nil {
		return fmt.Errorf("normalizing image: %w", err)
	}

	previousID, hadPrevious := state.ReadLastContentID()

	client := tv.New(cfg.TVAddr)
	slog.Info("connecting to tv", "addr", cfg.TVAddr)
	if err := client.Connect(ctx); err != nil {
		return fmt.Errorf("connecting to tv: %w", err)
	}
	defer func() { _ = client.Close() }()

	slog.Info("uploading image")
	contentID, err := client.Upload(ctx, png)
	if err != nil {
		return fmt.Errorf("uploading image: %w", err)
	}
	slog.Info("image uploaded", "content_id", contentID)

	if err := client.Select(ctx, contentID); err != nil {
		return fmt.Errorf("activating artwork: %w", err)
	}
	slog.Info("artwork activated", "content_id", contentID)

	// Retire the previous upload; losing it only leaves stale art on the TV.
	if hadPrevious && previousID != contentID {
		if err := client.Delete(ctx, previousID); err != nil {
			slog.Warn("failed to delete previous artwork", "content_id", previousID, "error", err)
		} else {
			slog.Info("previous artwork deleted", "content_id", previousID)
		}
	}

	if err := state.WriteLastContentID(contentID); err != nil {
		slog.Warn("failed to record content id", "error", err)
	}

	return nil
}
