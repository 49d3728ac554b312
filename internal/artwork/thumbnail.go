package artwork

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG format support
	_ "image/png"  // PNG format support
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

const iconFilename = "artwork_icon.png"

// Thumbnailer renders album art into a fixed-size square icon on disk for
// menu-bar style consumers.
type Thumbnailer struct {
	logger    *zap.Logger
	size      int
	outputDir string
}

// NewThumbnailer creates a thumbnailer writing size×size icons under
// outputDir.
func NewThumbnailer(logger *zap.Logger, outputDir string, size int) *Thumbnailer {
	return &Thumbnailer{logger: logger, size: size, outputDir: outputDir}
}

// Render decodes imgData, crops it to a centered square at the configured
// size, and writes it as PNG. Returns the absolute path of the icon file.
func (t *Thumbnailer) Render(imgData []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(imgData))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return "", fmt.Errorf("invalid image dimensions: %dx%d", bounds.Dx(), bounds.Dy())
	}

	icon := imaging.Fill(img, t.size, t.size, imaging.Center, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, icon, imaging.PNG); err != nil {
		return "", fmt.Errorf("failed to encode icon: %w", err)
	}

	if err := os.MkdirAll(t.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := filepath.Join(t.outputDir, iconFilename)
	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write icon file: %w", err)
	}

	t.logger.Debug("Artwork icon rendered",
		zap.String("path", outputPath),
		zap.Int("size", buf.Len()))

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return outputPath, nil
	}
	return absPath, nil
}

// Pipeline chains fetch and render for a single artwork URL.
type Pipeline struct {
	logger  *zap.Logger
	fetcher *Fetcher
	thumb   *Thumbnailer
}

// NewPipeline creates an artwork pipeline.
func NewPipeline(logger *zap.Logger, fetcher *Fetcher, thumb *Thumbnailer) *Pipeline {
	return &Pipeline{logger: logger, fetcher: fetcher, thumb: thumb}
}

// RenderIcon fetches url and writes the indicator icon, returning its path.
func (p *Pipeline) RenderIcon(ctx context.Context, url string) (string, error) {
	data, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("fetch artwork: %w", err)
	}
	return p.thumb.Render(data)
}
