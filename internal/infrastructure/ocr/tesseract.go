package ocr

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/billscan/backend/internal/domain"
	"github.com/disintegration/imaging"
)

// Config holds tesseract settings
type Config struct {
	Binary      string        // binary name or absolute path; default "tesseract"
	Language    string        // default "eng"
	PSM         int           // page segmentation mode; 0 leaves tesseract's default
	TessdataDir string        // optional --tessdata-dir
	Timeout     time.Duration // per-image bound; default 30s
	MinHeight   int           // images shorter than this are upscaled before OCR
	TempDir     string        // where preprocessed images are written; default os.TempDir()
}

// Engine recognizes receipt text by shelling out to tesseract
type Engine struct {
	cfg    Config
	runner Runner
}

// NewEngine creates a tesseract-backed OCR engine
func NewEngine(cfg Config) *Engine {
	if cfg.Binary == "" {
		cfg.Binary = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Engine{cfg: cfg, runner: execRunner{}}
}

// Recognize preprocesses the image and returns tesseract's plain-text output.
// Line breaks are preserved; CRLF is folded to LF and nothing else is touched.
func (e *Engine) Recognize(ctx context.Context, img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("%w: nil image", domain.ErrOCRFailure)
	}

	path, cleanup, err := e.writeTemp(preprocess(img, e.cfg.MinHeight))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrOCRFailure, err)
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	start := time.Now()
	out, _, err := e.runner.Run(ctx, e.cfg.Binary, e.args(path)...)
	if err != nil {
		return "", fmt.Errorf("%w: tesseract: %v", domain.ErrOCRFailure, err)
	}

	text := strings.ReplaceAll(string(out), "\r\n", "\n")
	log.Printf("[OCR] Recognized %d bytes in %dms", len(text), time.Since(start).Milliseconds())
	return text, nil
}

// args builds: tesseract <file> stdout -l <lang> [--psm n] [--tessdata-dir d]
func (e *Engine) args(path string) []string {
	args := []string{path, "stdout", "-l", e.cfg.Language}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(e.cfg.PSM))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	return args
}

func (e *Engine) writeTemp(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp(e.cfg.TempDir, "receipt-*.png")
	if err != nil {
		return "", nil, fmt.Errorf("create temp image: %w", err)
	}
	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }

	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("encode temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close temp image: %w", err)
	}
	return path, cleanup, nil
}

// preprocess converts to grayscale and upscales small photos so tesseract
// sees glyphs at a usable size.
func preprocess(img image.Image, minHeight int) image.Image {
	gray := imaging.Grayscale(img)
	if minHeight > 0 && gray.Bounds().Dy() < minHeight {
		return imaging.Resize(gray, 0, minHeight, imaging.Lanczos)
	}
	return gray
}
