package documents

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	dcconfig "github.com/JaimeStill/document-context/pkg/config"
	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/image"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/sync/errgroup"
)

const sourcePDF = "source.pdf"

// OCRService extracts text from a single page image. The completion
// gateway's designated vision backend satisfies this.
type OCRService interface {
	PerformOCR(ctx context.Context, image []byte) (string, error)
}

// System defines the public contract for document ingestion.
type System interface {
	// Ingest produces a Document from an uploaded file. Plain text passes
	// through verbatim; PDFs are rendered page by page and OCRed in page
	// order through the gateway's vision backend.
	Ingest(ctx context.Context, filename string, data []byte) (*Document, error)
}

type ingestor struct {
	ocr    OCRService
	logger *slog.Logger
}

// New creates a document ingestion system backed by the given OCR service.
func New(ocr OCRService, logger *slog.Logger) System {
	return &ingestor{
		ocr:    ocr,
		logger: logger.With("system", "documents"),
	}
}

func (s *ingestor) Ingest(ctx context.Context, filename string, data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &Document{Filename: filename, Type: TypeEmpty}, nil
	}

	switch detectType(filename, data) {
	case TypeTXT:
		return &Document{
			Filename: filename,
			Type:     TypeTXT,
			Content:  string(data),
		}, nil
	case TypePDF:
		return s.ingestPDF(ctx, filename, data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filename)
	}
}

func (s *ingestor) ingestPDF(ctx context.Context, filename string, data []byte) (*Document, error) {
	pageCount, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	images, err := renderPages(ctx, data)
	if err != nil {
		return nil, err
	}

	content, truncated := TranscribePages(ctx, s.ocr, images)

	s.logger.Info(
		"document ingested",
		"filename", filename,
		"pages", pageCount,
		"ocr_truncated", truncated,
	)

	return &Document{
		Filename:     filename,
		Type:         TypePDF,
		Content:      content,
		PageCount:    pageCount,
		OCRTruncated: truncated,
	}, nil
}

// TranscribePages OCRs rendered page images sequentially in page order and
// assembles the annotated text content. Each page becomes a
// "--- Page {n} ---" block; blocks are joined by a blank line. A failed
// page substitutes "[OCR Failed: {message}]" for its text and stops
// processing; the second return reports that truncation.
func TranscribePages(ctx context.Context, ocr OCRService, pages [][]byte) (string, bool) {
	var blocks []string

	for i, img := range pages {
		text, err := ocr.PerformOCR(ctx, img)
		if err != nil {
			blocks = append(blocks, pageBlock(i+1, fmt.Sprintf("[OCR Failed: %s]", err.Error())))
			return strings.Join(blocks, "\n\n"), true
		}
		blocks = append(blocks, pageBlock(i+1, text))
	}

	return strings.Join(blocks, "\n\n"), false
}

func pageBlock(n int, text string) string {
	return fmt.Sprintf("--- Page %d ---\n%s", n, text)
}

// renderPages rasterizes every PDF page to PNG bytes with bounded
// concurrency. Rendering is local work; the per-page OCR round trips stay
// sequential in the caller.
func renderPages(ctx context.Context, data []byte) ([][]byte, error) {
	tempDir, err := os.MkdirTemp("", "lector-ingest-*")
	if err != nil {
		return nil, fmt.Errorf("%w: create temp directory: %w", ErrRenderFailed, err)
	}
	defer os.RemoveAll(tempDir)

	pdfPath := filepath.Join(tempDir, sourcePDF)
	if err := os.WriteFile(pdfPath, data, 0600); err != nil {
		return nil, fmt.Errorf("%w: write temp pdf: %w", ErrRenderFailed, err)
	}

	pdfDoc, err := document.OpenPDF(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf: %w", ErrRenderFailed, err)
	}
	defer pdfDoc.Close()

	renderer, err := image.NewImageMagickRenderer(dcconfig.DefaultImageConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: create renderer: %w", ErrRenderFailed, err)
	}

	allPages, err := pdfDoc.ExtractAllPages()
	if err != nil {
		return nil, fmt.Errorf("%w: extract pages: %w", ErrRenderFailed, err)
	}

	images := make([][]byte, len(allPages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(renderWorkerCount(len(allPages)))

	for i, page := range allPages {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			img, err := page.ToImage(renderer, nil)
			if err != nil {
				return fmt.Errorf("render page %d: %w", i+1, err)
			}

			images[i] = img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	return images, nil
}

func renderWorkerCount(pageCount int) int {
	return max(min(runtime.NumCPU(), pageCount), 1)
}

func detectType(filename string, data []byte) Type {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return TypePDF
	case ".txt", ".md", ".text":
		return TypeTXT
	}

	switch contentType := http.DetectContentType(data); {
	case contentType == "application/pdf":
		return TypePDF
	case strings.HasPrefix(contentType, "text/"):
		return TypeTXT
	}

	return Type("")
}
