package documents_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/JaimeStill/lector/internal/documents"
)

type fakeOCR struct {
	pages []string
	calls int
	fail  int
}

func (o *fakeOCR) PerformOCR(ctx context.Context, image []byte) (string, error) {
	o.calls++
	if o.fail > 0 && o.calls == o.fail {
		return "", errors.New("vision backend rejected the page")
	}
	if o.calls <= len(o.pages) {
		return o.pages[o.calls-1], nil
	}
	return "", errors.New("unexpected OCR call")
}

func newIngestor(ocr *fakeOCR) documents.System {
	return documents.New(ocr, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestIngestText(t *testing.T) {
	t.Run("txt content passes through verbatim", func(t *testing.T) {
		content := "Line one.\nLine two.\n"

		doc, err := newIngestor(&fakeOCR{}).Ingest(context.Background(), "notes.txt", []byte(content))
		if err != nil {
			t.Fatalf("Ingest error: %v", err)
		}

		if doc.Type != documents.TypeTXT {
			t.Errorf("Type = %q, want txt", doc.Type)
		}
		if doc.Content != content {
			t.Errorf("Content = %q, want verbatim input", doc.Content)
		}
	})

	t.Run("markdown treated as text", func(t *testing.T) {
		doc, err := newIngestor(&fakeOCR{}).Ingest(context.Background(), "README.md", []byte("# Title"))
		if err != nil {
			t.Fatalf("Ingest error: %v", err)
		}
		if doc.Type != documents.TypeTXT {
			t.Errorf("Type = %q, want txt", doc.Type)
		}
	})

	t.Run("extensionless text detected by content", func(t *testing.T) {
		doc, err := newIngestor(&fakeOCR{}).Ingest(context.Background(), "LICENSE", []byte("Plain text body."))
		if err != nil {
			t.Fatalf("Ingest error: %v", err)
		}
		if doc.Type != documents.TypeTXT {
			t.Errorf("Type = %q, want txt", doc.Type)
		}
	})
}

func TestIngestEmpty(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"no bytes", nil},
		{"whitespace only", []byte("  \n\t  ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := newIngestor(&fakeOCR{}).Ingest(context.Background(), "blank.txt", tt.data)
			if err != nil {
				t.Fatalf("Ingest error: %v", err)
			}

			if doc.Type != documents.TypeEmpty {
				t.Errorf("Type = %q, want empty", doc.Type)
			}
			if !doc.Empty() {
				t.Error("Empty() = false, want true")
			}
		})
	}
}

func TestTranscribePages(t *testing.T) {
	pageImages := [][]byte{[]byte("img1"), []byte("img2"), []byte("img3")}

	t.Run("pages joined with separator annotations", func(t *testing.T) {
		ocr := &fakeOCR{pages: []string{"First page text.", "Second page text.", "Third page text."}}

		content, truncated := documents.TranscribePages(context.Background(), ocr, pageImages)
		if truncated {
			t.Error("truncated = true for clean transcription")
		}

		want := "--- Page 1 ---\nFirst page text.\n\n" +
			"--- Page 2 ---\nSecond page text.\n\n" +
			"--- Page 3 ---\nThird page text."
		if content != want {
			t.Errorf("content = %q, want %q", content, want)
		}
	})

	t.Run("failure substitutes marker and stops", func(t *testing.T) {
		ocr := &fakeOCR{pages: []string{"First page text."}, fail: 2}

		content, truncated := documents.TranscribePages(context.Background(), ocr, pageImages)
		if !truncated {
			t.Error("truncated = false after mid-document failure")
		}

		want := "--- Page 1 ---\nFirst page text.\n\n" +
			"--- Page 2 ---\n[OCR Failed: vision backend rejected the page]"
		if content != want {
			t.Errorf("content = %q, want %q", content, want)
		}

		if ocr.calls != 2 {
			t.Errorf("OCR calls = %d, want 2; pages after a failure must not be processed", ocr.calls)
		}
	})

	t.Run("no pages", func(t *testing.T) {
		content, truncated := documents.TranscribePages(context.Background(), &fakeOCR{}, nil)
		if content != "" || truncated {
			t.Errorf("TranscribePages = %q, %v, want empty and not truncated", content, truncated)
		}
	})
}

func TestIngestUnsupported(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02, 0x03}

	_, err := newIngestor(&fakeOCR{}).Ingest(context.Background(), "blob.bin", data)
	if !errors.Is(err, documents.ErrUnsupportedFile) {
		t.Errorf("err = %v, want ErrUnsupportedFile", err)
	}
}

func TestDocumentEmpty(t *testing.T) {
	tests := []struct {
		name string
		doc  *documents.Document
		want bool
	}{
		{"nil document", nil, true},
		{"empty type", &documents.Document{Type: documents.TypeEmpty}, true},
		{"no content", &documents.Document{Type: documents.TypeTXT}, true},
		{"has content", &documents.Document{Type: documents.TypeTXT, Content: "text"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.doc.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}
