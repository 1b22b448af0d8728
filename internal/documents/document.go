// Package documents implements document ingestion for Lector: turning an
// uploaded file into the plain-text content the agent workflow operates on,
// OCRing PDF pages through the completion gateway.
package documents

// Type identifies the source format of the loaded document.
type Type string

// Document source types. TypeEmpty blocks workflow execution.
const (
	TypePDF   Type = "pdf"
	TypeTXT   Type = "txt"
	TypeEmpty Type = "empty"
)

// Document is the material agents operate on: concatenated plain text with
// page-delimiter annotations for multi-page sources.
type Document struct {
	Filename  string `json:"filename"`
	Type      Type   `json:"type"`
	Content   string `json:"content"`
	PageCount int    `json:"page_count,omitempty"`

	// OCRTruncated reports that a mid-document OCR failure stopped page
	// processing early; Content ends with the failure marker.
	OCRTruncated bool `json:"ocr_truncated,omitempty"`
}

// Empty reports whether the document has no usable content.
func (d *Document) Empty() bool {
	return d == nil || d.Type == TypeEmpty || d.Content == ""
}
