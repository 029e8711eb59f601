package documents

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const maxTitleLength = 500

// Metadata is the free-form blob stored alongside a document row.
type Metadata struct {
	ReportNumber   string `json:"report_number"`
	Language       string `json:"language"`
	WordCount      int    `json:"word_count"`
	CharacterCount int    `json:"character_count"`
	ReadingTime    int    `json:"reading_time"`
	PdfUrl         string `json:"pdf_url"`
	Source         string `json:"source"`
}

// Row is the destination table schema for one document.
type Row struct {
	Id       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Summary  string   `json:"summary"`
	Url      string   `json:"url"`
	Date     string   `json:"date"`
	Type     string   `json:"type"`
	FileType string   `json:"file_type"`
	Keywords []string `json:"keywords"`
	Metadata Metadata `json:"metadata"`
}

// RowFromDocument maps a document and its extracted text onto the
// destination schema. Every field has a default so a sparse source
// record still produces a complete row.
func RowFromDocument(doc Document, fullText string, now time.Time) Row {
	id := doc.Id
	if id == "" {
		id = "unknown"
	}

	title := doc.Title()
	if len(title) > maxTitleLength {
		title = title[:maxTitleLength]
	}

	date := doc.DocDate
	if date == "" {
		date = now.Format(time.RFC3339)
	}

	docType := doc.DocType
	if docType == "" {
		docType = "Document"
	}

	language := doc.Language
	if language == "" {
		language = "English"
	}

	words := len(strings.Fields(fullText))

	return Row{
		Id:       fmt.Sprintf("wb-pdf-%s", id),
		Title:    title,
		Content:  CleanText(fullText),
		Summary:  Summarize(fullText),
		Url:      doc.Url,
		Date:     date,
		Type:     docType,
		FileType: "pdf",
		Keywords: Keywords(fullText),
		Metadata: Metadata{
			ReportNumber:   doc.ReportNo,
			Language:       language,
			WordCount:      words,
			CharacterCount: len(fullText),
			ReadingTime:    ReadingTime(fullText),
			PdfUrl:         doc.PdfUrl,
			Source:         "World Bank API + PDF",
		},
	}
}

// Store is an upsert-capable sink for document rows, idempotent keyed
// on Row.Id.
type Store interface {
	Upsert(ctx context.Context, row Row) error
}
