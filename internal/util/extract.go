package util

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ExtractPDFText pulls the text layer out of a PDF.
func ExtractPDFText(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	log.Printf("Total pages: %d\n", doc.NumPage())

	var fullText bytes.Buffer
	var lastErr error

	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			lastErr = fmt.Errorf("page %d: failed to extract text: %w", n+1, err)
			log.Println(lastErr)
			continue
		}

		pageText = strings.TrimSpace(pageText)
		if len(pageText) > 0 {
			fullText.WriteString(pageText)
			fullText.WriteString("\n\n")
		}
	}

	result := strings.TrimSpace(fullText.String())

	if len(result) == 0 {
		if lastErr != nil {
			return "", fmt.Errorf("failed to extract text: %w", lastErr)
		}
		return "", fmt.Errorf("no text extracted from PDF (PDF might be empty or scanned)")
	} else if len(result) < 100 {
		return "", fmt.Errorf("content too short for meaningful parsing")
	}

	log.Printf("Total extracted text: %d chars\n", len(result))
	return result, nil
}
