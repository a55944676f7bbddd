// Package htmltext wraps goquery parsing for the handful of page
// interrogations the pipeline performs.
package htmltext

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// Parse builds a goquery document from raw response bytes.
func Parse(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// Visible returns the rendered text of the document with script and style
// content removed.
func Visible(doc *goquery.Document) string {
	clone := doc.Selection.Clone()
	clone.Find("script, style, noscript").Remove()
	return clone.Text()
}
