package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// parseMarkup collects the text nodes of an HTML/XHTML/XML document.
// Content of <script> and <style> is dropped; <title> becomes the title.
func parseMarkup(data []byte) (*Result, error) {
	z := html.NewTokenizer(bytes.NewReader(data))

	var (
		body    strings.Builder
		title   strings.Builder
		skip    int
		inTitle bool
	)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("parser: markup: %w", err)
			}
			return &Result{
				Title: strings.TrimSpace(title.String()),
				Body:  body.String(),
			}, nil
		case html.StartTagToken:
			switch tagName(z) {
			case "script", "style":
				skip++
			case "title":
				inTitle = true
			}
		case html.EndTagToken:
			switch tagName(z) {
			case "script", "style":
				if skip > 0 {
					skip--
				}
			case "title":
				inTitle = false
			}
		case html.TextToken:
			if skip > 0 {
				continue
			}
			text := z.Text()
			if inTitle {
				title.Write(text)
			}
			if len(bytes.TrimSpace(text)) == 0 {
				continue
			}
			body.Write(text)
			body.WriteByte(' ')
		}
	}
}

func tagName(z *html.Tokenizer) string {
	name, _ := z.TagName()
	return strings.ToLower(string(name))
}
