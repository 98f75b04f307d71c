// Package document reads resume files into plain text.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrLocatorNotFound means the locator does not point to a readable regular file.
	ErrLocatorNotFound = errors.New("locator not found")
	// ErrUnreadableDocument means the file exists but no text could be extracted.
	ErrUnreadableDocument = errors.New("unreadable document")
)

// Document is the text of one resume.
type Document struct {
	// Name is the display name, the base name of the file.
	Name string
	Text string
}

type Reader interface {
	Read(ctx context.Context, locator string) (*Document, error)
}

// FileReader reads PDF and plain-text files from the local file system.
type FileReader struct{}

func NewFileReader() *FileReader {
	return &FileReader{}
}

func (r *FileReader) Read(ctx context.Context, locator string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := strings.TrimSpace(locator)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %s", ErrLocatorNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrLocatorNotFound, path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrLocatorNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLocatorNotFound, path, err)
	}

	text, err := extractText(path, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableDocument, path, err)
	}

	text = CollapseWhitespace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: %s: no text found", ErrUnreadableDocument, path)
	}

	return &Document{Name: filepath.Base(path), Text: text}, nil
}

// CollapseWhitespace replaces every whitespace run with a single space and trims.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func extractText(path string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractTextFromPDF(data)
	case ".txt", ".md", ".text":
		return string(data), nil
	default:
		if bytes.HasPrefix(data, []byte("%PDF")) {
			return extractTextFromPDF(data)
		}
		return "", fmt.Errorf("unsupported file format %q: only pdf and plain text are allowed", filepath.Ext(path))
	}
}

func extractTextFromPDF(data []byte) (text string, err error) {
	// The pdf package panics on some corrupted inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return buf.String(), nil
}
