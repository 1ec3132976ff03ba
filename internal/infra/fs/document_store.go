package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"price-chart/internal/dom"
	"price-chart/internal/features/chart"
)

var extensions = map[string]string{
	chart.MediaHTML: ".html",
	chart.MediaPNG:  ".png",
	chart.MediaSVG:  ".svg",
}

// Wrapper transforms a fragment body before it is written, e.g. to turn an
// HTML mount snippet into a standalone page.
type Wrapper func(elementID string, body []byte) ([]byte, error)

type saveOptions struct {
	wrappers map[string]Wrapper
}

type SaveOption func(*saveOptions)

// WithWrapper applies w to every fragment of the given media type.
func WithWrapper(mediaType string, w Wrapper) SaveOption {
	return func(o *saveOptions) {
		o.wrappers[mediaType] = w
	}
}

// SaveDocument writes each element's fragments to dir as <id><ext>, with a
// -N suffix for the N-th extra fragment of the same element. It returns the
// written paths.
func SaveDocument(dir string, doc *dom.Document, opts ...SaveOption) ([]string, error) {
	o := saveOptions{wrappers: map[string]Wrapper{}}
	for _, opt := range opts {
		opt(&o)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create charts directory: %w", err)
	}

	var paths []string
	for _, el := range doc.Elements() {
		for i, frag := range el.Children() {
			ext, ok := extensions[frag.MediaType]
			if !ok {
				return paths, fmt.Errorf("element %q: unsupported media type %q", el.ID(), frag.MediaType)
			}

			name := el.ID()
			if i > 0 {
				name = fmt.Sprintf("%s-%d", name, i)
			}

			body := frag.Body
			if w := o.wrappers[frag.MediaType]; w != nil {
				wrapped, err := w(el.ID(), body)
				if err != nil {
					return paths, fmt.Errorf("element %q: %w", el.ID(), err)
				}
				body = wrapped
			}

			path := filepath.Join(dir, name+ext)
			if err := writeFileAtomic(path, body); err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}

var writeFile = os.WriteFile

// writeFileAtomic writes through a .tmp file and rename, and refuses to
// leave an empty file behind.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := writeFile(tmp, data, 0644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write temporary chart file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to rename temporary chart file: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat chart file: %w", err)
	}
	if info.Size() == 0 {
		_ = os.Remove(path)
		return fmt.Errorf("chart file %s is empty after rendering", path)
	}
	return nil
}
