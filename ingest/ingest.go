package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmpty is returned for input that is blank after trimming.
var ErrEmpty = errors.New("empty document")

// Document is one unit of text queued for tokenization.
type Document struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Lang      string    `json:"lang,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// New trims text, validates it and stamps it with a fresh ID.
func New(text, lang string) (Document, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Document{}, ErrEmpty
	}
	return Document{
		ID:        uuid.NewString(),
		Text:      trimmed,
		Lang:      lang,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// maxLine bounds a single input line.
const maxLine = 1 << 20

// Read turns every non-blank line of r into a Document and publishes it on
// the returned channel. Both channels are closed once reading stops.
func Read(ctx context.Context, r io.Reader, lang string) (<-chan Document, <-chan error) {
	out := make(chan Document, 100)
	errs := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errs)

		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLine)
		line := 0
		for sc.Scan() {
			line++
			if err := ctx.Err(); err != nil {
				errs <- err
				return
			}
			doc, err := New(sc.Text(), lang)
			if errors.Is(err, ErrEmpty) {
				continue
			}
			select {
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			case out <- doc:
			}
		}
		if err := sc.Err(); err != nil {
			errs <- fmt.Errorf("ingest: line %d: %w", line+1, err)
		}
	}()
	return out, errs
}
