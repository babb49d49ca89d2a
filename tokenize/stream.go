package tokenize

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"japaneselinguistics/ingest"
	"japaneselinguistics/model"

	"golang.org/x/text/language"
)

// Stream tokenizes input and delivers the tokens on a channel. This is useful
// for building a concurrent pipeline.
func Stream(ctx context.Context, t Tokenizer, input string, lang language.Tag, mode model.StemMode, removeAccents bool) (<-chan model.Token, <-chan error) {
	out := make(chan model.Token, 8)
	errs := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errs)
		for _, tk := range t.Tokenize(input, lang, mode, removeAccents) {
			select {
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			case out <- tk:
			}
		}
	}()
	return out, errs
}

// Result pairs an ingested document with its tokens.
type Result struct {
	Document ingest.Document `json:"document"`
	Tokens   []model.Token   `json:"tokens"`
	Err      error           `json:"-"`
}

// StartOptions configure Start.
type StartOptions struct {
	Workers       int
	Lang          language.Tag // used when a document carries no language
	Mode          model.StemMode
	RemoveAccents bool
	Logger        *slog.Logger
}

// Start launches workers that consume documents from in, tokenize them with t
// and publish results. The returned channel is closed once in is closed and
// drained or ctx is done. Results arrive in completion order.
func Start(ctx context.Context, t Tokenizer, in <-chan ingest.Document, opts StartOptions) <-chan Result {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	out := make(chan Result, 100)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case doc, ok := <-in:
					if !ok {
						return
					}
					res := Result{Document: doc}
					lang := opts.Lang
					if doc.Lang != "" {
						tag, err := language.Parse(doc.Lang)
						if err != nil {
							res.Err = fmt.Errorf("document %s: %w", doc.ID, err)
						}
						lang = tag
					}
					if res.Err == nil {
						res.Tokens = t.Tokenize(doc.Text, lang, opts.Mode, opts.RemoveAccents)
						logger.Debug("tokenized document", "worker", id, "id", doc.ID, "tokens", len(res.Tokens))
					}
					select {
					case <-ctx.Done():
						return
					case out <- res:
					}
				}
			}
		}(w)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}
