package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"japaneselinguistics/ingest"
	"japaneselinguistics/linguistics"
	"japaneselinguistics/logger"
	"japaneselinguistics/model"
	"japaneselinguistics/tokenize"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"
)

// analysisFlags are shared by the commands that tokenize text.
type analysisFlags struct {
	lang          string
	stemMode      string
	removeAccents bool
}

func (f *analysisFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.lang, "lang", "ja", "BCP 47 language of the input")
	fs.StringVar(&f.stemMode, "stem-mode", "default", "Stem mode: none, default, all, shortest or best")
	fs.BoolVar(&f.removeAccents, "remove-accents", false, "Remove accents from stems")
}

func (f *analysisFlags) parse() (language.Tag, model.StemMode, error) {
	lang, err := language.Parse(f.lang)
	if err != nil {
		return language.Und, 0, fmt.Errorf("--lang: %w", err)
	}
	mode, err := model.ParseStemMode(f.stemMode)
	if err != nil {
		return language.Und, 0, fmt.Errorf("--stem-mode: %w", err)
	}
	return lang, mode, nil
}

// readText joins args, or reads stdin when there are none.
func readText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

func newTokenizeCmd() *cobra.Command {
	var (
		af      analysisFlags
		file    string
		dumpDir string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "tokenize [text]",
		Short: "Print the tokens of text as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, mode, err := af.parse()
			if err != nil {
				return err
			}
			l, err := newLinguistics()
			if err != nil {
				return err
			}
			if dumpDir != "" {
				if err := logger.InitLogs(dumpDir); err != nil {
					return fmt.Errorf("init dump dir: %w", err)
				}
			}

			if file != "" {
				opts := tokenize.StartOptions{
					Workers:       workers,
					Lang:          lang,
					Mode:          mode,
					RemoveAccents: af.removeAccents,
					Logger:        slog.Default(),
				}
				return tokenizeFile(cmd, l, file, af.lang, dumpDir, opts)
			}

			text, err := readText(cmd, args)
			if err != nil {
				return err
			}
			tokens := l.Tokenize(text, lang, mode, af.removeAccents)
			if dumpDir != "" {
				if err := logger.LogJSON(dumpDir, "tokens", tokens); err != nil {
					slog.Warn("failed to write token dump", "error", err)
				}
			}
			return writeJSON(cmd.OutOrStdout(), tokens)
		},
	}

	af.register(cmd.Flags())
	cmd.Flags().StringVar(&file, "file", "", "Tokenize every line of this file as a document")
	cmd.Flags().StringVar(&dumpDir, "dump-dir", "", "Write the tokens of each document as JSON into this directory")
	cmd.Flags().IntVar(&workers, "workers", 4, "Concurrent tokenizer workers for --file")

	return cmd
}

// tokenizeFile streams the lines of path through the worker pool and prints
// one JSON result per line, in completion order.
func tokenizeFile(cmd *cobra.Command, l *linguistics.Linguistics, path, lang, dumpDir string, opts tokenize.StartOptions) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	docs, readErrs := ingest.Read(ctx, f, lang)
	results := tokenize.Start(ctx, l, docs, opts)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	failed := 0
	for res := range results {
		if res.Err != nil {
			failed++
			slog.Warn("document not tokenized", "id", res.Document.ID, "error", res.Err)
			continue
		}
		if err := enc.Encode(res); err != nil {
			return err
		}
		if dumpDir != "" {
			if err := logger.LogJSON(dumpDir, res.Document.ID, res); err != nil {
				slog.Warn("failed to write token dump", "id", res.Document.ID, "error", err)
			}
		}
	}
	if err := <-readErrs; err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d documents could not be tokenized", failed)
	}
	return nil
}

func newStemCmd() *cobra.Command {
	var af analysisFlags

	cmd := &cobra.Command{
		Use:   "stem [text]",
		Short: "Print the stems of the indexable tokens, one per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, mode, err := af.parse()
			if err != nil {
				return err
			}
			l, err := newLinguistics()
			if err != nil {
				return err
			}
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}
			return writeLines(cmd.OutOrStdout(), l.Stem(text, lang, mode, af.removeAccents))
		},
	}

	af.register(cmd.Flags())
	return cmd
}

func newSegmentCmd() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "segment [text]",
		Short: "Print the original text of the indexable tokens, one per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := language.Parse(lang)
			if err != nil {
				return fmt.Errorf("--lang: %w", err)
			}
			l, err := newLinguistics()
			if err != nil {
				return err
			}
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}
			return writeLines(cmd.OutOrStdout(), l.Segment(text, tag))
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "ja", "BCP 47 language of the input")
	return cmd
}

func newGramsCmd() *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "grams [text]",
		Short: "Print the n-grams of text, one per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}
			l := linguistics.Simple(slog.Default())
			grams, err := l.Grams(text, size)
			if err != nil {
				return err
			}
			lines := make([]string, len(grams))
			for i, g := range grams {
				lines[i] = g.Text(text)
			}
			return writeLines(cmd.OutOrStdout(), lines)
		},
	}

	cmd.Flags().IntVarP(&size, "size", "n", 2, "Gram size in characters")
	return cmd
}

func newNormalizeCmd() *cobra.Command {
	var (
		lang          string
		removeAccents bool
	)

	cmd := &cobra.Command{
		Use:   "normalize [text]",
		Short: "Print text after NFKC normalization",
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := language.Parse(lang)
			if err != nil {
				return fmt.Errorf("--lang: %w", err)
			}
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}
			l := linguistics.Simple(slog.Default())
			out := l.Normalize(text)
			if removeAccents {
				out = l.AccentDrop(out, tag)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "ja", "BCP 47 language of the input")
	cmd.Flags().BoolVar(&removeAccents, "remove-accents", false, "Remove accents after normalizing")
	return cmd
}
