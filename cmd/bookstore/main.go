package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"bookstore/internal/book"
	"bookstore/internal/bookerr"
	"bookstore/internal/config"
	"bookstore/internal/isbn"
	"bookstore/internal/logging"
	"bookstore/internal/rating"
	"bookstore/internal/storage"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	exitOK       = 0
	exitRejected = 1
	exitUsage    = 2
)

const usage = `usage: bookstore <command> [flags]

commands:
  book     validate a book and print it with its age
  rate     validate a rating
  stats    record a comma-separated list of ratings for one book and print
           their average and count
  catalog  read JSON lines of {"book":{...}} / {"rating":{...}} from stdin
           and print rating statistics per book`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	os.Exit(run(context.Background(), os.Args[1:], cfg, logger, os.Stdin, os.Stdout))
}

type app struct {
	logger  *slog.Logger
	books   *book.Service
	ratings *rating.Service
}

func newApp(cfg config.Config, logger *slog.Logger) *app {
	books := book.NewService(book.NewStorageRepo(storage.NewMemory()))
	var finder rating.BookFinder
	if cfg.StrictRatings {
		finder = books
	}
	return &app{
		logger:  logger,
		books:   books,
		ratings: rating.NewService(rating.NewStorageRepo(storage.NewMemory()), finder),
	}
}

func run(ctx context.Context, args []string, cfg config.Config, logger *slog.Logger, stdin io.Reader, stdout io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stdout, usage)
		return exitUsage
	}
	a := newApp(cfg, logger)

	switch args[0] {
	case "book":
		return a.runBook(ctx, args[1:], stdout)
	case "rate":
		return a.runRate(ctx, args[1:], stdout)
	case "stats":
		return a.runStats(ctx, args[1:], stdout)
	case "catalog":
		return a.runCatalog(ctx, stdin, stdout)
	case "help", "-h", "--help":
		fmt.Fprintln(stdout, usage)
		return exitOK
	default:
		logger.Error("unknown command", "command", args[0])
		fmt.Fprintln(stdout, usage)
		return exitUsage
	}
}

func (a *app) runBook(ctx context.Context, args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("book", flag.ContinueOnError)
	fs.SetOutput(stdout)
	var (
		in          book.NewBookInput
		description string
	)
	fs.StringVar(&in.ISBN, "isbn", "", "ISBN-13, hyphens and spaces allowed")
	fs.StringVar(&in.Title, "title", "", "title")
	fs.StringVar(&in.Author, "author", "", "author")
	fs.IntVar(&in.PublicationYear, "year", 0, "publication year")
	fs.StringVar(&description, "description", "", "optional description")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "description" {
			in.Description = &description
		}
	})

	b, err := a.books.Register(ctx, in)
	if err != nil {
		return a.reject(err, "isbn", in.ISBN)
	}
	a.logger.Info("book accepted", "isbn", b.ISBN, "age", b.Age())
	return a.write(stdout, map[string]any{"book": b, "age": b.Age()})
}

func (a *app) runRate(ctx context.Context, args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("rate", flag.ContinueOnError)
	fs.SetOutput(stdout)
	var (
		id, value int
		bookISBN  string
	)
	fs.StringVar(&bookISBN, "isbn", "", "ISBN of the rated book")
	fs.IntVar(&id, "id", 0, "rating id")
	fs.IntVar(&value, "rating", -1, "rating between 0 and 5")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	// A single rating has no catalog to check against.
	r, err := rating.New(bookISBN, id, value)
	if err != nil {
		return a.reject(err, "isbn", bookISBN, "id", id)
	}
	a.logger.Info("rating accepted", "isbn", r.ISBN, "id", r.ID, "rating", r.Value)
	return a.write(stdout, r)
}

func (a *app) runStats(ctx context.Context, args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	fs.SetOutput(stdout)
	var bookISBN, list string
	fs.StringVar(&bookISBN, "isbn", "", "ISBN of the rated book")
	fs.StringVar(&list, "ratings", "", "comma-separated ratings, e.g. 4,5,3")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	values, err := parseRatings(list)
	if err != nil {
		a.logger.Error("invalid ratings list", "ratings", list, "error", err)
		return exitUsage
	}
	for i, v := range values {
		if _, err := a.ratings.Rate(ctx, bookISBN, i+1, v); err != nil {
			return a.reject(err, "isbn", bookISBN, "id", i+1)
		}
	}

	st, err := a.ratings.Stats(ctx, bookISBN)
	if err != nil {
		return a.reject(err, "isbn", bookISBN)
	}
	a.logger.Info("rating stats", "isbn", bookISBN, "average", st.Average, "count", st.Count)
	return a.write(stdout, st)
}

// parseRatings splits a comma-separated list of integers. An empty list
// yields no ratings.
func parseRatings(list string) ([]int, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	parts := strings.Split(list, ",")
	values := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("rating %q: %w", p, err)
		}
		values = append(values, v)
	}
	return values, nil
}

type catalogEntry struct {
	Book   *bookEntry   `json:"book,omitempty"`
	Rating *ratingEntry `json:"rating,omitempty"`
}

type bookEntry struct {
	ISBN            string  `json:"isbn"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	PublicationYear int     `json:"publication_year"`
	Description     *string `json:"description"`
}

type ratingEntry struct {
	ISBN   string `json:"isbn"`
	ID     int    `json:"id"`
	Rating int    `json:"rating"`
}

type catalogSummary struct {
	Books    int                     `json:"books"`
	Ratings  int                     `json:"ratings"`
	Rejected int                     `json:"rejected"`
	Stats    map[string]rating.Stats `json:"stats"`
}

func (a *app) runCatalog(ctx context.Context, stdin io.Reader, stdout io.Writer) int {
	scanner := bufio.NewScanner(stdin)
	summary := catalogSummary{Stats: make(map[string]rating.Stats)}
	rated := make(map[string]string)

	for line := 1; scanner.Scan(); line++ {
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var entry catalogEntry
		if !json.Valid(raw) {
			a.logger.Error("malformed catalog input", "line", line)
			return exitUsage
		}
		if err := json.Unmarshal(raw, &entry); err != nil {
			a.logger.Error("malformed catalog input", "line", line, "error", err)
			return exitUsage
		}

		switch {
		case entry.Book != nil:
			_, err := a.books.Register(ctx, book.NewBookInput{
				ISBN:            entry.Book.ISBN,
				Title:           entry.Book.Title,
				Author:          entry.Book.Author,
				PublicationYear: entry.Book.PublicationYear,
				Description:     entry.Book.Description,
			})
			if err != nil {
				a.reject(err, "line", line, "isbn", entry.Book.ISBN)
				summary.Rejected++
				continue
			}
			summary.Books++
		case entry.Rating != nil:
			r, err := a.ratings.Rate(ctx, entry.Rating.ISBN, entry.Rating.ID, entry.Rating.Rating)
			if err != nil {
				a.reject(err, "line", line, "isbn", entry.Rating.ISBN)
				summary.Rejected++
				continue
			}
			rated[isbn.Normalize(r.ISBN)] = r.ISBN
			summary.Ratings++
		default:
			a.logger.Warn("empty catalog entry", "line", line)
			summary.Rejected++
		}
	}

	if err := scanner.Err(); err != nil {
		a.logger.Error("read catalog input", "error", err)
		return exitUsage
	}

	keys := make([]string, 0, len(rated))
	for k := range rated {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		st, err := a.ratings.Stats(ctx, rated[k])
		if err != nil {
			a.logger.Error("rating stats", "isbn", k, "error", err)
			return exitRejected
		}
		summary.Stats[k] = st
	}

	if code := a.write(stdout, summary); code != exitOK {
		return code
	}
	if summary.Rejected > 0 {
		return exitRejected
	}
	return exitOK
}

// reject logs a failed validation or lookup and picks the exit code.
func (a *app) reject(err error, attrs ...any) int {
	if reason, ok := bookerr.Reason(err); ok {
		a.logger.Warn("rejected", append(attrs, "reason", reason, "error", err)...)
		return exitRejected
	}
	if errors.Is(err, bookerr.ErrDuplicate) || errors.Is(err, bookerr.ErrNotFound) {
		a.logger.Warn("rejected", append(attrs, "error", err)...)
		return exitRejected
	}
	a.logger.Error("unexpected failure", append(attrs, "error", err)...)
	return exitRejected
}

func (a *app) write(stdout io.Writer, v any) int {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		a.logger.Error("write output", "error", err)
		return exitRejected
	}
	return exitOK
}
