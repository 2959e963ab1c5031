package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/genricoloni/dailyblessing/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	bundledName     = "quotes.json"
	_maxCatalogSize = 4 * 1024 * 1024 // 4 MB
)

//go:embed quotes.json
var bundledFS embed.FS

// quoteNamespace seeds the name-based identifiers of quote records
var quoteNamespace = uuid.MustParse("5b0f7c1e-2d4a-4c39-9e57-8a1d3f6b2c90")

var validate = validator.New(validator.WithRequiredStructEnabled())

// entry is one quote as it appears in a catalog file
type entry struct {
	Text     string `json:"text"     yaml:"text"     toml:"text"     validate:"required"`
	Author   string `json:"author"   yaml:"author"   toml:"author"   validate:"required"`
	Category string `json:"category" yaml:"category" toml:"category" validate:"required"`
}

// tomlDocument wraps entries because TOML has no top-level arrays
type tomlDocument struct {
	Quotes []entry `toml:"quotes"`
}

// Example is the record used when no catalog can be loaded
func Example() domain.QuoteRecord {
	return newRecord(entry{
		Text:     "Believe you can and you're halfway there.",
		Author:   "Theodore Roosevelt",
		Category: "motivation",
	})
}

// QuoteID returns the stable identifier for a quote's text and author
func QuoteID(text, author string) uuid.UUID {
	return uuid.NewSHA1(quoteNamespace, []byte(text+"\x00"+author))
}

// Loader reads the quote catalog from a file system
type Loader struct {
	logger *zap.Logger
	fsys   fs.FS
	name   string
}

// NewLoader creates a loader for the configured catalog file,
// or for the bundled catalog when no path is configured
func NewLoader(logger *zap.Logger, cfg domain.Config) *Loader {
	p := cfg.GetCatalogPath()
	if p == "" {
		return NewFSLoader(logger, bundledFS, bundledName)
	}
	return NewFSLoader(logger, os.DirFS(filepath.Dir(p)), filepath.Base(p))
}

// NewFSLoader creates a loader reading name from fsys
func NewFSLoader(logger *zap.Logger, fsys fs.FS, name string) *Loader {
	return &Loader{logger: logger, fsys: fsys, name: name}
}

// Load returns the catalog. It never fails: any problem with the source
// yields a catalog holding only Example().
func (l *Loader) Load(ctx context.Context) domain.Catalog {
	quotes, err := l.load(ctx)
	if err != nil {
		l.logger.Warn("Could not load quote catalog, using built-in example",
			zap.String("source", l.name),
			zap.Error(err))
		return domain.Catalog{Example()}
	}

	l.logger.Info("Quote catalog loaded",
		zap.String("source", l.name),
		zap.Int("quotes", len(quotes)))
	return quotes
}

func (l *Loader) load(ctx context.Context) (domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := l.read()
	if err != nil {
		return nil, err
	}

	entries, err := decode(l.name, data)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.New("catalog has no quotes")
	}

	quotes := make(domain.Catalog, 0, len(entries))
	seen := make(map[uuid.UUID]struct{}, len(entries))
	for i, e := range entries {
		if err := validate.Struct(e); err != nil {
			return nil, fmt.Errorf("quote %d is malformed: %w", i, err)
		}

		rec := newRecord(e)
		if _, dup := seen[rec.ID]; dup {
			l.logger.Debug("Skipping duplicate quote",
				zap.Int("index", i),
				zap.String("author", e.Author))
			continue
		}
		seen[rec.ID] = struct{}{}
		quotes = append(quotes, rec)
	}

	return quotes, nil
}

// read returns the source bytes, refusing anything larger than _maxCatalogSize
func (l *Loader) read() ([]byte, error) {
	f, err := l.fsys.Open(l.name)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, _maxCatalogSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	if len(data) > _maxCatalogSize {
		return nil, fmt.Errorf("catalog exceeds %d bytes", _maxCatalogSize)
	}
	return data, nil
}

// decode picks the format from the file extension; unknown extensions are read as JSON
func decode(name string, data []byte) ([]entry, error) {
	var entries []entry

	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to decode YAML catalog: %w", err)
		}
	case ".toml":
		var doc tomlDocument
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode TOML catalog: %w", err)
		}
		entries = doc.Quotes
	default:
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to decode JSON catalog: %w", err)
		}
	}

	return entries, nil
}

func newRecord(e entry) domain.QuoteRecord {
	return domain.QuoteRecord{
		ID:       QuoteID(e.Text, e.Author),
		Text:     e.Text,
		Author:   e.Author,
		Category: e.Category,
	}
}
