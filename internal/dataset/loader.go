package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/KaramelBytes/sectorlens/internal/logging"
)

// Loader turns raw file content into sheet rows.
type Loader interface {
	CanLoad(name string) bool
	Load(content []byte, opt Options) (sheet string, rows [][]string, err error)
}

// Options controls how a source is read.
type Options struct {
	// Sheet selects a workbook sheet by name; empty means the first sheet.
	Sheet string
	// Delimiter for CSV. If 0, it is sniffed from the first line.
	Delimiter rune
	// HTTPTimeout bounds remote fetches; 0 means 30s.
	HTTPTimeout time.Duration
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// ErrUnsupported indicates no registered loader accepts the source.
var ErrUnsupported = errors.New("unsupported spreadsheet format")

// Load reads source (a file path or an http(s) URL) and returns its first
// (or selected) sheet as a Dataset.
func Load(ctx context.Context, source string, opt Options) (*Dataset, error) {
	start := time.Now()
	content, name, err := readSource(ctx, source, opt.HTTPTimeout)
	if err != nil {
		return nil, err
	}
	for _, l := range registry {
		if !l.CanLoad(name) {
			continue
		}
		sheet, rows, err := l.Load(content, opt)
		if err != nil {
			return nil, err
		}
		ds := FromRows(rows)
		ds.Source = source
		ds.Sheet = sheet
		logging.Logger().Debug("dataset loaded",
			"source", source, "sheet", sheet,
			"columns", len(ds.Headers), "records", len(ds.Records),
			"elapsed", time.Since(start))
		return ds, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, path.Base(name))
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// readSource returns the content plus the name used to pick a loader.
func readSource(ctx context.Context, source string, timeout time.Duration) ([]byte, string, error) {
	if !isRemote(source) {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, "", fmt.Errorf("read file: %w", err)
		}
		return b, source, nil
	}
	u, err := url.Parse(source)
	if err != nil {
		return nil, "", fmt.Errorf("parse url: %w", err)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, "", fmt.Errorf("fetch: unexpected status %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("fetch body: %w", err)
	}
	return b, remoteName(u.Path, resp.Header.Get("Content-Type")), nil
}

// remoteName picks the loader name for a fetched source. A path without an
// extension is named after the response content type; anything that is not
// CSV or TSV is read as a workbook.
func remoteName(p, contentType string) string {
	if path.Ext(p) != "" {
		return p
	}
	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch mediaType {
	case "text/csv", "application/csv":
		return p + ".csv"
	case "text/tab-separated-values":
		return p + ".tsv"
	}
	return p + ".xlsx"
}

func init() {
	Register(xlsxLoader{})
	Register(csvLoader{})
}
