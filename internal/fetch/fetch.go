// Package fetch reads input documents from files, URLs, and standard input.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Input size limits. Prose inputs are small; anything larger is almost certainly
// the wrong file.
const (
	MaxFileSizeBytes = 10 * 1024 * 1024
	MaxHTTPSizeBytes = 20 * 1024 * 1024
)

// HTTPRequestTimeout bounds a whole URL fetch.
const HTTPRequestTimeout = 30 * time.Second

const userAgent = "humanize/0.1"

// ErrTooLarge is returned when a source exceeds its size limit.
var ErrTooLarge = errors.New("content exceeds size limit")

// Document is the raw content of one source.
type Document struct {
	Source string
	// ContentType is the media type without parameters, e.g. "text/html". It comes from
	// the HTTP response or the file extension and is empty when unknown.
	ContentType string
	Body        []byte
}

// IsHTML reports whether the document is declared as HTML.
func (d *Document) IsHTML() bool {
	return d.ContentType == "text/html" || d.ContentType == "application/xhtml+xml"
}

// Fetcher reads documents. The zero value is not usable; call New.
type Fetcher struct {
	Client *http.Client
	Stdin  io.Reader

	MaxFileBytes int64
	MaxHTTPBytes int64
}

// New returns a Fetcher reading standard input for "-".
func New() *Fetcher {
	return &Fetcher{
		Client: &http.Client{
			Timeout: HTTPRequestTimeout,
			Transport: &http.Transport{
				DialContext:           (&net.Dialer{Timeout: HTTPRequestTimeout / 6}).DialContext,
				TLSHandshakeTimeout:   HTTPRequestTimeout / 6,
				ResponseHeaderTimeout: HTTPRequestTimeout / 2,
			},
		},
		Stdin:        os.Stdin,
		MaxFileBytes: MaxFileSizeBytes,
		MaxHTTPBytes: MaxHTTPSizeBytes,
	}
}

// Fetch reads source:
//   - "-" reads standard input
//   - http:// and https:// URLs are fetched
//   - anything else is a local file path
func (f *Fetcher) Fetch(ctx context.Context, source string) (*Document, error) {
	switch {
	case source == "-":
		body, err := readLimited(f.Stdin, f.MaxFileBytes, "stdin")
		if err != nil {
			return nil, err
		}
		return &Document{Source: "stdin", Body: body}, nil
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return f.fetchURL(ctx, source)
	default:
		return f.fetchFile(source)
	}
}

func (f *Fetcher) fetchURL(ctx context.Context, url string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for URL %q: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html, text/plain;q=0.9, */*;q=0.5")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP request failed for URL %q: status %d", url, resp.StatusCode)
	}

	// reject oversized responses early when the server declares a length
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		if size, err := strconv.ParseInt(cl, 10, 64); err == nil && size > f.MaxHTTPBytes {
			return nil, fmt.Errorf("%q: %w (%d bytes > %d bytes)", url, ErrTooLarge, size, f.MaxHTTPBytes)
		}
	}

	body, err := readLimited(resp.Body, f.MaxHTTPBytes, url)
	if err != nil {
		return nil, err
	}
	return &Document{Source: url, ContentType: mediaType(resp.Header.Get("Content-Type")), Body: body}, nil
}

func (f *Fetcher) fetchFile(path string) (*Document, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file %q does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access file %q: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%q is a directory", path)
	}
	if info.Size() > f.MaxFileBytes {
		return nil, fmt.Errorf("file %q: %w (%d bytes > %d bytes)", path, ErrTooLarge, info.Size(), f.MaxFileBytes)
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}
	return &Document{Source: path, ContentType: mediaType(mime.TypeByExtension(filepath.Ext(path))), Body: body}, nil
}

// readLimited reads r fully, failing once more than limit bytes arrive.
func readLimited(r io.Reader, limit int64, source string) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("no reader for %s", source)
	}
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%s: %w (more than %d bytes)", source, ErrTooLarge, limit)
	}
	return body, nil
}

func mediaType(header string) string {
	if header == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return mt
}
