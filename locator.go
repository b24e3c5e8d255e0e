package sylva

import (
	"bufio"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// ErrMalformedLocation reports a locator whose components cannot form a
// resolvable address. It is returned by the stream-opening operations and
// never by Complete.
var ErrMalformedLocation = errors.New("sylva: malformed resource location")

// gzip stream signature, first two bytes.
const (
	gzipMagic0 = 0x1f
	gzipMagic1 = 0x8b
)

// Locator identifies an external resource by its normalized components.
// Equality and hashing are defined over the normalized tuple, so two locators
// built from different textual forms of the same address compare equal. An
// empty component and an absent component are the same thing; absent ports
// are stored as -1.
type Locator struct {
	Scheme   string
	Host     string
	Port     int
	Path     string
	Fragment string
}

// NewLocator parses a location string into its normalized components.
// Parsing never opens the resource; a syntactically valid but unresolvable
// location parses fine and fails later at open time.
func NewLocator(raw string) (*Locator, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLocation, err)
	}
	l := &Locator{
		Scheme:   strings.ToLower(u.Scheme),
		Host:     strings.ToLower(u.Hostname()),
		Port:     -1,
		Path:     u.Path,
		Fragment: u.Fragment,
	}
	if p := u.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: bad port %q", ErrMalformedLocation, p)
		}
		l.Port = n
	}
	return l, nil
}

// Complete reports whether the locator is well-formed enough to attempt
// opening. It never returns an error and never touches the resource.
func (l *Locator) Complete() bool {
	switch l.Scheme {
	case "http", "https":
		return l.Host != ""
	case "file", "":
		return l.Path != ""
	default:
		return l.Scheme != ""
	}
}

// String reconstructs the canonical textual form from the normalized
// components.
func (l *Locator) String() string {
	var b strings.Builder
	if l.Scheme != "" {
		b.WriteString(l.Scheme)
		b.WriteString(":")
	}
	if l.Host != "" {
		b.WriteString("//")
		b.WriteString(l.Host)
		if l.Port >= 0 {
			b.WriteString(":")
			b.WriteString(strconv.Itoa(l.Port))
		}
	}
	b.WriteString(l.Path)
	if l.Fragment != "" {
		b.WriteString("#")
		b.WriteString(l.Fragment)
	}
	return b.String()
}

// Equal compares the normalized component tuples.
func (l *Locator) Equal(o *Locator) bool {
	if l == o {
		return true
	}
	if l == nil || o == nil {
		return false
	}
	return l.Scheme == o.Scheme &&
		l.Host == o.Host &&
		l.Port == o.Port &&
		l.Path == o.Path &&
		l.Fragment == o.Fragment
}

// Hash returns a hash of the normalized components, consistent with Equal.
func (l *Locator) Hash() uint32 {
	h := fnv.New32a()
	io.WriteString(h, l.Scheme)
	h.Write([]byte{0})
	io.WriteString(h, l.Host)
	h.Write([]byte{0})
	io.WriteString(h, strconv.Itoa(l.Port))
	h.Write([]byte{0})
	io.WriteString(h, l.Path)
	h.Write([]byte{0})
	io.WriteString(h, l.Fragment)
	return h.Sum32()
}

// OpenStreamRaw opens the resource as-is, with no decompression.
func (l *Locator) OpenStreamRaw(ctx context.Context) (io.ReadCloser, error) {
	if !l.Complete() {
		return nil, fmt.Errorf("%w: %q", ErrMalformedLocation, l.String())
	}
	switch l.Scheme {
	case "file", "":
		return os.Open(l.Path)
	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.String(), nil)
		if err != nil {
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("sylva: open %s: %s", l.String(), resp.Status)
		}
		return resp.Body, nil
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrMalformedLocation, l.Scheme)
	}
}

// OpenStream opens the resource and transparently unwraps a gzip payload.
// The first two bytes are peeked without consuming: the gzip signature
// selects decompression, and anything else passes through with byte 0
// unmodified.
func (l *Locator) OpenStream(ctx context.Context) (io.ReadCloser, error) {
	raw, err := l.OpenStreamRaw(ctx)
	if err != nil {
		return nil, err
	}
	r, err := decompressStream(raw)
	if err != nil {
		raw.Close()
		return nil, err
	}
	return &streamReadCloser{Reader: r, underlying: raw}, nil
}

// decompressStream inspects the first two bytes of raw and, on the gzip
// signature, wraps it in a gzip reader. Anything else passes through
// untouched; a stream shorter than two bytes is returned as-is.
func decompressStream(raw io.Reader) (io.Reader, error) {
	br := bufio.NewReader(raw)
	head, err := br.Peek(2)
	if err != nil {
		// Short or empty stream: nothing to sniff.
		if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
			return br, nil
		}
		return nil, err
	}
	if head[0] == gzipMagic0 && head[1] == gzipMagic1 {
		return gzip.NewReader(br)
	}
	return br, nil
}

// streamReadCloser reads from the (possibly decompressing) reader and closes
// both it and the underlying source.
type streamReadCloser struct {
	io.Reader
	underlying io.Closer
}

func (s *streamReadCloser) Close() error {
	var first error
	if c, ok := s.Reader.(io.Closer); ok {
		first = c.Close()
	}
	if err := s.underlying.Close(); err != nil && first == nil {
		first = err
	}
	return first
}
