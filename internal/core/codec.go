package core

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Codec converts between one on-disk catalog format and a record sequence.
type Codec interface {
	// Format is the short name used in URLs and menus: "txt", "xml".
	Format() string
	// Extension is the file extension including the dot.
	Extension() string
	// ContentType is the MIME type used for downloads.
	ContentType() string
	// Parse reads a whole document. It returns ErrParseMalformed (wrapped)
	// when the input does not match the format, and never a partial result.
	Parse(r io.Reader) ([]Record, error)
	// Serialize writes records in order.
	Serialize(w io.Writer, records []Record) error
}

var (
	codecs   = make(map[string]Codec)
	codecsMu sync.RWMutex
)

// RegisterCodec adds a codec to the registry.
// Panics if a codec with the same format is already registered.
func RegisterCodec(c Codec) {
	codecsMu.Lock()
	defer codecsMu.Unlock()

	key := strings.ToLower(c.Format())
	if _, exists := codecs[key]; exists {
		panic(fmt.Sprintf("codec already registered: %s", key))
	}
	codecs[key] = c
}

// ReplaceCodec registers c, replacing any codec with the same format.
// Used to apply configured options over the defaults registered at init.
func ReplaceCodec(c Codec) {
	codecsMu.Lock()
	defer codecsMu.Unlock()
	codecs[strings.ToLower(c.Format())] = c
}

// CodecFor returns the codec registered for format.
func CodecFor(format string) (Codec, error) {
	codecsMu.RLock()
	defer codecsMu.RUnlock()

	c, ok := codecs[strings.ToLower(strings.TrimPrefix(format, "."))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return c, nil
}

// CodecForFile picks a codec by the extension of name.
func CodecForFile(name string) (Codec, error) {
	ext := filepath.Ext(name)
	if ext == "" {
		return nil, fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, name)
	}

	codecsMu.RLock()
	defer codecsMu.RUnlock()

	for _, c := range codecs {
		if strings.EqualFold(c.Extension(), ext) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
}

// Formats returns the registered format names, sorted.
func Formats() []string {
	codecsMu.RLock()
	defer codecsMu.RUnlock()

	formats := make([]string, 0, len(codecs))
	for f := range codecs {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}
