package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/laptops/internal/core"
)

const (
	textDelimiter = ';'
	textEscape    = '\\'

	// DefaultMaxLineBytes bounds a single line of the text format.
	DefaultMaxLineBytes = 64 * 1024
)

// TextOptions tune the delimited text format.
type TextOptions struct {
	// SkipBlankLines drops empty or whitespace-only lines at the end of the
	// file. Empty lines between records, and lines made only of delimiters,
	// still load as all-empty records so an emptied row survives a round trip.
	SkipBlankLines bool

	// Escape enables backslash escaping of '\', ';', newline and carriage
	// return. Off produces the exact legacy bytes.
	Escape bool

	// MaxLineBytes bounds one line; longer lines are malformed.
	MaxLineBytes int
}

// DefaultTextOptions returns the options used when nothing is configured.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		SkipBlankLines: true,
		MaxLineBytes:   DefaultMaxLineBytes,
	}
}

// Text is the semicolon-terminated flat catalog format: one record per line,
// the 15 data fields in schema order each followed by ';'. The id is not
// stored; it is assigned from the line position on parse.
type Text struct {
	Options TextOptions
}

// NewText creates a text codec.
func NewText(opts TextOptions) *Text {
	if opts.MaxLineBytes <= 0 {
		opts.MaxLineBytes = DefaultMaxLineBytes
	}
	return &Text{Options: opts}
}

func (t *Text) Format() string      { return "txt" }
func (t *Text) Extension() string   { return ".txt" }
func (t *Text) ContentType() string { return "text/plain; charset=utf-8" }

// Parse reads records line by line. Fields map positionally onto the schema;
// missing trailing fields are left empty and extra fields are ignored. No
// field validation happens here.
func (t *Text) Parse(r io.Reader) ([]core.Record, error) {
	maxLine := t.Options.MaxLineBytes
	if maxLine <= 0 {
		maxLine = DefaultMaxLineBytes
	}
	// Room for the line terminator, so a line of exactly maxLine bytes fits.
	br := bufio.NewReaderSize(core.NewSourceReader(r), maxLine+len("\r\n"))
	fields := core.FieldsInOrder()

	var (
		records  []core.Record
		trailing int // empty lines since the last line with content
	)
	for lineNo := 1; ; lineNo++ {
		raw, err := br.ReadSlice('\n')
		if errors.Is(err, bufio.ErrBufferFull) {
			return nil, fmt.Errorf("%w: line %d exceeds %d bytes", core.ErrParseMalformed, lineNo, maxLine)
		}
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("%w: read line %d: %v", core.ErrParseMalformed, lineNo, err)
		}

		line := strings.TrimSuffix(strings.TrimSuffix(string(raw), "\n"), "\r")
		if len(line) > maxLine {
			return nil, fmt.Errorf("%w: line %d exceeds %d bytes", core.ErrParseMalformed, lineNo, maxLine)
		}

		if isEmptyLine(line) {
			trailing++
		} else {
			trailing = 0
		}

		values, splitErr := t.split(line)
		if splitErr != nil {
			return nil, fmt.Errorf("%w: line %d: %v", core.ErrParseMalformed, lineNo, splitErr)
		}

		rec := core.Record{ID: len(records) + 1}
		for i, f := range fields {
			if i >= len(values) {
				break
			}
			if err := rec.SetValue(f, values[i]); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", core.ErrParseMalformed, lineNo, err)
			}
		}
		records = append(records, rec)

		if err == io.EOF {
			break
		}
	}

	if t.Options.SkipBlankLines {
		records = records[:len(records)-trailing]
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records, nil
}

// isEmptyLine reports whether a line holds nothing but spaces and tabs.
// A line of bare delimiters is not empty: it is an all-empty record.
func isEmptyLine(line string) bool {
	return strings.Trim(line, " \t") == ""
}

func (t *Text) split(line string) ([]string, error) {
	if !t.Options.Escape {
		return strings.Split(line, string(textDelimiter)), nil
	}

	var (
		values []string
		cur    strings.Builder
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch c {
		case textDelimiter:
			values = append(values, cur.String())
			cur.Reset()
		case textEscape:
			if i+1 >= len(line) {
				return nil, errors.New("dangling escape at end of line")
			}
			i++
			switch line[i] {
			case textEscape:
				cur.WriteByte(textEscape)
			case textDelimiter:
				cur.WriteByte(textDelimiter)
			case 'n':
				cur.WriteByte('\n')
			case 'r':
				cur.WriteByte('\r')
			default:
				return nil, fmt.Errorf("unknown escape \\%c", line[i])
			}
		default:
			cur.WriteByte(c)
		}
	}
	return append(values, cur.String()), nil
}

var textEscaper = strings.NewReplacer(`\`, `\\`, `;`, `\;`, "\n", `\n`, "\r", `\r`)

// Serialize writes every record as its 15 data fields, each followed by ';',
// and a trailing newline.
func (t *Text) Serialize(w io.Writer, records []core.Record) error {
	bw := bufio.NewWriter(w)
	for i := range records {
		for _, v := range records[i].DataValues() {
			if t.Options.Escape {
				v = textEscaper.Replace(v)
			}
			if _, err := bw.WriteString(v); err != nil {
				return err
			}
			if err := bw.WriteByte(textDelimiter); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
