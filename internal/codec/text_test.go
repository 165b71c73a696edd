package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/laptops/internal/core"
)

const dellLine = "Dell;15.6;1920x1080;Matte;Nie;i5;4;2.4GHz;8GB;256GB;SSD;Intel;2GB;Win10;Tak;\n"

func TestTextParse_Example(t *testing.T) {
	records, err := NewText(DefaultTextOptions()).Parse(strings.NewReader(dellLine))
	require.NoError(t, err)
	require.Len(t, records, 1)

	want := core.Record{
		ID:                1,
		Manufacturer:      "Dell",
		ScreenDiagonal:    "15.6",
		ScreenResolution:  "1920x1080",
		ScreenSurfaceType: "Matte",
		IsTouchScreen:     "Nie",
		CPUName:           "i5",
		CPUCores:          "4",
		CPUClockSpeed:     "2.4GHz",
		RAMSize:           "8GB",
		DiskSize:          "256GB",
		DiskType:          "SSD",
		GPUName:           "Intel",
		GPUMemory:         "2GB",
		OSName:            "Win10",
		OpticalDriveType:  "Tak",
	}
	assert.Equal(t, want, records[0])
}

func TestTextSerialize_Example(t *testing.T) {
	c := NewText(DefaultTextOptions())
	records, err := c.Parse(strings.NewReader(dellLine))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.Serialize(&buf, records))
	assert.Equal(t, dellLine, buf.String())
}

func TestTextParse_InteriorEmptyLinesLoad(t *testing.T) {
	input := "A;\n\nB;\n;;;\nC;\n\n \n"
	records, err := NewText(DefaultTextOptions()).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 5, "only the trailing empty lines are dropped")

	for i, name := range []string{"A", "", "B", "", "C"} {
		assert.Equal(t, i+1, records[i].ID)
		assert.Equal(t, name, records[i].Manufacturer)
	}
}

func TestTextParse_DelimiterOnlyLineLoads(t *testing.T) {
	records, err := NewText(DefaultTextOptions()).Parse(strings.NewReader(";;;;;;;;;;;;;;;\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, core.Record{ID: 1}, records[0])
}

func TestTextParse_OnlyEmptyLines(t *testing.T) {
	records, err := NewText(DefaultTextOptions()).Parse(strings.NewReader("\n\n  \n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestTextParse_KeepBlankLines(t *testing.T) {
	opts := DefaultTextOptions()
	opts.SkipBlankLines = false

	records, err := NewText(opts).Parse(strings.NewReader(dellLine))
	require.NoError(t, err)
	require.Len(t, records, 2, "trailing newline yields an all-empty record")

	assert.Equal(t, 2, records[1].ID)
	assert.Equal(t, core.Record{ID: 2}, records[1])
}

func TestTextParse_ShortAndLongLines(t *testing.T) {
	input := "HP;14\nLenovo;13.3;a;b;c;d;e;f;g;h;i;j;k;l;m;extra1;extra2;\n"
	records, err := NewText(DefaultTextOptions()).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "HP", records[0].Manufacturer)
	assert.Equal(t, "14", records[0].ScreenDiagonal)
	assert.Empty(t, records[0].ScreenResolution)
	assert.Empty(t, records[0].OpticalDriveType)

	assert.Equal(t, "m", records[1].OpticalDriveType)
}

func TestTextParse_CRLFAndBOM(t *testing.T) {
	input := "\xEF\xBB\xBF" + strings.ReplaceAll(dellLine, "\n", "\r\n")
	records, err := NewText(DefaultTextOptions()).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "Dell", records[0].Manufacturer)
	assert.Equal(t, "Tak", records[0].OpticalDriveType)
}

func TestTextParse_NoValidationAtImport(t *testing.T) {
	input := "Some Very Long Manufacturer!;x;x;x;maybe;x;four;x;x;x;FLOPPY;x;x;x;x;\n"
	records, err := NewText(DefaultTextOptions()).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "Some Very Long Manufacturer!", records[0].Manufacturer)
	assert.Equal(t, "FLOPPY", records[0].DiskType)
}

func TestTextParse_LineTooLong(t *testing.T) {
	opts := DefaultTextOptions()
	opts.MaxLineBytes = 32

	_, err := NewText(opts).Parse(strings.NewReader(strings.Repeat("x", 100) + ";\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrParseMalformed)
}

func TestTextParse_LineAtLimit(t *testing.T) {
	opts := DefaultTextOptions()
	opts.MaxLineBytes = 32
	line := strings.Repeat("x", 31) + ";"

	for _, eol := range []string{"\n", "\r\n", ""} {
		records, err := NewText(opts).Parse(strings.NewReader(line + eol))
		require.NoError(t, err, "eol %q", eol)
		require.Len(t, records, 1)
		assert.Equal(t, strings.Repeat("x", 31), records[0].Manufacturer)
	}

	_, err := NewText(opts).Parse(strings.NewReader("x" + line + "\n"))
	assert.ErrorIs(t, err, core.ErrParseMalformed)
}

func TestTextRoundTrip(t *testing.T) {
	input := dellLine +
		"HP;14;1366x768;Glossy;Tak;i3;2;1.8GHz;4GB;500GB;HDD;AMD;1GB;Linux;Nie;\n" +
		"Acer;;;;;;;;;;;;;;;\n"
	c := NewText(DefaultTextOptions())

	first, err := c.Parse(strings.NewReader(input))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.Serialize(&buf, first))

	second, err := c.Parse(&buf)
	require.NoError(t, err)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].DataValues(), second[i].DataValues(), "row %d", i)
	}
}

func TestTextEscape_RoundTripsDelimiters(t *testing.T) {
	opts := DefaultTextOptions()
	opts.Escape = true
	c := NewText(opts)

	records := []core.Record{{
		ID:           1,
		Manufacturer: `A;B`,
		CPUName:      "two\nlines",
		OSName:       `back\slash`,
		GPUName:      "cr\r",
	}}

	var buf bytes.Buffer
	require.NoError(t, c.Serialize(&buf, records))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "escaped output stays on one line")

	parsed, err := c.Parse(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, records[0].DataValues(), parsed[0].DataValues())
}

func TestTextEscape_LegacyBytesWhenDisabled(t *testing.T) {
	records := []core.Record{{Manufacturer: `A\B`}}

	var buf bytes.Buffer
	require.NoError(t, NewText(DefaultTextOptions()).Serialize(&buf, records))
	assert.True(t, strings.HasPrefix(buf.String(), `A\B;`))
}

func TestTextEscape_Malformed(t *testing.T) {
	opts := DefaultTextOptions()
	opts.Escape = true
	c := NewText(opts)

	for _, input := range []string{"abc\\\n", "a\\x;\n"} {
		_, err := c.Parse(strings.NewReader(input))
		assert.ErrorIs(t, err, core.ErrParseMalformed, "input %q", input)
	}
}

func TestTextSerialize_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewText(DefaultTextOptions()).Serialize(&buf, nil))
	assert.Empty(t, buf.String())
}
