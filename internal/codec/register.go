// Package codec implements the on-disk catalog formats: the legacy
// semicolon-delimited text format and the nested XML format.
//
// Importing the package registers both codecs with core under their format
// names ("txt", "xml") using default options. Shells call Configure to apply
// options from configuration.
package codec

import (
	"strings"

	"github.com/JonMunkholm/laptops/internal/config"
	"github.com/JonMunkholm/laptops/internal/core"
)

func init() {
	core.RegisterCodec(NewText(DefaultTextOptions()))
	core.RegisterCodec(NewXML(DefaultXMLOptions()))
}

// Configure replaces the registered codecs with ones built from cfg.
func Configure(cfg config.CatalogConfig) {
	core.ReplaceCodec(NewText(TextOptionsFrom(cfg)))
	core.ReplaceCodec(NewXML(XMLOptionsFrom(cfg)))
}

// NoIndent as the configured XML indent writes documents on a single line.
const NoIndent = "none"

// XMLOptionsFrom maps catalog configuration onto XML codec options.
// An unknown validation mode falls back to strict; NewService rejects it.
func XMLOptionsFrom(cfg config.CatalogConfig) XMLOptions {
	mode, _ := core.ParseValidationMode(cfg.Validation)
	indent := cfg.XMLIndent
	if strings.EqualFold(strings.TrimSpace(indent), NoIndent) {
		indent = ""
	}
	return XMLOptions{Indent: indent, Validation: mode}
}

// TextOptionsFrom maps catalog configuration onto text codec options.
func TextOptionsFrom(cfg config.CatalogConfig) TextOptions {
	return TextOptions{
		SkipBlankLines: cfg.SkipBlankLines,
		Escape:         cfg.TextEscape,
		MaxLineBytes:   cfg.MaxLineBytes,
	}
}
