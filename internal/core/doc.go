// Package core provides the business logic for the laptop catalog.
//
// It is independent of any UI or transport layer: the web server and the
// terminal shell both drive the catalog through [Service].
//
// # Field Schema
//
// A laptop record has an integer id and 15 textual data fields. The schema
// tables in schema.go fix, for every [Field], its accessor key, its grid
// header, its position in the serialized line and its validation [Rule] in
// each [ValidationMode]. Codecs, the validator and the grid all read the same
// tables.
//
// # Codecs
//
// Formats are pluggable through the [Codec] registry. The codec package
// registers the text and XML formats at init:
//
//	import _ "github.com/JonMunkholm/laptops/internal/codec"
//
//	c, err := core.CodecForFile("katalog.xml")
//	records, err := c.Parse(f)
//
// Codecs never validate. Whatever a source file contains is loaded, and
// validation applies only to edits.
//
// # Store and Loads
//
// [Store] owns the collection. A load is issued a [LoadTicket] before parsing
// starts; when two loads overlap, the one started last is installed and the
// other fails with [ErrStaleLoad]. A failed parse never touches the current
// collection.
//
// # Refresh
//
// Every mutation returns a [Change] whose Mode tells the pager how to react:
// a reload resets to the first page, a single-field edit keeps the page.
//
// # Errors
//
// Failures are reported through sentinel errors that [MapError] turns into a
// [UserMessage] with a support code. See error_messages.go for the list.
package core
