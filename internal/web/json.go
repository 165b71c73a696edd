package web

import (
	"log/slog"
	"net/http"

	"github.com/ugorji/go/codec"
)

// jsonHandle is shared by all API encoders and decoders; it is safe for
// concurrent use once configured.
var jsonHandle = func() *codec.JsonHandle {
	h := &codec.JsonHandle{}
	h.Canonical = true
	h.HTMLCharsAsIs = false
	h.MapKeyAsString = true
	h.TermWhitespace = true
	return h
}()

// writeJSON encodes v with the given status.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := codec.NewEncoder(w, jsonHandle).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

// decodeJSON decodes the request body into v. The body is bounded by
// maxJSONBody so a client cannot stream an unbounded document.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	return codec.NewDecoder(body, jsonHandle).Decode(v)
}

const maxJSONBody = 1 << 20
