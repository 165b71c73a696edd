package web

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/laptops/internal/core"
	"github.com/JonMunkholm/laptops/internal/grid"
	"github.com/JonMunkholm/laptops/internal/logging"
	"github.com/JonMunkholm/laptops/internal/web/templates"
)

var errNoFile = errors.New("no file provided")

// handleCatalog renders the grid page. Notices arrive as query parameters
// from the form handlers' redirects.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	data := templates.CatalogData{
		Columns:    core.Columns(),
		View:       s.service.Page(),
		Formats:    core.Formats(),
		PageSizes:  grid.PageSizes,
		Validation: s.service.Status().Validation,
		Notice:     noticeFromQuery(r),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.CatalogPage(data).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render catalog", "error", err)
	}
}

func noticeFromQuery(r *http.Request) *templates.Notice {
	q := r.URL.Query()
	if code := q.Get("error"); code != "" {
		msg, ok := core.MessageForCode(code)
		if !ok {
			return nil
		}
		return &templates.Notice{Message: msg.Message, Action: msg.Action, Code: msg.Code, Error: true}
	}
	if loaded := q.Get("loaded"); loaded != "" {
		n, err := strconv.Atoi(loaded)
		if err != nil {
			return nil
		}
		notice := &templates.Notice{Message: fmt.Sprintf("Loaded %d records", n)}
		if invalid, _ := strconv.Atoi(q.Get("invalid")); invalid > 0 {
			notice.Action = fmt.Sprintf("%d records contain values that will not pass editing rules", invalid)
		}
		return notice
	}
	return nil
}

// handleLoad accepts a multipart catalog file (field "file", optional
// "format") and replaces the collection. Serves both the form and the API.
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Load.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		// The text of err decides between "too large" and "no file" notices.
		s.respondError(w, r, fmt.Errorf("%w: %v", errNoFile, err), status)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, errNoFile, http.StatusBadRequest)
		return
	}
	defer file.Close()

	ctx := withClient(r.Context(), r)
	result, err := s.service.LoadFrom(ctx, r.FormValue("format"), header.Filename, file)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, result)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/?loaded=%d&invalid=%d", result.Rows, result.InvalidRows), http.StatusSeeOther)
}

// handleCellForm commits one edited cell from the grid page.
func (s *Server) handleCellForm(w http.ResponseWriter, r *http.Request) {
	row, err := strconv.Atoi(r.FormValue("row"))
	if err != nil {
		s.respondError(w, r, fmt.Errorf("row %q: %w", r.FormValue("row"), core.ErrRowOutOfRange), http.StatusBadRequest)
		return
	}
	field := r.FormValue("field")

	ctx := withClient(r.Context(), r)
	result, err := s.service.UpdateField(ctx, row, field, r.FormValue("value"))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	if isHTMX(r) {
		f, _ := core.ParseField(field)
		col := grid.Column{Key: field, Header: core.SpecFor(f).Label}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = templates.Cell(result.Row, col, result.NewValue).Render(r.Context(), w)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handlePageForm applies a pager action from the grid page.
func (s *Server) handlePageForm(w http.ResponseWriter, r *http.Request) {
	action := r.FormValue("action")
	arg := 0
	switch action {
	case core.NavGoto:
		arg, _ = strconv.Atoi(r.FormValue("page"))
	case core.NavSize:
		arg, _ = strconv.Atoi(r.FormValue("size"))
	}

	if err := s.service.Navigate(action, arg); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleExport serializes the whole collection as a download.
// The body is built before any header is written, so an empty collection
// produces no file at all.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")

	var buf bytes.Buffer
	if err := s.service.Export(r.Context(), format, &buf); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	name, err := s.service.ExportFileName(format)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	c, err := core.CodecFor(format)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	w.Header().Set("Content-Type", c.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}
