package web

import (
	"net/http"

	"github.com/JonMunkholm/laptops/internal/core"
)

// FieldResponse describes one schema field for API clients.
type FieldResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	Rule  string `json:"rule"`
}

func kindName(k core.FieldKind) string {
	switch k {
	case core.KindNumeric:
		return "numeric"
	case core.KindEnum:
		return "enum"
	default:
		return "text"
	}
}

// handleListFields returns the field schema with the active validation rules.
func (s *Server) handleListFields(w http.ResponseWriter, r *http.Request) {
	mode := s.service.Store().Validator().Mode

	fields := core.AllFields()
	resp := make([]FieldResponse, len(fields))
	for i, f := range fields {
		spec := core.SpecFor(f)
		resp[i] = FieldResponse{
			Key:   spec.Key,
			Label: spec.Label,
			Index: spec.Index,
			Kind:  kindName(spec.Kind),
			Rule:  core.RuleFor(f, mode).Pattern.String(),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleListRecords returns the current page.
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Page())
}

// UpdateRequest is the body of POST /api/update.
type UpdateRequest struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// handleUpdateCell applies one validated field edit.
func (s *Server) handleUpdateCell(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid request body",
			Message: "invalid request body",
			Code:    "REQ001",
		})
		return
	}

	ctx := withClient(r.Context(), r)
	result, err := s.service.UpdateField(ctx, req.Row, req.Field, req.Value)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// NavigateRequest is the body of POST /api/page. Page is 1-based.
type NavigateRequest struct {
	Action string `json:"action"`
	Page   int    `json:"page,omitempty"`
	Size   int    `json:"size,omitempty"`
}

// handleNavigate moves the pager and returns the new page.
func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid request body",
			Message: "invalid request body",
			Code:    "REQ001",
		})
		return
	}

	arg := req.Page
	if req.Action == core.NavSize {
		arg = req.Size
	}
	if err := s.service.Navigate(req.Action, arg); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.service.Page())
}

// handleStatus reports row count, generation and load slots.
// Used for monitoring and to check whether another load would be accepted.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Status())
}
