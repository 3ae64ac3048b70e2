package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	appItem "github.com/prashana14/StudyReuse-sub000/internal/application/item"
	domainItem "github.com/prashana14/StudyReuse-sub000/internal/domain/item"
)

type itemCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Condition   string `json:"condition,omitempty"`
}

type itemUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Condition   *string `json:"condition,omitempty"`
}

type itemStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) createItem(w http.ResponseWriter, r *http.Request) {
	auth := authUserFromContext(r.Context())
	var req itemCreateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	it, err := s.itemSvc.CreateItem(r.Context(), auth.UserID, appItem.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Condition:   domainItem.Condition(req.Condition),
	})
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, it)
}

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 100, 200)
	filter := domainItem.Filter{}
	if v := r.URL.Query().Get("owner_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid owner_id")
			return
		}
		filter.OwnerID = &id
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := domainItem.NormalizeStatus(domainItem.Status(v))
		filter.Status = &status
	}
	if v := r.URL.Query().Get("category"); v != "" {
		filter.Category = &v
	}
	items, err := s.itemSvc.ListItems(r.Context(), filter, limit, offset)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (s *Server) getItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "itemId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid itemId")
		return
	}
	it, err := s.itemSvc.GetItem(r.Context(), id)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, it)
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	auth := authUserFromContext(r.Context())
	id, err := parseUUIDParam(r, "itemId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid itemId")
		return
	}
	var req itemUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	input := appItem.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}
	if req.Condition != nil {
		cond := domainItem.Condition(*req.Condition)
		input.Condition = &cond
	}
	it, err := s.itemSvc.UpdateItem(r.Context(), auth.UserID, id, input)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, it)
}

func (s *Server) setItemStatus(w http.ResponseWriter, r *http.Request) {
	auth := authUserFromContext(r.Context())
	id, err := parseUUIDParam(r, "itemId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid itemId")
		return
	}
	var req itemStatusRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	it, err := s.itemSvc.SetStatus(r.Context(), auth.UserID, id, domainItem.Status(req.Status))
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, it)
}
