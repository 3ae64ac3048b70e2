package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	domainBarter "github.com/prashana14/StudyReuse-sub000/internal/domain/barter"
)

type barterProposeRequest struct {
	ItemID      string `json:"item_id"`
	OfferItemID string `json:"offer_item_id"`
	Message     string `json:"message,omitempty"`
}

type barterRejectRequest struct {
	Reason string `json:"reason,omitempty"`
}

type barterStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) proposeBarter(w http.ResponseWriter, r *http.Request) {
	auth := authUserFromContext(r.Context())
	var req barterProposeRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid item_id")
		return
	}
	offerItemID, err := uuid.Parse(req.OfferItemID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid offer_item_id")
		return
	}
	b, err := s.barterSvc.Propose(r.Context(), auth.Actor(), itemID, offerItemID, req.Message)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, b)
}

func (s *Server) listMyBarters(w http.ResponseWriter, r *http.Request) {
	auth := authUserFromContext(r.Context())
	limit, offset := parseLimitOffset(r, 100, 200)
	barters, err := s.barterSvc.GetMyBarters(r.Context(), auth.Actor(), limit, offset)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"barters": barters})
}

func (s *Server) listAllBarters(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 100, 200)
	filter := domainBarter.Filter{}
	if v := r.URL.Query().Get("status"); v != "" {
		status := domainBarter.NormalizeStatus(domainBarter.Status(v))
		filter.Status = &status
	}
	if v := r.URL.Query().Get("item_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid item_id")
			return
		}
		filter.ItemID = &id
	}
	if v := r.URL.Query().Get("requester_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid requester_id")
			return
		}
		filter.RequesterID = &id
	}
	if v := r.URL.Query().Get("owner_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid owner_id")
			return
		}
		filter.OwnerID = &id
	}
	barters, err := s.barterSvc.ListBarters(r.Context(), filter, limit, offset)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"barters": barters})
}

func (s *Server) getBarter(w http.ResponseWriter, r *http.Request) {
	auth := authUserFromContext(r.Context())
	id, err := parseUUIDParam(r, "barterId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid barterId")
		return
	}
	b, err := s.barterSvc.GetByID(r.Context(), auth.Actor(), id)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (s *Server) acceptBarter(w http.ResponseWriter, r *http.Request) {
	auth := authUserFromContext(r.Context())
	id, err := parseUUIDParam(r, "barterId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid barterId")
		return
	}
	b, err := s.barterSvc.Accept(r.Context(), auth.Actor(), id)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (s *Server) rejectBarter(w http.ResponseWriter, r *http.Request) {
	auth := authUserFromContext(r.Context())
	id, err := parseUUIDParam(r, "barterId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid barterId")
		return
	}
	// The reject body is optional.
	var req barterRejectRequest
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	b, err := s.barterSvc.Reject(r.Context(), auth.Actor(), id, req.Reason)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (s *Server) updateBarterStatus(w http.ResponseWriter, r *http.Request) {
	auth := authUserFromContext(r.Context())
	id, err := parseUUIDParam(r, "barterId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid barterId")
		return
	}
	var req barterStatusRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	b, err := s.barterSvc.UpdateStatus(r.Context(), auth.Actor(), id, domainBarter.Status(req.Status))
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (s *Server) cancelBarter(w http.ResponseWriter, r *http.Request) {
	auth := authUserFromContext(r.Context())
	id, err := parseUUIDParam(r, "barterId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid barterId")
		return
	}
	if err := s.barterSvc.Cancel(r.Context(), auth.Actor(), id); err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"status": "CANCELLED"})
}

func (s *Server) withdrawBarter(w http.ResponseWriter, r *http.Request) {
	auth := authUserFromContext(r.Context())
	id, err := parseUUIDParam(r, "barterId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid barterId")
		return
	}
	if err := s.barterSvc.Withdraw(r.Context(), auth.Actor(), id); err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"status": "CANCELLED"})
}
