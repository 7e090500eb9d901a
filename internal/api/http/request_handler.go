package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"coursefund-backend/internal/domain"
	"coursefund-backend/internal/service"

	"github.com/gorilla/mux"
)

type RequestHandler struct {
	ledgerSvc service.LedgerService
}

func NewRequestHandler(ledgerSvc service.LedgerService) *RequestHandler {
	return &RequestHandler{ledgerSvc: ledgerSvc}
}

func requestIDFromPath(r *http.Request) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	return int32(id), err
}

func pagination(r *http.Request) (int32, int32) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32)
	pageSize, _ := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return int32(page), int32(pageSize)
}

type listResponse struct {
	Items      interface{} `json:"items"`
	TotalCount int32       `json:"total_count"`
}

func (h *RequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromRequest(r)

	var submission domain.RequestSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	req, err := h.ledgerSvc.SubmitRequest(r.Context(), principal, submission)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, req)
}

func (h *RequestHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromRequest(r)
	page, pageSize := pagination(r)

	reqs, count, err := h.ledgerSvc.ListMyRequests(r.Context(), principal, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: reqs, TotalCount: count})
}

func (h *RequestHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	reqs, count, err := h.ledgerSvc.ListOpenRequests(r.Context(), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: reqs, TotalCount: count})
}

func (h *RequestHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromRequest(r)
	page, pageSize := pagination(r)

	details, count, err := h.ledgerSvc.ListAllRequests(r.Context(), principal, r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: details, TotalCount: count})
}

func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromRequest(r)
	id, err := requestIDFromPath(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request id"})
		return
	}

	req, err := h.ledgerSvc.GetRequest(r.Context(), principal, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, req)
}

func (h *RequestHandler) Review(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromRequest(r)
	id, err := requestIDFromPath(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request id"})
		return
	}

	var body struct {
		Decision            string `json:"decision"`
		Note                string `json:"note"`
		ApprovedAmountCents int64  `json:"approved_amount_cents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	req, err := h.ledgerSvc.ReviewRequest(r.Context(), principal, id, domain.ReviewDecision(body.Decision), body.Note, body.ApprovedAmountCents)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, req)
}

func (h *RequestHandler) Sponsor(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromRequest(r)
	id, err := requestIDFromPath(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request id"})
		return
	}

	var body struct {
		AmountCents int64 `json:"amount_cents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	tx, err := h.ledgerSvc.SponsorRequest(r.Context(), principal, id, body.AmountCents)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, tx)
}

func (h *RequestHandler) Progress(w http.ResponseWriter, r *http.Request) {
	id, err := requestIDFromPath(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request id"})
		return
	}

	progress, err := h.ledgerSvc.ComputeFundingProgress(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	// The display percent is clamped to [0,100]; the raw ratio stays in
	// the payload so inconsistencies remain observable.
	display := progress.Percent
	if display > 100 {
		display = 100
	}
	if display < 0 {
		display = 0
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"request_id":             progress.RequestID,
		"requested_amount_cents": progress.RequestedAmountCents,
		"funded_amount_cents":    progress.FundedAmountCents,
		"percent":                progress.Percent,
		"display_percent":        display,
	})
}

func (h *RequestHandler) Donate(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromRequest(r)

	var body struct {
		AmountCents int64  `json:"amount_cents"`
		Note        string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	tx, err := h.ledgerSvc.RecordIncomingPayment(r.Context(), principal, body.AmountCents, body.Note)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, tx)
}

func (h *RequestHandler) ListMyTransactions(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromRequest(r)
	page, pageSize := pagination(r)

	txs, count, err := h.ledgerSvc.ListMyTransactions(r.Context(), principal, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: txs, TotalCount: count})
}
