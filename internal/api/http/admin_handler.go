package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"coursefund-backend/internal/domain"
	"coursefund-backend/internal/service"
)

type AdminHandler struct {
	reportingSvc service.ReportingService
	ledgerSvc    service.LedgerService
}

func NewAdminHandler(reportingSvc service.ReportingService, ledgerSvc service.LedgerService) *AdminHandler {
	return &AdminHandler{reportingSvc: reportingSvc, ledgerSvc: ledgerSvc}
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromRequest(r)

	stats, err := h.reportingSvc.GetStats(r.Context(), principal)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) ExportLedger(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromRequest(r)

	data, err := h.reportingSvc.ExportLedgerCSV(r.Context(), principal)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="ledger.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *AdminHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromRequest(r)
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid transaction id"})
		return
	}

	var body struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.ledgerSvc.UpdateTransactionStatus(r.Context(), principal, int32(id), domain.TransactionStatus(body.Status), body.Note); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": body.Status})
}
