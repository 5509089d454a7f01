// Package household exposes CRUD endpoints for the entities of one flat.
package household

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/models"
	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/service"
	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/storage"
)

type Handler struct {
	svc *service.LedgerService
}

func NewHandler(svc *service.LedgerService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/members", func(r chi.Router) {
		r.Post("/", h.createMember)
		r.Get("/", h.listMembers)
		r.Patch("/{memberID}", h.updateMember)
	})
	r.Route("/expenses", func(r chi.Router) {
		r.Post("/", h.createExpense)
		r.Get("/", h.listExpenses)
		r.Delete("/{expenseID}", h.deleteExpense)
	})
	r.Route("/bills", func(r chi.Router) {
		r.Post("/", h.createBill)
		r.Get("/", h.listBills)
		r.Patch("/{billID}", h.updateBill)
		r.Post("/{billID}/payments", h.recordPayment)
	})
	r.Get("/payments", h.listPayments)
	r.Route("/settlements", func(r chi.Router) {
		r.Post("/", h.createSettlement)
		r.Get("/", h.listSettlements)
		r.Delete("/{settlementID}", h.deleteSettlement)
	})
}

type createMemberRequest struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

func (h *Handler) createMember(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	member := &models.Member{
		FlatID:   chi.URLParam(r, "flatID"),
		Name:     req.Name,
		Weight:   req.Weight,
		IsActive: true,
	}
	if err := h.svc.AddMember(r.Context(), member); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMemberResponse(*member))
}

func (h *Handler) listMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.Members(r.Context(), chi.URLParam(r, "flatID"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberResponse(m))
	}
	writeJSON(w, http.StatusOK, out)
}

type updateMemberRequest struct {
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	IsActive bool    `json:"is_active"`
}

func (h *Handler) updateMember(w http.ResponseWriter, r *http.Request) {
	var req updateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	member := &models.Member{
		ID:       chi.URLParam(r, "memberID"),
		FlatID:   chi.URLParam(r, "flatID"),
		Name:     req.Name,
		Weight:   req.Weight,
		IsActive: req.IsActive,
	}
	if err := h.svc.UpdateMember(r.Context(), member); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponse(*member))
}

type createExpenseRequest struct {
	Description  string    `json:"description"`
	Amount       float64   `json:"amount"`
	PaidBy       string    `json:"paid_by"`
	Participants []string  `json:"participants"`
	Date         time.Time `json:"date"`
	Category     string    `json:"category"`
}

func (h *Handler) createExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	expense := &models.Expense{
		FlatID:       chi.URLParam(r, "flatID"),
		Description:  req.Description,
		Amount:       req.Amount,
		PaidBy:       req.PaidBy,
		Participants: req.Participants,
		Date:         req.Date,
		Category:     models.ExpenseCategory(req.Category),
	}
	if err := h.svc.AddExpense(r.Context(), expense); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseResponse(*expense))
}

func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.Expenses(r.Context(), chi.URLParam(r, "flatID"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteExpense(r.Context(), chi.URLParam(r, "expenseID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createBillRequest struct {
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	DueDay    int     `json:"due_day"`
	SplitType string  `json:"split_type"`
}

func (h *Handler) createBill(w http.ResponseWriter, r *http.Request) {
	var req createBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bill := &models.Bill{
		FlatID:    chi.URLParam(r, "flatID"),
		Name:      req.Name,
		Amount:    req.Amount,
		DueDay:    req.DueDay,
		SplitType: models.SplitType(req.SplitType),
		IsActive:  true,
	}
	if err := h.svc.AddBill(r.Context(), bill); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBillResponse(*bill))
}

func (h *Handler) listBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.svc.Bills(r.Context(), chi.URLParam(r, "flatID"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]billResponse, 0, len(bills))
	for _, b := range bills {
		out = append(out, toBillResponse(b))
	}
	writeJSON(w, http.StatusOK, out)
}

type updateBillRequest struct {
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	DueDay    int     `json:"due_day"`
	SplitType string  `json:"split_type"`
	IsActive  bool    `json:"is_active"`
}

func (h *Handler) updateBill(w http.ResponseWriter, r *http.Request) {
	var req updateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bill := &models.Bill{
		ID:        chi.URLParam(r, "billID"),
		FlatID:    chi.URLParam(r, "flatID"),
		Name:      req.Name,
		Amount:    req.Amount,
		DueDay:    req.DueDay,
		SplitType: models.SplitType(req.SplitType),
		IsActive:  req.IsActive,
	}
	if err := h.svc.UpdateBill(r.Context(), bill); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBillResponse(*bill))
}

type recordPaymentRequest struct {
	PaidBy string    `json:"paid_by"`
	Amount float64   `json:"amount"`
	PaidAt time.Time `json:"paid_at"`
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	payment := &models.BillPayment{
		FlatID: chi.URLParam(r, "flatID"),
		BillID: chi.URLParam(r, "billID"),
		PaidBy: req.PaidBy,
		Amount: req.Amount,
		PaidAt: req.PaidAt,
	}
	if err := h.svc.RecordBillPayment(r.Context(), payment); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentResponse(*payment))
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.svc.BillPayments(r.Context(), chi.URLParam(r, "flatID"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

type createSettlementRequest struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
	Note   string  `json:"note"`
}

func (h *Handler) createSettlement(w http.ResponseWriter, r *http.Request) {
	var req createSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	settlement := &models.Settlement{
		FlatID:       chi.URLParam(r, "flatID"),
		FromMemberID: req.From,
		ToMemberID:   req.To,
		Amount:       req.Amount,
		Note:         req.Note,
	}
	if err := h.svc.RecordSettlement(r.Context(), settlement); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSettlementResponse(*settlement))
}

func (h *Handler) listSettlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := h.svc.Settlements(r.Context(), chi.URLParam(r, "flatID"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]settlementResponse, 0, len(settlements))
	for _, s := range settlements {
		out = append(out, toSettlementResponse(s))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) deleteSettlement(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSettlement(r.Context(), chi.URLParam(r, "settlementID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
