// Package insights exposes the derived read models of one flat: balances,
// simplified debts, reliability scores and upcoming bills. Every request
// recomputes from the raw entity lists.
package insights

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/models"
	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/service"
)

type Handler struct {
	svc *service.LedgerService
}

func NewHandler(svc *service.LedgerService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/balances", h.balances)
	r.Get("/debts", h.debts)
	r.Get("/reliability", h.reliability)
	r.Get("/upcoming-bills", h.upcomingBills)
}

type balanceResponse struct {
	MemberID   string  `json:"member_id"`
	Owes       float64 `json:"owes"`
	Receives   float64 `json:"receives"`
	NetBalance float64 `json:"net_balance"`
}

func (h *Handler) balances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.svc.Balances(r.Context(), chi.URLParam(r, "flatID"))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	out := make([]balanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, balanceResponse{
			MemberID:   b.MemberID,
			Owes:       b.Owes,
			Receives:   b.Receives,
			NetBalance: b.NetBalance,
		})
	}
	writeJSON(w, out)
}

type debtResponse struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

func (h *Handler) debts(w http.ResponseWriter, r *http.Request) {
	debts, err := h.svc.SimplifiedDebts(r.Context(), chi.URLParam(r, "flatID"))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	out := make([]debtResponse, 0, len(debts))
	for _, d := range debts {
		out = append(out, debtResponse{From: d.FromMemberID, To: d.ToMemberID, Amount: d.Amount})
	}
	writeJSON(w, out)
}

type paymentRecordResponse struct {
	Kind      string    `json:"kind"`
	Status    string    `json:"status"`
	RefID     string    `json:"ref_id"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	DelayDays int       `json:"delay_days"`
}

type monthlyBehaviorResponse struct {
	Month  string `json:"month"`
	OnTime int    `json:"on_time"`
	Late   int    `json:"late"`
}

type reliabilityResponse struct {
	MemberID            string                    `json:"member_id"`
	Score               int                       `json:"score"`
	Status              string                    `json:"status"`
	Health              string                    `json:"health"`
	OnTimePayments      int                       `json:"on_time_payments"`
	LatePayments        int                       `json:"late_payments"`
	MissedPayments      int                       `json:"missed_payments"`
	AverageDelayDays    float64                   `json:"average_delay_days"`
	LongestOnTimeStreak int                       `json:"longest_on_time_streak"`
	PaymentHistory      []paymentRecordResponse   `json:"payment_history"`
	MonthlyBehavior     []monthlyBehaviorResponse `json:"monthly_behavior"`
	Issues              []string                  `json:"issues,omitempty"`
}

func (h *Handler) reliability(w http.ResponseWriter, r *http.Request) {
	scores, err := h.svc.ReliabilityScores(r.Context(), chi.URLParam(r, "flatID"))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	out := make([]reliabilityResponse, 0, len(scores))
	for _, s := range scores {
		out = append(out, toReliabilityResponse(s))
	}
	writeJSON(w, out)
}

func toReliabilityResponse(s models.MemberReliabilityScore) reliabilityResponse {
	history := make([]paymentRecordResponse, 0, len(s.PaymentHistory))
	for _, rec := range s.PaymentHistory {
		history = append(history, paymentRecordResponse{
			Kind:      string(rec.Kind),
			Status:    string(rec.Status),
			RefID:     rec.RefID,
			Amount:    rec.Amount,
			Date:      rec.Date,
			DelayDays: rec.DelayDays,
		})
	}
	monthly := make([]monthlyBehaviorResponse, 0, len(s.MonthlyBehavior))
	for _, mb := range s.MonthlyBehavior {
		monthly = append(monthly, monthlyBehaviorResponse{Month: mb.Month, OnTime: mb.OnTime, Late: mb.Late})
	}
	return reliabilityResponse{
		MemberID:            s.MemberID,
		Score:               s.Score,
		Status:              string(s.Status),
		Health:              s.Health,
		OnTimePayments:      s.OnTimePayments,
		LatePayments:        s.LatePayments,
		MissedPayments:      s.MissedPayments,
		AverageDelayDays:    s.AverageDelayDays,
		LongestOnTimeStreak: s.LongestOnTimeStreak,
		PaymentHistory:      history,
		MonthlyBehavior:     monthly,
		Issues:              s.Issues,
	}
}

type upcomingBillResponse struct {
	BillID    string    `json:"bill_id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Remaining float64   `json:"remaining"`
	NextDue   time.Time `json:"next_due"`
}

func (h *Handler) upcomingBills(w http.ResponseWriter, r *http.Request) {
	upcoming, err := h.svc.UpcomingBills(r.Context(), chi.URLParam(r, "flatID"))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	out := make([]upcomingBillResponse, 0, len(upcoming))
	for _, u := range upcoming {
		out = append(out, upcomingBillResponse{
			BillID:    u.Bill.ID,
			Name:      u.Bill.Name,
			Amount:    u.Bill.Amount,
			Remaining: u.Remaining,
			NextDue:   u.NextDue,
		})
	}
	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
