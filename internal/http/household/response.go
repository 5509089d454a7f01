package household

import (
	"time"

	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/models"
)

type memberResponse struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Weight   float64   `json:"weight"`
	IsActive bool      `json:"is_active"`
	JoinedAt time.Time `json:"joined_at"`
}

func toMemberResponse(m models.Member) memberResponse {
	return memberResponse{
		ID:       m.ID,
		Name:     m.Name,
		Weight:   m.Weight,
		IsActive: m.IsActive,
		JoinedAt: m.JoinedAt,
	}
}

type expenseResponse struct {
	ID            string    `json:"id"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"`
	PaidBy        string    `json:"paid_by"`
	Participants  []string  `json:"participants"`
	Date          time.Time `json:"date"`
	Category      string    `json:"category"`
	CategoryLabel string    `json:"category_label"`
}

func toExpenseResponse(e models.Expense) expenseResponse {
	return expenseResponse{
		ID:            e.ID,
		Description:   e.Description,
		Amount:        e.Amount,
		PaidBy:        e.PaidBy,
		Participants:  e.Participants,
		Date:          e.Date,
		Category:      string(e.Category),
		CategoryLabel: e.Category.Label(),
	}
}

type billResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	DueDay    int     `json:"due_day"`
	SplitType string  `json:"split_type"`
	IsActive  bool    `json:"is_active"`
}

func toBillResponse(b models.Bill) billResponse {
	return billResponse{
		ID:        b.ID,
		Name:      b.Name,
		Amount:    b.Amount,
		DueDay:    b.DueDay,
		SplitType: string(b.SplitType),
		IsActive:  b.IsActive,
	}
}

type paymentResponse struct {
	ID     string    `json:"id"`
	BillID string    `json:"bill_id"`
	PaidBy string    `json:"paid_by"`
	Amount float64   `json:"amount"`
	PaidAt time.Time `json:"paid_at"`
}

func toPaymentResponse(p models.BillPayment) paymentResponse {
	return paymentResponse{
		ID:     p.ID,
		BillID: p.BillID,
		PaidBy: p.PaidBy,
		Amount: p.Amount,
		PaidAt: p.PaidAt,
	}
}

type settlementResponse struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Amount    float64   `json:"amount"`
	SettledAt time.Time `json:"settled_at"`
	Note      string    `json:"note,omitempty"`
}

func toSettlementResponse(s models.Settlement) settlementResponse {
	return settlementResponse{
		ID:        s.ID,
		From:      s.FromMemberID,
		To:        s.ToMemberID,
		Amount:    s.Amount,
		SettledAt: s.SettledAt,
		Note:      s.Note,
	}
}
