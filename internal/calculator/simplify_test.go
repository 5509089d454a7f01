package calculator

import (
	"math"
	"testing"

	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/models"
)

func TestSimplifyDebts(t *testing.T) {
	tests := []struct {
		name         string
		balances     []models.MemberBalance
		wantCount    int
		validateFunc func(t *testing.T, debts []models.SimplifiedDebt)
	}{
		{
			name: "two-member chain settles in one payment",
			balances: []models.MemberBalance{
				{MemberID: "a", NetBalance: 100},
				{MemberID: "b", NetBalance: -100},
			},
			wantCount: 1,
			validateFunc: func(t *testing.T, debts []models.SimplifiedDebt) {
				d := debts[0]
				if d.FromMemberID != "b" || d.ToMemberID != "a" {
					t.Errorf("debt = %s->%s, want b->a", d.FromMemberID, d.ToMemberID)
				}
				if math.Abs(d.Amount-100) > Tolerance {
					t.Errorf("amount = %v, want 100", d.Amount)
				}
			},
		},
		{
			name: "four members settle in fewer payments than the pairwise graph",
			// Pairwise bookkeeping here needs at least 3 edges; net
			// positions collapse to 2.
			balances: []models.MemberBalance{
				{MemberID: "a", NetBalance: 150},
				{MemberID: "b", NetBalance: 50},
				{MemberID: "c", NetBalance: -120},
				{MemberID: "d", NetBalance: -80},
			},
			wantCount: 3,
			validateFunc: func(t *testing.T, debts []models.SimplifiedDebt) {
				// Largest debtor pairs with largest creditor first.
				if debts[0].FromMemberID != "c" || debts[0].ToMemberID != "a" {
					t.Errorf("first debt = %s->%s, want c->a", debts[0].FromMemberID, debts[0].ToMemberID)
				}
				if math.Abs(debts[0].Amount-120) > Tolerance {
					t.Errorf("first amount = %v, want 120", debts[0].Amount)
				}
			},
		},
		{
			name: "negligible balances are filtered out",
			balances: []models.MemberBalance{
				{MemberID: "a", NetBalance: 0.005},
				{MemberID: "b", NetBalance: -0.005},
			},
			wantCount: 0,
		},
		{
			name:      "no balances no debts",
			balances:  nil,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debts := SimplifyDebts(tt.balances)
			if len(debts) != tt.wantCount {
				t.Fatalf("got %d debts, want %d: %v", len(debts), tt.wantCount, debts)
			}
			for _, d := range debts {
				if d.Amount <= 0 {
					t.Errorf("debt %s->%s has non-positive amount %v", d.FromMemberID, d.ToMemberID, d.Amount)
				}
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, debts)
			}
		})
	}
}

// Applying every simplified debt as a settlement must zero out the flat:
// the plan is equivalent to the debts it replaces.
func TestSimplifyDebtsSettlesAllBalances(t *testing.T) {
	members := []models.Member{
		member("a", 1, true), member("b", 1, true), member("c", 1, true), member("d", 1, true),
	}
	expenses := []models.Expense{
		{ID: "e1", Amount: 200, PaidBy: "a", Participants: []string{"a", "b", "c", "d"}},
		{ID: "e2", Amount: 120, PaidBy: "b", Participants: []string{"b", "c"}},
		{ID: "e3", Amount: 60, PaidBy: "c", Participants: []string{"a", "d"}},
	}

	balances := CalculateMemberBalances(members, expenses, nil, nil, nil)
	debts := SimplifyDebts(balances)

	var settlements []models.Settlement
	for i, d := range debts {
		settlements = append(settlements, models.Settlement{
			ID: string(rune('0' + i)), FromMemberID: d.FromMemberID, ToMemberID: d.ToMemberID, Amount: d.Amount,
		})
	}

	after := CalculateMemberBalances(members, expenses, nil, nil, settlements)
	for _, b := range after {
		if !IsNegligible(b.NetBalance) {
			t.Errorf("%s net = %v after applying plan, want ~0", b.MemberID, b.NetBalance)
		}
	}
}

// The plan never needs more payments than non-zero balances minus one.
func TestSimplifyDebtsTransactionBound(t *testing.T) {
	balances := []models.MemberBalance{
		{MemberID: "a", NetBalance: 90},
		{MemberID: "b", NetBalance: 10},
		{MemberID: "c", NetBalance: -40},
		{MemberID: "d", NetBalance: -35},
		{MemberID: "e", NetBalance: -25},
		{MemberID: "f", NetBalance: 0},
	}

	debts := SimplifyDebts(balances)
	nonZero := 5
	if len(debts) > nonZero-1 {
		t.Errorf("got %d payments for %d non-zero balances, want <= %d", len(debts), nonZero, nonZero-1)
	}

	total := 0.0
	for _, d := range debts {
		total += d.Amount
	}
	if math.Abs(total-100) > Tolerance {
		t.Errorf("total settled = %v, want 100", total)
	}
}
