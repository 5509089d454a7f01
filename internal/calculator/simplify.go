package calculator

import (
	"math"
	"sort"

	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/models"
)

// SimplifyDebts collapses a flat's net balances into a near-minimal list of
// settling payments. The naive who-owes-whom view can show a full pairwise
// graph; this uses the classic greedy netting heuristic instead: repeatedly
// match the largest outstanding debtor with the largest outstanding
// creditor and settle the smaller of the two amounts.
//
// Applying every returned debt as a settlement drives all net balances to
// ~zero. Ties in magnitude resolve by input order; callers must not depend
// on tie order.
func SimplifyDebts(balances []models.MemberBalance) []models.SimplifiedDebt {
	type stake struct {
		memberID string
		amount   float64
	}

	var creditors, debtors []stake
	for _, b := range balances {
		switch {
		case IsNegligible(b.NetBalance):
			// Already settled, ignore rounding noise.
		case b.NetBalance > 0:
			creditors = append(creditors, stake{b.MemberID, b.NetBalance})
		default:
			debtors = append(debtors, stake{b.MemberID, -b.NetBalance})
		}
	}

	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].amount > creditors[j].amount })
	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].amount > debtors[j].amount })

	var debts []models.SimplifiedDebt
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := math.Min(debtors[i].amount, creditors[j].amount)
		if amount > Tolerance {
			debts = append(debts, models.SimplifiedDebt{
				FromMemberID: debtors[i].memberID,
				ToMemberID:   creditors[j].memberID,
				Amount:       amount,
			})
		}

		debtors[i].amount -= amount
		creditors[j].amount -= amount

		if IsNegligible(debtors[i].amount) {
			i++
		}
		if IsNegligible(creditors[j].amount) {
			j++
		}
	}

	return debts
}
