package calculator

import (
	"math"
	"sort"

	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/models"
)

// CalculateMemberBalances computes the net balance of every member of one
// flat from its full entity set. All input lists must already be scoped to
// a single flat; the function never mutates its inputs and never fails.
// Anomalous input (zero participants, dangling member IDs, zero weights)
// contributes nothing instead of erroring.
//
// Algorithm:
//   - For each expense: every participant other than the payer owes an
//     equal share, and the payer receives it. The payer is never charged
//     their own share.
//   - For each active bill: the unpaid remainder is distributed across
//     active members only, equally or by weight.
//   - For each settlement: the payer's owed amount and the payee's
//     receivable both shrink, floored at zero.
//   - net = receives - owes.
//
// The result is sorted ascending by net balance, largest debtor first.
func CalculateMemberBalances(
	members []models.Member,
	expenses []models.Expense,
	bills []models.Bill,
	billPayments []models.BillPayment,
	settlements []models.Settlement,
) []models.MemberBalance {
	if len(members) == 0 {
		return nil
	}

	balances := make(map[string]*models.MemberBalance, len(members))
	order := make([]string, 0, len(members))
	for _, m := range members {
		balances[m.ID] = &models.MemberBalance{MemberID: m.ID}
		order = append(order, m.ID)
	}

	for _, e := range expenses {
		if len(e.Participants) == 0 {
			continue
		}
		payer, ok := balances[e.PaidBy]
		if !ok {
			// Dangling payer reference; skipping the whole expense keeps
			// the flat's net balances zero-sum.
			continue
		}
		share := e.Amount / float64(len(e.Participants))
		for _, id := range e.Participants {
			if id == e.PaidBy {
				continue
			}
			participant, ok := balances[id]
			if !ok {
				continue
			}
			participant.Owes += share
			payer.Receives += share
		}
	}

	paidByBill := make(map[string]float64, len(billPayments))
	for _, p := range billPayments {
		paidByBill[p.BillID] += p.Amount
	}

	active := activeMembers(members)
	totalWeight := 0.0
	for _, m := range active {
		totalWeight += m.Weight
	}

	for _, b := range bills {
		if !b.IsActive || len(active) == 0 {
			continue
		}
		remaining := b.Amount - paidByBill[b.ID]
		if remaining <= 0 {
			continue
		}
		for _, m := range active {
			balances[m.ID].Owes += memberShare(remaining, m, b.SplitType, len(active), totalWeight)
		}
	}

	// A settlement extinguishes debt on both sides: the payer owes less
	// and the payee has less outstanding to receive. Both columns clamp
	// at zero; a balance cannot represent owing negative money.
	for _, s := range settlements {
		if from, ok := balances[s.FromMemberID]; ok {
			from.Owes = math.Max(0, from.Owes-s.Amount)
		}
		if to, ok := balances[s.ToMemberID]; ok {
			to.Receives = math.Max(0, to.Receives-s.Amount)
		}
	}

	result := make([]models.MemberBalance, 0, len(order))
	for _, id := range order {
		bal := balances[id]
		bal.NetBalance = bal.Receives - bal.Owes
		result = append(result, *bal)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].NetBalance < result[j].NetBalance
	})
	return result
}

// memberShare returns one active member's share of a bill remainder.
// Weighted splits with a zero total weight fall back to an equal split so
// the division is always defined.
func memberShare(remaining float64, m models.Member, split models.SplitType, activeCount int, totalWeight float64) float64 {
	if split == models.SplitWeighted && totalWeight > 0 {
		return remaining * (m.Weight / totalWeight)
	}
	return remaining / float64(activeCount)
}

func activeMembers(members []models.Member) []models.Member {
	var active []models.Member
	for _, m := range members {
		if m.IsActive {
			active = append(active, m)
		}
	}
	return active
}
