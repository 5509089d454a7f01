package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/models"
)

func scoresByID(scores []models.MemberReliabilityScore) map[string]models.MemberReliabilityScore {
	out := make(map[string]models.MemberReliabilityScore, len(scores))
	for _, s := range scores {
		out[s.MemberID] = s
	}
	return out
}

func TestReliabilityPerfectHistory(t *testing.T) {
	now := date(2025, 6, 15)
	members := []models.Member{member("a", 1, true)}
	bill := models.Bill{ID: "rent", FlatID: "flat-1", Name: "Rent", Amount: 100, DueDay: 10, SplitType: models.SplitEqual, IsActive: true}

	// Ten consecutive months, each paid exactly on the due day.
	var payments []models.BillPayment
	start := date(2024, 9, 10)
	for i := 0; i < 10; i++ {
		payments = append(payments, models.BillPayment{
			ID: "p", BillID: "rent", PaidBy: "a", Amount: 100,
			PaidAt: start.AddDate(0, i, 0),
		})
	}

	scores := CalculateReliabilityScores(members, nil, payments, nil, []models.Bill{bill}, now)
	if len(scores) != 1 {
		t.Fatalf("got %d scores, want 1", len(scores))
	}
	got := scores[0]
	if got.Status != models.StatusExcellent {
		t.Errorf("status = %s, want EXCELLENT", got.Status)
	}
	if got.Score < 90 {
		t.Errorf("score = %d, want >= 90", got.Score)
	}
	if got.OnTimePayments != 10 || got.LatePayments != 0 || got.MissedPayments != 0 {
		t.Errorf("counts = %d/%d/%d, want 10/0/0", got.OnTimePayments, got.LatePayments, got.MissedPayments)
	}
	if got.AverageDelayDays != 0 {
		t.Errorf("average delay = %v, want 0", got.AverageDelayDays)
	}
	if got.LongestOnTimeStreak != 10 {
		t.Errorf("longest streak = %d, want 10", got.LongestOnTimeStreak)
	}
	if got.Health != "always on time" {
		t.Errorf("health = %q, want %q", got.Health, "always on time")
	}
}

func TestReliabilityGracePeriodBoundary(t *testing.T) {
	now := date(2025, 6, 20)
	bill := models.Bill{ID: "power", FlatID: "flat-1", Name: "Power", Amount: 50, DueDay: 10, SplitType: models.SplitEqual, IsActive: true}

	tests := []struct {
		name       string
		paidAt     time.Time
		wantStatus models.PaymentStatus
		wantDelay  int
	}{
		{"exactly 3 days late is on time", date(2025, 6, 13), models.PaymentOnTime, 3},
		{"4 days late is late", date(2025, 6, 14), models.PaymentLate, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members := []models.Member{member("a", 1, true)}
			payments := []models.BillPayment{
				{ID: "p1", BillID: "power", PaidBy: "a", Amount: 50, PaidAt: tt.paidAt},
			}

			scores := CalculateReliabilityScores(members, nil, payments, nil, []models.Bill{bill}, now)
			got := scores[0]
			if len(got.PaymentHistory) != 1 {
				t.Fatalf("got %d timeline records, want 1", len(got.PaymentHistory))
			}
			rec := got.PaymentHistory[0]
			if rec.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", rec.Status, tt.wantStatus)
			}
			if rec.DelayDays != tt.wantDelay {
				t.Errorf("delay = %d, want %d", rec.DelayDays, tt.wantDelay)
			}
			if tt.wantStatus == models.PaymentLate && math.Abs(got.AverageDelayDays-float64(tt.wantDelay)) > 1e-9 {
				t.Errorf("average delay = %v, want %d", got.AverageDelayDays, tt.wantDelay)
			}
		})
	}
}

func TestReliabilityNoHistoryIsNeutral(t *testing.T) {
	now := date(2025, 6, 15)
	members := []models.Member{member("newbie", 1, true)}

	scores := CalculateReliabilityScores(members, nil, nil, nil, nil, now)
	got := scores[0]
	if got.Score != 75 {
		t.Errorf("score = %d, want neutral 75", got.Score)
	}
	if got.Status != models.StatusFair {
		t.Errorf("status = %s, want FAIR", got.Status)
	}
	if len(got.Issues) != 0 {
		t.Errorf("issues = %v, want none", got.Issues)
	}
}

func TestReliabilitySettlementTakesBackOnTimeCredit(t *testing.T) {
	now := date(2025, 6, 15)
	members := []models.Member{member("a", 1, true)}
	expenses := []models.Expense{
		{ID: "e1", FlatID: "flat-1", Amount: 30, PaidBy: "a", Participants: []string{"a"}, Date: date(2025, 5, 1)},
		{ID: "e2", FlatID: "flat-1", Amount: 20, PaidBy: "a", Participants: []string{"a"}, Date: date(2025, 5, 10)},
	}
	settlements := []models.Settlement{
		{ID: "s1", FlatID: "flat-1", FromMemberID: "a", ToMemberID: "b", Amount: 15, SettledAt: date(2025, 6, 1)},
	}

	scores := CalculateReliabilityScores(members, expenses, nil, settlements, nil, now)
	got := scores[0]
	// Two on-time expenses, then the settlement marks one of them as
	// having really been a late share.
	if got.OnTimePayments != 1 {
		t.Errorf("on-time = %d, want 1", got.OnTimePayments)
	}
	if got.LatePayments != 1 {
		t.Errorf("late = %d, want 1", got.LatePayments)
	}
}

func TestReliabilitySettlementWithoutPriorCredit(t *testing.T) {
	now := date(2025, 6, 15)
	members := []models.Member{member("a", 1, true)}
	settlements := []models.Settlement{
		{ID: "s1", FlatID: "flat-1", FromMemberID: "a", ToMemberID: "b", Amount: 15, SettledAt: date(2025, 6, 1)},
	}

	scores := CalculateReliabilityScores(members, nil, nil, settlements, nil, now)
	got := scores[0]
	// The decrement floors at zero instead of going negative.
	if got.OnTimePayments != 0 {
		t.Errorf("on-time = %d, want 0", got.OnTimePayments)
	}
	if got.LatePayments != 1 {
		t.Errorf("late = %d, want 1", got.LatePayments)
	}
	if got.Status != models.StatusPoor {
		t.Errorf("status = %s, want POOR", got.Status)
	}
}

func TestReliabilityMissedDetection(t *testing.T) {
	now := date(2025, 6, 15)
	members := []models.Member{
		member("a", 1, true), member("b", 1, true), member("c", 1, true),
	}
	bills := []models.Bill{
		// Due June 1st, two weeks unpaid: missed.
		{ID: "water", FlatID: "flat-1", Name: "Water", Amount: 90, DueDay: 1, SplitType: models.SplitEqual, IsActive: true},
		// Due June 10th, only five days unpaid: not yet missed.
		{ID: "net", FlatID: "flat-1", Name: "Internet", Amount: 60, DueDay: 10, SplitType: models.SplitEqual, IsActive: true},
	}

	scores := CalculateReliabilityScores(members, nil, nil, nil, bills, now)
	for _, got := range scores {
		if got.MissedPayments != 1 {
			t.Errorf("%s missed = %d, want 1", got.MemberID, got.MissedPayments)
		}
		if len(got.PaymentHistory) != 1 {
			t.Fatalf("%s has %d records, want 1", got.MemberID, len(got.PaymentHistory))
		}
		rec := got.PaymentHistory[0]
		if rec.Kind != models.KindMissedShare || rec.RefID != "water" {
			t.Errorf("%s record = %s/%s, want MISSED_SHARE/water", got.MemberID, rec.Kind, rec.RefID)
		}
		if math.Abs(rec.Amount-30) > Tolerance {
			t.Errorf("%s missed share = %v, want 30", got.MemberID, rec.Amount)
		}
		if len(got.Issues) == 0 {
			t.Errorf("%s has no issues, want overdue share issue", got.MemberID)
		}
	}
}

func TestReliabilityWeightedMissedShares(t *testing.T) {
	now := date(2025, 6, 15)
	members := []models.Member{member("a", 1, true), member("b", 3, true)}
	bills := []models.Bill{
		{ID: "rent", FlatID: "flat-1", Name: "Rent", Amount: 400, DueDay: 1, SplitType: models.SplitWeighted, IsActive: true},
	}

	scores := CalculateReliabilityScores(members, nil, nil, nil, bills, now)
	byID := scoresByID(scores)
	if got := byID["a"].PaymentHistory[0].Amount; math.Abs(got-100) > Tolerance {
		t.Errorf("a missed share = %v, want 100", got)
	}
	if got := byID["b"].PaymentHistory[0].Amount; math.Abs(got-300) > Tolerance {
		t.Errorf("b missed share = %v, want 300", got)
	}
}

func TestReliabilityMonthlyBuckets(t *testing.T) {
	now := date(2025, 6, 20)
	members := []models.Member{member("a", 1, true)}
	bill := models.Bill{ID: "power", FlatID: "flat-1", Name: "Power", Amount: 1000, DueDay: 10, SplitType: models.SplitEqual, IsActive: false}
	payments := []models.BillPayment{
		{ID: "p1", BillID: "power", PaidBy: "a", Amount: 50, PaidAt: date(2025, 6, 10)}, // on time
		{ID: "p2", BillID: "power", PaidBy: "a", Amount: 50, PaidAt: date(2025, 5, 20)}, // 10 days late
		{ID: "p3", BillID: "power", PaidBy: "a", Amount: 50, PaidAt: date(2024, 1, 10)}, // outside the window
	}

	scores := CalculateReliabilityScores(members, nil, payments, nil, []models.Bill{bill}, now)
	got := scores[0]
	if len(got.MonthlyBehavior) != 6 {
		t.Fatalf("got %d buckets, want 6", len(got.MonthlyBehavior))
	}
	if got.MonthlyBehavior[0].Month != "2025-01" || got.MonthlyBehavior[5].Month != "2025-06" {
		t.Errorf("bucket range = %s..%s, want 2025-01..2025-06",
			got.MonthlyBehavior[0].Month, got.MonthlyBehavior[5].Month)
	}
	byMonth := make(map[string]models.MonthlyBehavior)
	for _, mb := range got.MonthlyBehavior {
		byMonth[mb.Month] = mb
	}
	if byMonth["2025-06"].OnTime != 1 || byMonth["2025-06"].Late != 0 {
		t.Errorf("june = %+v, want 1 on-time", byMonth["2025-06"])
	}
	if byMonth["2025-05"].Late != 1 {
		t.Errorf("may = %+v, want 1 late", byMonth["2025-05"])
	}
}

func TestReliabilityScoresSortedDescending(t *testing.T) {
	now := date(2025, 6, 15)
	members := []models.Member{member("slacker", 1, true), member("steady", 1, true)}
	bill := models.Bill{ID: "rent", FlatID: "flat-1", Name: "Rent", Amount: 100, DueDay: 10, SplitType: models.SplitEqual, IsActive: false}
	payments := []models.BillPayment{
		{ID: "p1", BillID: "rent", PaidBy: "steady", Amount: 100, PaidAt: date(2025, 5, 10)},
		{ID: "p2", BillID: "rent", PaidBy: "slacker", Amount: 100, PaidAt: date(2025, 5, 30)},
	}

	scores := CalculateReliabilityScores(members, nil, payments, nil, []models.Bill{bill}, now)
	if scores[0].MemberID != "steady" {
		t.Errorf("first = %s, want steady", scores[0].MemberID)
	}
	for i := 1; i < len(scores); i++ {
		if scores[i].Score > scores[i-1].Score {
			t.Fatalf("scores not sorted descending: %v", scores)
		}
	}
}
