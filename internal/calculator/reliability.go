package calculator

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/models"
)

const (
	// neutralScore is assigned to members with no payment history at all,
	// so new flatmates start FAIR instead of POOR.
	neutralScore = 75

	// gracePeriodDays is how many days past the due date a bill payment
	// still counts as on time.
	gracePeriodDays = 3

	// missedDetectionLagDays is how far past its last due date an unpaid
	// bill must be before its remainder shows up as missed shares.
	missedDetectionLagDays = 7

	// trailingMonths is the size of the monthly-behavior window.
	trailingMonths = 6
)

// CalculateReliabilityScores derives a 0-100 payment-reliability score for
// every member of one flat from its payment history. Like the balance
// calculation it is a pure function over pre-filtered entity lists; now is
// the reference instant for due-date and missed-payment decisions and is
// injected so results are reproducible.
//
// Per member the timeline holds:
//   - one on-time record per expense they paid (expenses are recorded at
//     the moment of payment, so they are on time by definition),
//   - one record per bill payment, classified against the bill's due day
//     in the payment's month with a 3-day grace period,
//   - one late record per settlement they made; a settlement is evidence
//     of a previously unpaid share, so it also takes back one earlier
//     on-time credit,
//   - one missed record per unpaid share of an overdue active bill.
//
// Results are sorted descending by score.
func CalculateReliabilityScores(
	members []models.Member,
	expenses []models.Expense,
	billPayments []models.BillPayment,
	settlements []models.Settlement,
	bills []models.Bill,
	now time.Time,
) []models.MemberReliabilityScore {
	billsByID := make(map[string]models.Bill, len(bills))
	paidByBill := make(map[string]float64, len(billPayments))
	for _, b := range bills {
		billsByID[b.ID] = b
	}
	for _, p := range billPayments {
		paidByBill[p.BillID] += p.Amount
	}

	missedByMember := collectMissedShares(members, bills, paidByBill, now)

	scores := make([]models.MemberReliabilityScore, 0, len(members))
	for _, m := range members {
		timeline := buildTimeline(m, expenses, billPayments, settlements, billsByID, missedByMember[m.ID])
		scores = append(scores, scoreTimeline(m.ID, timeline, now))
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}

// collectMissedShares finds every active bill whose remainder is still
// unpaid more than missedDetectionLagDays after its last due date, and
// distributes the remainder across active members the same way the balance
// calculation does.
func collectMissedShares(members []models.Member, bills []models.Bill, paidByBill map[string]float64, now time.Time) map[string][]models.PaymentRecord {
	active := activeMembers(members)
	if len(active) == 0 {
		return nil
	}
	totalWeight := 0.0
	for _, m := range active {
		totalWeight += m.Weight
	}

	missed := make(map[string][]models.PaymentRecord)
	for _, b := range bills {
		if !b.IsActive {
			continue
		}
		remaining := b.Amount - paidByBill[b.ID]
		if remaining <= 0 {
			continue
		}
		lastDue := LastDueDate(b.DueDay, now)
		if daysPastDue(lastDue, now) <= missedDetectionLagDays {
			continue
		}
		for _, m := range active {
			missed[m.ID] = append(missed[m.ID], models.PaymentRecord{
				Kind:   models.KindMissedShare,
				Status: models.PaymentMissed,
				RefID:  b.ID,
				Amount: memberShare(remaining, m, b.SplitType, len(active), totalWeight),
				Date:   lastDue,
			})
		}
	}
	return missed
}

// buildTimeline assembles one member's payment records, sorted ascending
// by date. Payments against bills that no longer exist are dropped.
func buildTimeline(
	m models.Member,
	expenses []models.Expense,
	billPayments []models.BillPayment,
	settlements []models.Settlement,
	billsByID map[string]models.Bill,
	missed []models.PaymentRecord,
) []models.PaymentRecord {
	var timeline []models.PaymentRecord

	for _, e := range expenses {
		if e.PaidBy != m.ID {
			continue
		}
		timeline = append(timeline, models.PaymentRecord{
			Kind:   models.KindExpense,
			Status: models.PaymentOnTime,
			RefID:  e.ID,
			Amount: e.Amount,
			Date:   e.Date,
		})
	}

	for _, p := range billPayments {
		if p.PaidBy != m.ID {
			continue
		}
		bill, ok := billsByID[p.BillID]
		if !ok {
			continue
		}
		due := DueDateInMonth(bill.DueDay, p.PaidAt)
		delay := daysPastDue(due, p.PaidAt)
		status := models.PaymentOnTime
		if delay > gracePeriodDays {
			status = models.PaymentLate
		}
		timeline = append(timeline, models.PaymentRecord{
			Kind:      models.KindBillPayment,
			Status:    status,
			RefID:     p.BillID,
			Amount:    p.Amount,
			Date:      p.PaidAt,
			DelayDays: delay,
		})
	}

	for _, s := range settlements {
		if s.FromMemberID != m.ID {
			continue
		}
		timeline = append(timeline, models.PaymentRecord{
			Kind:   models.KindSettlement,
			Status: models.PaymentLate,
			RefID:  s.ID,
			Amount: s.Amount,
			Date:   s.SettledAt,
		})
	}

	timeline = append(timeline, missed...)

	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].Date.Before(timeline[j].Date)
	})
	return timeline
}

// scoreTimeline runs the scoring formula over one member's timeline. The
// order of adjustments matters and is fixed: punctuality base, late
// penalty, missed penalty, streak bonus, payment-ratio adjustment, clamp.
func scoreTimeline(memberID string, timeline []models.PaymentRecord, now time.Time) models.MemberReliabilityScore {
	score := models.MemberReliabilityScore{
		MemberID:        memberID,
		PaymentHistory:  timeline,
		MonthlyBehavior: bucketByMonth(timeline, now),
	}

	var (
		onTime, late, missed int
		lateBillPayments     int
		totalDelay           int
		streak, longest      int
		totalPaid, totalOwed float64
	)

	for _, r := range timeline {
		totalOwed += r.Amount
		switch r.Status {
		case models.PaymentOnTime:
			onTime++
			totalPaid += r.Amount
			streak++
			if streak > longest {
				longest = streak
			}
		case models.PaymentLate:
			late++
			totalPaid += r.Amount
			streak = 0
			switch r.Kind {
			case models.KindBillPayment:
				totalDelay += r.DelayDays
				lateBillPayments++
			case models.KindSettlement:
				// The settlement stands in for an earlier share that was
				// not paid on time, so one prior on-time credit is taken
				// back. Floored at zero: with no prior credit this
				// silently no-ops, a known asymmetry of the model.
				if onTime > 0 {
					onTime--
				}
			}
		case models.PaymentMissed:
			missed++
			streak = 0
		}
	}

	score.OnTimePayments = onTime
	score.LatePayments = late
	score.MissedPayments = missed
	score.LongestOnTimeStreak = longest
	if lateBillPayments > 0 {
		score.AverageDelayDays = float64(totalDelay) / float64(lateBillPayments)
	}

	total := onTime + late + missed
	if len(timeline) == 0 || total == 0 {
		score.Score = neutralScore
		score.Status = models.StatusFair
		score.Health = healthLabel(score.Status, 0)
		return score
	}

	// Punctuality maps onto a 30-100 band before adjustments; a flawless
	// history lands on 100 and an entirely late one on 30, which the
	// penalties below then pull toward zero.
	base := 30 + float64(onTime)/float64(total)*70
	if late > 0 {
		base -= float64(late) / float64(total) * math.Min(20, score.AverageDelayDays*0.5)
	}
	base -= math.Min(10, float64(missed)*2)
	if longest >= 6 {
		base += math.Min(10, float64(longest-5))
	}

	ratio := 1.0
	if totalOwed > 0 {
		ratio = totalPaid / totalOwed
	}
	if ratio >= 1 {
		base += math.Min(10, (ratio-1)*10)
	} else {
		base -= (1 - ratio) * 10
	}

	score.Score = int(math.Round(math.Max(0, math.Min(100, base))))
	score.Status = statusForScore(score.Score)

	lateRate := float64(late) / float64(total)
	score.Health = healthLabel(score.Status, lateRate)
	score.Issues = issueTexts(score)
	return score
}

func statusForScore(score int) models.ReliabilityStatus {
	switch {
	case score >= 90:
		return models.StatusExcellent
	case score >= 75:
		return models.StatusGood
	case score >= 60:
		return models.StatusFair
	default:
		return models.StatusPoor
	}
}

// healthLabel derives the secondary indicator from the status band plus
// the late rate: a GOOD member whose late rate is under 10% still reads as
// "always on time".
func healthLabel(status models.ReliabilityStatus, lateRate float64) string {
	switch status {
	case models.StatusExcellent:
		return "always on time"
	case models.StatusGood:
		if lateRate <= 0.10 {
			return "always on time"
		}
		return "mostly on time"
	case models.StatusFair:
		return "sometimes late"
	default:
		return "often late or missing"
	}
}

// bucketByMonth groups the timeline into the trailing six calendar months
// ending at now, oldest first. Missed shares count into the Late column.
func bucketByMonth(timeline []models.PaymentRecord, now time.Time) []models.MonthlyBehavior {
	buckets := make([]models.MonthlyBehavior, trailingMonths)
	index := make(map[string]int, trailingMonths)
	y, m, _ := now.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(trailingMonths - 1), 0)
	for i := 0; i < trailingMonths; i++ {
		key := first.AddDate(0, i, 0).Format("2006-01")
		buckets[i] = models.MonthlyBehavior{Month: key}
		index[key] = i
	}

	for _, r := range timeline {
		i, ok := index[r.Date.Format("2006-01")]
		if !ok {
			continue
		}
		if r.Status == models.PaymentOnTime {
			buckets[i].OnTime++
		} else {
			buckets[i].Late++
		}
	}
	return buckets
}

func issueTexts(score models.MemberReliabilityScore) []string {
	var issues []string
	if score.MissedPayments > 0 {
		issues = append(issues, fmt.Sprintf("%d unpaid bill shares overdue", score.MissedPayments))
	}
	if score.AverageDelayDays > gracePeriodDays {
		issues = append(issues, fmt.Sprintf("late payments average %.0f days past due", score.AverageDelayDays))
	}
	for _, r := range score.PaymentHistory {
		if r.Kind == models.KindSettlement {
			issues = append(issues, "relies on settlements to clear overdue shares")
			break
		}
	}
	return issues
}
