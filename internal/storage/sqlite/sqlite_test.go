package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/models"
	"github.com/SravanKumarPolu/FlatFlow-sub000/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreMembers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateMember generates ID and defaults weight", func(t *testing.T) {
		m := &models.Member{FlatID: "flat-1", Name: "Alice", IsActive: true}
		if err := store.CreateMember(ctx, m); err != nil {
			t.Fatalf("CreateMember failed: %v", err)
		}
		if m.ID == "" {
			t.Error("Expected member ID to be generated")
		}
		if m.Weight != models.DefaultWeight {
			t.Errorf("Weight = %v, want default %v", m.Weight, models.DefaultWeight)
		}
		if m.JoinedAt.IsZero() {
			t.Error("Expected JoinedAt to be set")
		}
	})

	t.Run("ListMembers scopes by flat", func(t *testing.T) {
		other := &models.Member{FlatID: "flat-2", Name: "Stranger", IsActive: true}
		if err := store.CreateMember(ctx, other); err != nil {
			t.Fatalf("CreateMember failed: %v", err)
		}

		members, err := store.ListMembers(ctx, "flat-1")
		if err != nil {
			t.Fatalf("ListMembers failed: %v", err)
		}
		for _, m := range members {
			if m.FlatID != "flat-1" {
				t.Errorf("member %s belongs to %s, want flat-1", m.ID, m.FlatID)
			}
		}
	})

	t.Run("UpdateMember changes weight and active flag", func(t *testing.T) {
		m := &models.Member{FlatID: "flat-1", Name: "Bob", Weight: 1, IsActive: true}
		if err := store.CreateMember(ctx, m); err != nil {
			t.Fatalf("CreateMember failed: %v", err)
		}

		m.Weight = 2.5
		m.IsActive = false
		if err := store.UpdateMember(ctx, m); err != nil {
			t.Fatalf("UpdateMember failed: %v", err)
		}

		members, err := store.ListMembers(ctx, "flat-1")
		if err != nil {
			t.Fatalf("ListMembers failed: %v", err)
		}
		found := false
		for _, got := range members {
			if got.ID == m.ID {
				found = true
				if got.Weight != 2.5 || got.IsActive {
					t.Errorf("updated member = %+v, want weight 2.5, inactive", got)
				}
			}
		}
		if !found {
			t.Error("updated member not listed")
		}
	})

	t.Run("UpdateMember unknown ID returns ErrNotFound", func(t *testing.T) {
		err := store.UpdateMember(ctx, &models.Member{ID: "nope", Name: "X", Weight: 1})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestSQLiteStoreExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	date := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("CreateExpense round trips with participants", func(t *testing.T) {
		e := &models.Expense{
			FlatID:       "flat-1",
			Description:  "Weekly shop",
			Amount:       84.20,
			PaidBy:       "m1",
			Participants: []string{"m1", "m2", "m3"},
			Date:         date,
			Category:     models.CategoryGroceries,
		}
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		expenses, err := store.ListExpenses(ctx, "flat-1")
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(expenses) != 1 {
			t.Fatalf("got %d expenses, want 1", len(expenses))
		}
		got := expenses[0]
		if got.Amount != e.Amount || got.PaidBy != "m1" || got.Category != models.CategoryGroceries {
			t.Errorf("expense = %+v, want fields of %+v", got, e)
		}
		if len(got.Participants) != 3 {
			t.Errorf("participants = %v, want 3 entries", got.Participants)
		}
	})

	t.Run("DeleteExpense removes it", func(t *testing.T) {
		e := &models.Expense{
			FlatID: "flat-1", Description: "Takeaway", Amount: 30,
			PaidBy: "m1", Participants: []string{"m1", "m2"}, Date: date,
			Category: models.CategoryDining,
		}
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if err := store.DeleteExpense(ctx, e.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		if err := store.DeleteExpense(ctx, e.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second delete err = %v, want ErrNotFound", err)
		}
	})
}

func TestSQLiteStoreBillsAndPayments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	bill := &models.Bill{
		FlatID:    "flat-1",
		Name:      "Rent",
		Amount:    1200,
		DueDay:    1,
		SplitType: models.SplitWeighted,
		IsActive:  true,
	}
	if err := store.CreateBill(ctx, bill); err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	if bill.ID == "" {
		t.Fatal("Expected bill ID to be generated")
	}

	t.Run("ListBills round trips", func(t *testing.T) {
		bills, err := store.ListBills(ctx, "flat-1")
		if err != nil {
			t.Fatalf("ListBills failed: %v", err)
		}
		if len(bills) != 1 {
			t.Fatalf("got %d bills, want 1", len(bills))
		}
		got := bills[0]
		if got.Name != "Rent" || got.DueDay != 1 || got.SplitType != models.SplitWeighted || !got.IsActive {
			t.Errorf("bill = %+v, want fields of %+v", got, bill)
		}
	})

	t.Run("UpdateBill deactivates", func(t *testing.T) {
		bill.IsActive = false
		if err := store.UpdateBill(ctx, bill); err != nil {
			t.Fatalf("UpdateBill failed: %v", err)
		}
		bills, err := store.ListBills(ctx, "flat-1")
		if err != nil {
			t.Fatalf("ListBills failed: %v", err)
		}
		if bills[0].IsActive {
			t.Error("bill still active after update")
		}
	})

	t.Run("CreateBillPayment round trips", func(t *testing.T) {
		p := &models.BillPayment{
			FlatID: "flat-1",
			BillID: bill.ID,
			PaidBy: "m1",
			Amount: 600,
			PaidAt: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		}
		if err := store.CreateBillPayment(ctx, p); err != nil {
			t.Fatalf("CreateBillPayment failed: %v", err)
		}

		payments, err := store.ListBillPayments(ctx, "flat-1")
		if err != nil {
			t.Fatalf("ListBillPayments failed: %v", err)
		}
		if len(payments) != 1 {
			t.Fatalf("got %d payments, want 1", len(payments))
		}
		if payments[0].BillID != bill.ID || payments[0].Amount != 600 {
			t.Errorf("payment = %+v, want bill %s amount 600", payments[0], bill.ID)
		}
	})
}

func TestSQLiteStoreSettlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	s := &models.Settlement{
		FlatID:       "flat-1",
		FromMemberID: "m1",
		ToMemberID:   "m2",
		Amount:       42.50,
		Note:         "march catch-up",
	}
	if err := store.CreateSettlement(ctx, s); err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}
	if s.ID == "" {
		t.Fatal("Expected settlement ID to be generated")
	}

	settlements, err := store.ListSettlements(ctx, "flat-1")
	if err != nil {
		t.Fatalf("ListSettlements failed: %v", err)
	}
	if len(settlements) != 1 {
		t.Fatalf("got %d settlements, want 1", len(settlements))
	}
	got := settlements[0]
	if got.FromMemberID != "m1" || got.ToMemberID != "m2" || got.Note != "march catch-up" {
		t.Errorf("settlement = %+v, want fields of %+v", got, s)
	}

	if err := store.DeleteSettlement(ctx, s.ID); err != nil {
		t.Fatalf("DeleteSettlement failed: %v", err)
	}
	if err := store.DeleteSettlement(ctx, s.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}
