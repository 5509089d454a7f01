package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist. Dates are stored as Unix
// seconds; booleans as 0/1 integers.
const schema = `
CREATE TABLE IF NOT EXISTS members (
    id TEXT PRIMARY KEY,
    flat_id TEXT NOT NULL,
    name TEXT NOT NULL,
    weight REAL NOT NULL DEFAULT 1.0,
    is_active INTEGER NOT NULL DEFAULT 1,
    joined_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    flat_id TEXT NOT NULL,
    description TEXT NOT NULL,
    amount REAL NOT NULL,
    paid_by TEXT NOT NULL,
    date INTEGER NOT NULL,
    category TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS expense_participants (
    expense_id TEXT NOT NULL,
    member_id TEXT NOT NULL,
    PRIMARY KEY (expense_id, member_id),
    FOREIGN KEY (expense_id) REFERENCES expenses(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS bills (
    id TEXT PRIMARY KEY,
    flat_id TEXT NOT NULL,
    name TEXT NOT NULL,
    amount REAL NOT NULL,
    due_day INTEGER NOT NULL,
    split_type TEXT NOT NULL,
    is_active INTEGER NOT NULL DEFAULT 1,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS bill_payments (
    id TEXT PRIMARY KEY,
    flat_id TEXT NOT NULL,
    bill_id TEXT NOT NULL,
    paid_by TEXT NOT NULL,
    amount REAL NOT NULL,
    paid_at INTEGER NOT NULL,
    FOREIGN KEY (bill_id) REFERENCES bills(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS settlements (
    id TEXT PRIMARY KEY,
    flat_id TEXT NOT NULL,
    from_member_id TEXT NOT NULL,
    to_member_id TEXT NOT NULL,
    amount REAL NOT NULL,
    settled_at INTEGER NOT NULL,
    note TEXT
);

CREATE INDEX IF NOT EXISTS idx_members_flat_id ON members(flat_id);
CREATE INDEX IF NOT EXISTS idx_expenses_flat_id ON expenses(flat_id);
CREATE INDEX IF NOT EXISTS idx_expense_participants_expense_id ON expense_participants(expense_id);
CREATE INDEX IF NOT EXISTS idx_bills_flat_id ON bills(flat_id);
CREATE INDEX IF NOT EXISTS idx_bill_payments_flat_id ON bill_payments(flat_id);
CREATE INDEX IF NOT EXISTS idx_bill_payments_bill_id ON bill_payments(bill_id);
CREATE INDEX IF NOT EXISTS idx_settlements_flat_id ON settlements(flat_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
