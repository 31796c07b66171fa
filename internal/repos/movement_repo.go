package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"stockledger/internal/domain"
)

type MovementRepo struct{ db *sqlx.DB }

func NewMovementRepo(db *sqlx.DB) *MovementRepo { return &MovementRepo{db: db} }

// Row used by the movements page (ledger listing with product context).
type MovementRow struct {
	ID           string `db:"movement_id" json:"movement_id"`
	Timestamp    string `db:"timestamp" json:"timestamp"`
	ProductID    string `db:"product_id" json:"product_id"`
	ProductName  string `db:"product_name" json:"product_name"`
	FromLocation string `db:"from_location" json:"from_location,omitempty"`
	ToLocation   string `db:"to_location" json:"to_location,omitempty"`
	Qty          int    `db:"qty" json:"qty"`
}

// FlowKey identifies one (product, location) cell of the balance grid.
type FlowKey struct {
	ProductID  string `db:"product_id"`
	LocationID string `db:"location_id"`
}

// Insert appends one movement. The duplicate-id check and every reference
// check run in the same transaction as the insert, so no row can land with
// a dangling reference and no two inserts of the same id can both succeed.
func (r *MovementRepo) Insert(m domain.Movement) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin insert movement: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.Get(&n, `SELECT COUNT(*) FROM movements WHERE movement_id = ?`, m.ID); err != nil {
		return fmt.Errorf("check movement id: %w", err)
	}
	if n > 0 {
		return domain.ErrDuplicateKey
	}

	if err := tx.Get(&n, `SELECT COUNT(*) FROM products WHERE product_id = ?`, m.ProductID); err != nil {
		return fmt.Errorf("check product ref: %w", err)
	}
	if n == 0 {
		return domain.ErrReferenceNotFound
	}
	for _, loc := range []string{m.FromLocation, m.ToLocation} {
		if loc == "" {
			continue
		}
		if err := tx.Get(&n, `SELECT COUNT(*) FROM locations WHERE location_id = ?`, loc); err != nil {
			return fmt.Errorf("check location ref: %w", err)
		}
		if n == 0 {
			return domain.ErrReferenceNotFound
		}
	}

	_, err = tx.Exec(`
		INSERT INTO movements(movement_id, timestamp, product_id, from_location, to_location, qty)
		VALUES (?, ?, ?, ?, ?, ?)
	`, m.ID, m.Timestamp, m.ProductID, nullable(m.FromLocation), nullable(m.ToLocation), m.Qty)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateKey
		}
		return fmt.Errorf("insert movement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert movement: %w", err)
	}
	return nil
}

// List returns the whole ledger newest-first (movement_id breaks ties).
func (r *MovementRepo) List() ([]MovementRow, error) {
	var out []MovementRow
	err := r.db.Select(&out, `
		SELECT
			m.movement_id, m.timestamp, m.product_id, p.name AS product_name,
			COALESCE(m.from_location, '') AS from_location,
			COALESCE(m.to_location, '')   AS to_location,
			m.qty
		FROM movements m
		JOIN products p ON p.product_id = m.product_id
		ORDER BY m.timestamp DESC, m.movement_id
	`)
	return out, err
}

// InboundSums groups total qty moved into each (product, location).
func (r *MovementRepo) InboundSums() (map[FlowKey]int, error) {
	return r.sums(`
		SELECT product_id, to_location AS location_id, SUM(qty) AS total
		FROM movements
		WHERE to_location IS NOT NULL
		GROUP BY product_id, to_location
	`)
}

// OutboundSums groups total qty moved out of each (product, location).
func (r *MovementRepo) OutboundSums() (map[FlowKey]int, error) {
	return r.sums(`
		SELECT product_id, from_location AS location_id, SUM(qty) AS total
		FROM movements
		WHERE from_location IS NOT NULL
		GROUP BY product_id, from_location
	`)
}

func (r *MovementRepo) sums(query string) (map[FlowKey]int, error) {
	var rows []struct {
		FlowKey
		Total int `db:"total"`
	}
	if err := r.db.Select(&rows, query); err != nil {
		return nil, fmt.Errorf("sum movements: %w", err)
	}
	out := make(map[FlowKey]int, len(rows))
	for _, row := range rows {
		out[row.FlowKey] = row.Total
	}
	return out, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
