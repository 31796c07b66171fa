package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"stockledger/internal/domain"
)

type LocationRepo struct{ db *sqlx.DB }

func NewLocationRepo(db *sqlx.DB) *LocationRepo { return &LocationRepo{db: db} }

func (r *LocationRepo) Create(id, name string) (domain.Location, error) {
	_, err := r.db.Exec(`INSERT INTO locations(location_id, name) VALUES (?, ?)`, id, name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Location{}, domain.ErrDuplicateKey
		}
		return domain.Location{}, fmt.Errorf("insert location: %w", err)
	}
	return domain.Location{ID: id, Name: name}, nil
}

func (r *LocationRepo) Get(id string) (domain.Location, error) {
	var l domain.Location
	err := r.db.Get(&l, `SELECT location_id, name FROM locations WHERE location_id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Location{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Location{}, fmt.Errorf("get location: %w", err)
	}
	return l, nil
}

func (r *LocationRepo) List() ([]domain.Location, error) {
	var out []domain.Location
	err := r.db.Select(&out, `SELECT location_id, name FROM locations ORDER BY location_id`)
	return out, err
}

func (r *LocationRepo) Rename(id, name string) error {
	res, err := r.db.Exec(`UPDATE locations SET name = ? WHERE location_id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("rename location: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the location and every movement touching it as either
// endpoint, as one transaction. Returns the cascaded row count.
func (r *LocationRepo) Delete(id string) (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("begin delete location: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`DELETE FROM movements WHERE from_location = ? OR to_location = ?`, id, id)
	if err != nil {
		return 0, fmt.Errorf("cascade movements: %w", err)
	}
	removed, _ := res.RowsAffected()

	res, err = tx.Exec(`DELETE FROM locations WHERE location_id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete location: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete location: %w", err)
	}
	return removed, nil
}
