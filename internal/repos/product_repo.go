package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"stockledger/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Create(id, name string) (domain.Product, error) {
	_, err := r.db.Exec(`INSERT INTO products(product_id, name) VALUES (?, ?)`, id, name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Product{}, domain.ErrDuplicateKey
		}
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return domain.Product{ID: id, Name: name}, nil
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT product_id, name FROM products WHERE product_id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT product_id, name FROM products ORDER BY product_id`)
	return out, err
}

// Rename updates the name in place; identity never changes.
func (r *ProductRepo) Rename(id, name string) error {
	res, err := r.db.Exec(`UPDATE products SET name = ? WHERE product_id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("rename product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the product and every movement referencing it, as one
// transaction. Returns how many ledger rows the cascade removed.
func (r *ProductRepo) Delete(id string) (int64, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("begin delete product: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`DELETE FROM movements WHERE product_id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("cascade movements: %w", err)
	}
	removed, _ := res.RowsAffected()

	res, err = tx.Exec(`DELETE FROM products WHERE product_id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete product: %w", err)
	}
	return removed, nil
}
