package api

import (
	"github.com/jmoiron/sqlx"

	"larek/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

type ProductRow struct {
	ID          string   `db:"id"`
	Title       string   `db:"title"`
	Description string   `db:"description"`
	Price       *float64 `db:"price"`
	Image       string   `db:"image"`
	Category    string   `db:"category"`
}

func (r ProductRow) Wire() domain.APIProduct {
	return domain.APIProduct{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Image:       r.Image,
		Category:    r.Category,
	}
}

func (r *ProductRepo) List() ([]ProductRow, error) {
	var out []ProductRow
	err := r.db.Select(&out, `
	  SELECT id, title, COALESCE(description,'') AS description, price, image, category
	  FROM products
	  ORDER BY created_at, id
	`)
	return out, err
}

func (r *ProductRepo) Get(id string) (ProductRow, error) {
	var p ProductRow
	err := r.db.Get(&p, `
	  SELECT id, title, COALESCE(description,'') AS description, price, image, category
	  FROM products
	  WHERE id = ?
	`, id)
	return p, err
}
