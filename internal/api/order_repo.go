package api

import (
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"larek/internal/domain"
)

var (
	ErrEmptyOrder    = errors.New("order has no items")
	ErrTotalMismatch = errors.New("order total does not match item prices")
)

type OrderRepo struct {
	db    *sqlx.DB
	prods *ProductRepo
}

func NewOrderRepo(db *sqlx.DB, prods *ProductRepo) *OrderRepo {
	return &OrderRepo{db: db, prods: prods}
}

// Create verifies the order against the current catalog and stores it.
// The client-supplied total must match the server-side sum; priceless
// and unknown items are rejected outright.
func (r *OrderRepo) Create(o domain.Order) (string, error) {
	if len(o.Items) == 0 {
		return "", ErrEmptyOrder
	}

	type line struct {
		id    string
		price float64
	}
	lines := make([]line, 0, len(o.Items))
	serverTotal := 0.0
	for _, id := range o.Items {
		p, err := r.prods.Get(id)
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("unknown item %s", id)
		}
		if err != nil {
			return "", err
		}
		if p.Price == nil {
			return "", fmt.Errorf("item %s is not for sale", id)
		}
		lines = append(lines, line{id: p.ID, price: *p.Price})
		serverTotal += *p.Price
	}
	if math.Abs(serverTotal-o.Total) > 0.001 {
		return "", ErrTotalMismatch
	}

	orderID := uuid.NewString()
	tx, err := r.db.Beginx()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders(id,payment,address,email,phone,total)
	  VALUES(?,?,?,?,?,?)
	`, orderID, string(o.Payment), o.Address, o.Email, o.Phone, serverTotal); err != nil {
		return "", err
	}
	for _, l := range lines {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id,product_id,price) VALUES(?,?,?)
		`, orderID, l.id, l.price); err != nil {
			return "", err
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return orderID, nil
}
