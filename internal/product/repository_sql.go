package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/Anhamd/fitbazzar/internal/database"
)

type SQLRepository struct {
	db *database.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	listProductsQuery = `
		SELECT id, name, price, image, description
		FROM products
		ORDER BY id
	`
	getProductsByIDsPostgres = `
		SELECT id, name, price, image, description
		FROM products
		WHERE id = ANY(?::bigint[])
	`
	getProductsByIDsMySQL = `
		SELECT id, name, price, image, description
		FROM products
		WHERE id IN (%s)
	`
	countProductsQuery = `SELECT COUNT(*) FROM products`
	insertProductQuery = `INSERT INTO products (name, price, image, description) VALUES (?, ?, ?, ?)`
)

func NewSQLRepository(db *database.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, listProductsQuery)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *SQLRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]Product, error) {
	out := make(map[int64]Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var (
		rows *sql.Rows
		err  error
	)
	if r.db.Dialect == database.Postgres {
		rows, err = r.db.QueryContext(ctx, r.db.Rebind(getProductsByIDsPostgres), pq.Array(ids))
	} else {
		marks := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
		args := make([]any, len(ids))
		for i, id := range ids {
			args[i] = id
		}
		rows, err = r.db.QueryContext(ctx, fmt.Sprintf(getProductsByIDsMySQL, marks), args...)
	}
	if err != nil {
		return nil, fmt.Errorf("query products by id: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

func (r *SQLRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countProductsQuery).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (r *SQLRepository) Create(ctx context.Context, p Product) (Product, error) {
	id, err := r.db.InsertID(ctx, insertProductQuery,
		p.Name,
		p.Price,
		nullString(p.Image),
		nullString(p.Description),
	)
	if err != nil {
		return Product{}, fmt.Errorf("insert product: %w", err)
	}
	p.ID = id
	return p, nil
}

func scanProducts(rows *sql.Rows) ([]Product, error) {
	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return out, nil
}

func scanProduct(scanner rowScanner) (Product, error) {
	var (
		p     Product
		image sql.NullString
		desc  sql.NullString
	)
	if err := scanner.Scan(&p.ID, &p.Name, &p.Price, &image, &desc); err != nil {
		return Product{}, err
	}
	p.Image = image.String
	p.Description = desc.String
	return p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
