package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"pricelist/internal/domain/price"
)

const uniqueViolation = "23505"

type PriceRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewPriceRepository(pool *pgxpool.Pool, log *slog.Logger) *PriceRepository {
	return &PriceRepository{
		pool: pool,
		log:  log.With("component", "price_repository"),
	}
}

func (r *PriceRepository) List(ctx context.Context) ([]price.Price, error) {
	const query = `
		SELECT id, marca, codigo, preco, descricao, timestamp
		FROM precos
		ORDER BY marca ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.log.Error("failed to list prices", "error", err)
		return nil, fmt.Errorf("list prices: %w", err)
	}
	defer rows.Close()

	prices := []price.Price{}
	for rows.Next() {
		var p price.Price
		if err := rows.Scan(&p.ID, &p.Brand, &p.Code, &p.Value, &p.Description, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		prices = append(prices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list prices: %w", err)
	}

	return prices, nil
}

func (r *PriceRepository) Find(ctx context.Context, id string) (*price.Price, error) {
	const query = `
		SELECT id, marca, codigo, preco, descricao, timestamp
		FROM precos
		WHERE id = $1`

	var p price.Price
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.Brand, &p.Code, &p.Value, &p.Description, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, price.ErrNotFound
		}
		r.log.Error("failed to find price", "id", id, "error", err)
		return nil, fmt.Errorf("find price: %w", err)
	}

	return &p, nil
}

func (r *PriceRepository) Create(ctx context.Context, p price.Price) (*price.Price, error) {
	const query = `
		INSERT INTO precos (id, marca, codigo, preco, descricao, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, marca, codigo, preco, descricao, timestamp`

	var created price.Price
	err := r.pool.QueryRow(ctx, query,
		p.ID, p.Brand, p.Code, p.Value, p.Description, p.UpdatedAt,
	).Scan(&created.ID, &created.Brand, &created.Code, &created.Value,
		&created.Description, &created.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, price.ErrDuplicateCode
		}
		r.log.Error("failed to create price", "code", p.Code, "error", err)
		return nil, fmt.Errorf("create price: %w", err)
	}

	return &created, nil
}

func (r *PriceRepository) Update(ctx context.Context, p price.Price) (*price.Price, error) {
	const query = `
		UPDATE precos
		SET marca = $2, codigo = $3, preco = $4, descricao = $5, timestamp = $6
		WHERE id = $1
		RETURNING id, marca, codigo, preco, descricao, timestamp`

	var updated price.Price
	err := r.pool.QueryRow(ctx, query,
		p.ID, p.Brand, p.Code, p.Value, p.Description, p.UpdatedAt,
	).Scan(&updated.ID, &updated.Brand, &updated.Code, &updated.Value,
		&updated.Description, &updated.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, price.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, price.ErrDuplicateCode
		}
		r.log.Error("failed to update price", "id", p.ID, "error", err)
		return nil, fmt.Errorf("update price: %w", err)
	}

	return &updated, nil
}

func (r *PriceRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM precos WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("failed to delete price", "id", id, "error", err)
		return fmt.Errorf("delete price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return price.ErrNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
