package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prashana14/StudyReuse-sub000/internal/domain/item"
)

// ItemRepository implements item.Repository.
type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

func (r *ItemRepository) Create(ctx context.Context, i *item.Item) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO items
		(item_id, owner_id, title, description, category, condition, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, i.ItemID, i.OwnerID, i.Title, i.Description, i.Category, i.Condition, i.Status, i.CreatedAt, i.UpdatedAt)
	return err
}

func (r *ItemRepository) Update(ctx context.Context, i *item.Item) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE items
		SET title=$1, description=$2, category=$3, condition=$4, status=$5, updated_at=$6
		WHERE item_id=$7
	`, i.Title, i.Description, i.Category, i.Condition, i.Status, i.UpdatedAt, i.ItemID)
	return err
}

func (r *ItemRepository) GetByID(ctx context.Context, itemID uuid.UUID) (*item.Item, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, item_id, owner_id, title, description, category, condition, status, created_at, updated_at
		FROM items WHERE item_id=$1
	`, itemID)
	return scanItem(row)
}

func (r *ItemRepository) List(ctx context.Context, filter item.Filter, limit, offset int) ([]*item.Item, error) {
	query := `SELECT id, item_id, owner_id, title, description, category, condition, status, created_at, updated_at FROM items`
	args := []interface{}{}
	idx := 1
	if filter.OwnerID != nil {
		query += " WHERE owner_id=$" + itoa(idx)
		args = append(args, *filter.OwnerID)
		idx++
	}
	if filter.Status != nil {
		query += addWhere(query) + " status=$" + itoa(idx)
		args = append(args, *filter.Status)
		idx++
	}
	if filter.Category != nil {
		query += addWhere(query) + " category=$" + itoa(idx)
		args = append(args, *filter.Category)
		idx++
	}
	query += " ORDER BY created_at DESC LIMIT $" + itoa(idx) + " OFFSET $" + itoa(idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*item.Item
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (r *ItemRepository) UpdateStatusFrom(ctx context.Context, itemID uuid.UUID, from, to item.Status) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE items SET status=$1, updated_at=$2 WHERE item_id=$3 AND status=$4
	`, to, time.Now().UTC(), itemID, from)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func scanItem(row pgx.Row) (*item.Item, error) {
	var i item.Item
	if err := row.Scan(&i.ID, &i.ItemID, &i.OwnerID, &i.Title, &i.Description, &i.Category, &i.Condition, &i.Status, &i.CreatedAt, &i.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &i, nil
}
