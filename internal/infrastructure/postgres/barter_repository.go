package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prashana14/StudyReuse-sub000/internal/domain/barter"
	"github.com/prashana14/StudyReuse-sub000/internal/domain/item"
	"github.com/prashana14/StudyReuse-sub000/internal/domain/user"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// BarterRepository implements barter.Repository.
type BarterRepository struct {
	pool *pgxpool.Pool
}

func NewBarterRepository(pool *pgxpool.Pool) *BarterRepository {
	return &BarterRepository{pool: pool}
}

// db returns the transaction carried by ctx, or the pool.
func (r *BarterRepository) db(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return r.pool
}

// WithTx runs fn in a single transaction. The ctx handed to fn carries the
// transaction, so repository calls made inside fn join it.
func (r *BarterRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *BarterRepository) Create(ctx context.Context, b *barter.BarterRequest) error {
	_, err := r.db(ctx).Exec(ctx, `
		INSERT INTO barter_requests
		(barter_id, item_id, offer_item_id, requester_id, owner_id, status, message, rejection_reason, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, b.BarterID, b.ItemID, b.OfferItemID, b.RequesterID, b.OwnerID, b.Status, b.Message, b.RejectionReason, b.CreatedAt, b.UpdatedAt)
	return err
}

func (r *BarterRepository) Update(ctx context.Context, b *barter.BarterRequest) error {
	_, err := r.db(ctx).Exec(ctx, `
		UPDATE barter_requests
		SET status=$1, message=$2, rejection_reason=$3, updated_at=$4
		WHERE barter_id=$5
	`, b.Status, b.Message, b.RejectionReason, b.UpdatedAt, b.BarterID)
	return err
}

func (r *BarterRepository) Delete(ctx context.Context, barterID uuid.UUID) error {
	_, err := r.db(ctx).Exec(ctx, `DELETE FROM barter_requests WHERE barter_id=$1`, barterID)
	return err
}

const barterSelect = `
	SELECT b.id, b.barter_id, b.item_id, b.offer_item_id, b.requester_id, b.owner_id,
	       b.status, b.message, b.rejection_reason, b.created_at, b.updated_at,
	       ti.item_id, ti.owner_id, ti.title, ti.description, ti.category, ti.condition, ti.status,
	       oi.item_id, oi.owner_id, oi.title, oi.description, oi.category, oi.condition, oi.status,
	       ru.user_id, ru.username, ru.email,
	       ou.user_id, ou.username, ou.email
	FROM barter_requests b
	LEFT JOIN items ti ON ti.item_id = b.item_id
	LEFT JOIN items oi ON oi.item_id = b.offer_item_id
	LEFT JOIN users ru ON ru.user_id = b.requester_id
	LEFT JOIN users ou ON ou.user_id = b.owner_id`

func (r *BarterRepository) GetByID(ctx context.Context, barterID uuid.UUID) (*barter.BarterRequest, error) {
	row := r.db(ctx).QueryRow(ctx, barterSelect+` WHERE b.barter_id=$1`, barterID)
	return scanBarter(row)
}

func (r *BarterRepository) ListByParticipant(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*barter.BarterRequest, error) {
	rows, err := r.db(ctx).Query(ctx, barterSelect+`
		WHERE b.requester_id=$1 OR b.owner_id=$1
		ORDER BY b.created_at DESC LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBarters(rows)
}

func (r *BarterRepository) List(ctx context.Context, filter barter.Filter, limit, offset int) ([]*barter.BarterRequest, error) {
	query := barterSelect
	args := []interface{}{}
	idx := 1
	if filter.Status != nil {
		query += " WHERE b.status=$" + itoa(idx)
		args = append(args, *filter.Status)
		idx++
	}
	if filter.ItemID != nil {
		query += addWhere(query) + " b.item_id=$" + itoa(idx)
		args = append(args, *filter.ItemID)
		idx++
	}
	if filter.RequesterID != nil {
		query += addWhere(query) + " b.requester_id=$" + itoa(idx)
		args = append(args, *filter.RequesterID)
		idx++
	}
	if filter.OwnerID != nil {
		query += addWhere(query) + " b.owner_id=$" + itoa(idx)
		args = append(args, *filter.OwnerID)
		idx++
	}
	query += " ORDER BY b.created_at DESC LIMIT $" + itoa(idx) + " OFFSET $" + itoa(idx+1)
	args = append(args, limit, offset)

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBarters(rows)
}

func (r *BarterRepository) ExistsPending(ctx context.Context, itemID, offerItemID, requesterID uuid.UUID) (bool, error) {
	row := r.db(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM barter_requests
			WHERE item_id=$1 AND offer_item_id=$2 AND requester_id=$3 AND status='PENDING'
		)
	`, itemID, offerItemID, requesterID)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *BarterRepository) RecordTransition(ctx context.Context, t *barter.StateTransition) error {
	_, err := r.db(ctx).Exec(ctx, `
		INSERT INTO barter_state_transitions
		(barter_id, from_status, to_status, actor, reason, transitioned_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, t.BarterID, t.FromStatus, t.ToStatus, t.Actor, t.Reason, t.TransitionedAt)
	return err
}

// GetItemForUpdate reads an item row locked for the enclosing transaction.
// Outside a transaction the lock is released immediately and buys nothing.
func (r *BarterRepository) GetItemForUpdate(ctx context.Context, itemID uuid.UUID) (*item.Item, error) {
	row := r.db(ctx).QueryRow(ctx, `
		SELECT id, item_id, owner_id, title, description, category, condition, status, created_at, updated_at
		FROM items WHERE item_id=$1
		FOR UPDATE
	`, itemID)
	return scanItem(row)
}

func (r *BarterRepository) UpdateItemStatus(ctx context.Context, itemID uuid.UUID, status item.Status) error {
	_, err := r.db(ctx).Exec(ctx, `
		UPDATE items SET status=$1, updated_at=now() WHERE item_id=$2
	`, status, itemID)
	return err
}

func collectBarters(rows pgx.Rows) ([]*barter.BarterRequest, error) {
	var barters []*barter.BarterRequest
	for rows.Next() {
		b, err := scanBarter(rows)
		if err != nil {
			return nil, err
		}
		barters = append(barters, b)
	}
	return barters, rows.Err()
}

func scanBarter(row pgx.Row) (*barter.BarterRequest, error) {
	var b barter.BarterRequest
	var (
		tiID, oiID             *uuid.UUID
		tiOwner, oiOwner       *uuid.UUID
		tiTitle, oiTitle       *string
		tiDesc, oiDesc         *string
		tiCategory, oiCategory *string
		tiCond, oiCond         *item.Condition
		tiStatus, oiStatus     *item.Status
		ruID, ouID             *uuid.UUID
		ruName, ouName         *string
		ruEmail, ouEmail       *string
	)
	err := row.Scan(
		&b.ID, &b.BarterID, &b.ItemID, &b.OfferItemID, &b.RequesterID, &b.OwnerID,
		&b.Status, &b.Message, &b.RejectionReason, &b.CreatedAt, &b.UpdatedAt,
		&tiID, &tiOwner, &tiTitle, &tiDesc, &tiCategory, &tiCond, &tiStatus,
		&oiID, &oiOwner, &oiTitle, &oiDesc, &oiCategory, &oiCond, &oiStatus,
		&ruID, &ruName, &ruEmail,
		&ouID, &ouName, &ouEmail,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if tiID != nil {
		b.Item = &item.Item{ItemID: *tiID, OwnerID: *tiOwner, Title: *tiTitle, Description: *tiDesc, Category: *tiCategory, Condition: *tiCond, Status: *tiStatus}
	}
	if oiID != nil {
		b.OfferItem = &item.Item{ItemID: *oiID, OwnerID: *oiOwner, Title: *oiTitle, Description: *oiDesc, Category: *oiCategory, Condition: *oiCond, Status: *oiStatus}
	}
	if ruID != nil {
		b.Requester = &user.User{UserID: *ruID, Username: *ruName, Email: *ruEmail}
	}
	if ouID != nil {
		b.Owner = &user.User{UserID: *ouID, Username: *ouName, Email: *ouEmail}
	}
	return &b, nil
}
