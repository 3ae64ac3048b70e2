package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prashana14/StudyReuse-sub000/internal/domain/notification"
)

// NotificationRepository implements notification.Repository.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

const notificationColumns = `id, notification_id, recipient_id, category, title, body,
	related_item_id, related_user_id, link, status, read, read_at,
	retry_count, max_retries, last_error, expires_at, created_at, sent_at, delivered_at, failed_at`

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO notifications
		(notification_id, recipient_id, category, title, body, related_item_id, related_user_id, link,
		 status, read, read_at, retry_count, max_retries, last_error, expires_at, created_at, sent_at, delivered_at, failed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
	`, n.NotificationID, n.RecipientID, n.Category, n.Title, n.Body, n.RelatedItemID, n.RelatedUserID, n.Link,
		n.Status, n.Read, n.ReadAt, n.RetryCount, n.MaxRetries, n.LastError, n.ExpiresAt, n.CreatedAt, n.SentAt, n.DeliveredAt, n.FailedAt)
	return err
}

func (r *NotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE notifications
		SET status=$1, read=$2, read_at=$3, retry_count=$4, last_error=$5, sent_at=$6, delivered_at=$7, failed_at=$8
		WHERE notification_id=$9
	`, n.Status, n.Read, n.ReadAt, n.RetryCount, n.LastError, n.SentAt, n.DeliveredAt, n.FailedAt, n.NotificationID)
	return err
}

func (r *NotificationRepository) GetByID(ctx context.Context, notificationID uuid.UUID) (*notification.Notification, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+notificationColumns+` FROM notifications WHERE notification_id=$1
	`, notificationID)
	return scanNotification(row)
}

func (r *NotificationRepository) List(ctx context.Context, filter notification.Filter, limit, offset int) ([]*notification.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications`
	args := []interface{}{}
	idx := 1
	if filter.RecipientID != nil {
		query += " WHERE recipient_id=$" + itoa(idx)
		args = append(args, *filter.RecipientID)
		idx++
	}
	if filter.Category != nil {
		query += addWhere(query) + " category=$" + itoa(idx)
		args = append(args, *filter.Category)
		idx++
	}
	if filter.Status != nil {
		query += addWhere(query) + " status=$" + itoa(idx)
		args = append(args, *filter.Status)
		idx++
	}
	if filter.Unread != nil {
		query += addWhere(query) + " read=$" + itoa(idx)
		args = append(args, !*filter.Unread)
		idx++
	}
	query += " ORDER BY created_at DESC LIMIT $" + itoa(idx) + " OFFSET $" + itoa(idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var notifications []*notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepository) ListByStatus(ctx context.Context, status notification.Status, limit int) ([]*notification.Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications WHERE status=$1
		ORDER BY created_at ASC LIMIT $2
	`, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var notifications []*notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications WHERE recipient_id=$1 AND read=false
	`, recipientID)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE notifications SET read=true, read_at=$1 WHERE recipient_id=$2 AND read=false
	`, time.Now().UTC(), recipientID)
	if err != nil {
		return 0, err
	}
	return int(res.RowsAffected()), nil
}

func scanNotification(row pgx.Row) (*notification.Notification, error) {
	var n notification.Notification
	if err := row.Scan(
		&n.ID, &n.NotificationID, &n.RecipientID, &n.Category, &n.Title, &n.Body,
		&n.RelatedItemID, &n.RelatedUserID, &n.Link, &n.Status, &n.Read, &n.ReadAt,
		&n.RetryCount, &n.MaxRetries, &n.LastError, &n.ExpiresAt, &n.CreatedAt, &n.SentAt, &n.DeliveredAt, &n.FailedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}
