package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"chatapi/internal/domain"
)

type MessageRepo struct {
	db *sql.DB
}

func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

var _ domain.MessageRepository = (*MessageRepo)(nil)

func (r *MessageRepo) Create(ctx context.Context, m *domain.Message) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (id, sender_id, receiver_id, text, image_url, seen, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, m.ID, m.SenderID, m.ReceiverID, m.Text, m.ImageURL, m.Seen, m.CreatedAt); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *MessageRepo) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	m := &domain.Message{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, sender_id, receiver_id, text, image_url, seen, created_at
		FROM messages WHERE id = $1
	`, id).Scan(
		&m.ID, &m.SenderID, &m.ReceiverID, &m.Text, &m.ImageURL, &m.Seen, &m.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}
	return m, nil
}

func (r *MessageRepo) ListBetween(ctx context.Context, userA, userB string) ([]*domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, sender_id, receiver_id, text, image_url, seen, created_at
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at ASC, id ASC
	`, userA, userB)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var res []*domain.Message
	for rows.Next() {
		m := &domain.Message{}
		if err := rows.Scan(
			&m.ID, &m.SenderID, &m.ReceiverID, &m.Text, &m.ImageURL, &m.Seen, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

func (r *MessageRepo) CountUnseen(ctx context.Context, senderID, receiverID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM messages
		WHERE sender_id = $1 AND receiver_id = $2 AND seen = FALSE
	`, senderID, receiverID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unseen: %w", err)
	}
	return count, nil
}

func (r *MessageRepo) MarkSeen(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE messages SET seen = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("mark seen: %w", err)
	}
	return nil
}

func (r *MessageRepo) MarkAllSeenBetween(ctx context.Context, senderID, receiverID string) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE messages SET seen = TRUE
		WHERE sender_id = $1 AND receiver_id = $2 AND seen = FALSE
	`, senderID, receiverID); err != nil {
		return fmt.Errorf("mark all seen: %w", err)
	}
	return nil
}
