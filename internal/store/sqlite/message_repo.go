package sqlite

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

	query := `
		INSERT INTO messages (id, sender_id, receiver_id, text, image_url, seen, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query,
		m.ID, m.SenderID, m.ReceiverID, m.Text, m.ImageURL, m.Seen, m.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *MessageRepo) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	m := &domain.Message{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, sender_id, receiver_id, text, image_url, seen, created_at
		FROM messages WHERE id = ?
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
	query := `
		SELECT id, sender_id, receiver_id, text, image_url, seen, created_at
		FROM messages
		WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userA, userB, userB, userA)
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
		WHERE sender_id = ? AND receiver_id = ? AND seen = 0
	`, senderID, receiverID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unseen: %w", err)
	}
	return count, nil
}

func (r *MessageRepo) MarkSeen(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE messages SET seen = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark seen: %w", err)
	}
	return nil
}

func (r *MessageRepo) MarkAllSeenBetween(ctx context.Context, senderID, receiverID string) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE messages SET seen = 1
		WHERE sender_id = ? AND receiver_id = ? AND seen = 0
	`, senderID, receiverID); err != nil {
		return fmt.Errorf("mark all seen: %w", err)
	}
	return nil
}
