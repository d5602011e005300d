package domain

import "context"

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ListExcept(ctx context.Context, id string) ([]*User, error)
	Update(ctx context.Context, u *User) error
}

// MessageRepository defines persistence operations for messages. Messages are
// queryable by participant pair in either direction and by seen state.
type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	GetByID(ctx context.Context, id string) (*Message, error)
	ListBetween(ctx context.Context, userA, userB string) ([]*Message, error)
	CountUnseen(ctx context.Context, senderID, receiverID string) (int, error)
	MarkSeen(ctx context.Context, id string) error
	MarkAllSeenBetween(ctx context.Context, senderID, receiverID string) error
}
