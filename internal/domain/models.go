package domain

import "time"

// User represents an application user.
type User struct {
	ID             string    `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	FullName       string    `db:"full_name" json:"full_name"`
	Bio            string    `db:"bio" json:"bio"`
	ProfilePicURL  string    `db:"profile_pic_url" json:"profile_pic_url,omitempty"`
	HashedPassword string    `db:"hashed_password" json:"-"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Message is a single chat message between two users. A message is immutable
// once created except for the seen flag, which transitions false -> true only.
// At least one of Text / ImageURL is always present.
type Message struct {
	ID         string    `db:"id" json:"id"`
	SenderID   string    `db:"sender_id" json:"sender_id"`
	ReceiverID string    `db:"receiver_id" json:"receiver_id"`
	Text       string    `db:"text" json:"text,omitempty"`
	ImageURL   string    `db:"image_url" json:"image_url,omitempty"`
	Seen       bool      `db:"seen" json:"seen"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
