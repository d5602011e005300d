package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"chatapi/internal/domain"
	"chatapi/internal/upload"
)

// MessageRouter delivers a freshly persisted message to any live connections
// of its two parties. Implementations are best-effort and never return an
// error to the sender's request.
type MessageRouter interface {
	RouteNewMessage(m *domain.Message)
}

// ChatService orchestrates roster, conversation, seen-state, and message
// sending on top of the persistence layer and the live-delivery router.
type ChatService struct {
	users    domain.UserRepository
	messages domain.MessageRepository
	uploads  upload.Store
	router   MessageRouter
	log      *zap.Logger
}

func NewChatService(
	users domain.UserRepository,
	messages domain.MessageRepository,
	uploads upload.Store,
	router MessageRouter,
	log *zap.Logger,
) *ChatService {
	return &ChatService{
		users:    users,
		messages: messages,
		uploads:  uploads,
		router:   router,
		log:      log,
	}
}

// ListRoster returns every user except the viewer plus a map of peer ID to
// the number of that peer's messages the viewer has not seen. Only non-zero
// counts appear in the map. Per-peer counts are independent queries and run
// concurrently.
func (s *ChatService) ListRoster(ctx context.Context, viewerID string) ([]*domain.User, map[string]int, error) {
	users, err := s.users.ListExcept(ctx, viewerID)
	if err != nil {
		return nil, nil, fmt.Errorf("list users: %w", err)
	}

	counts := make([]int, len(users))
	errs := make([]error, len(users))

	var wg sync.WaitGroup
	for i, u := range users {
		wg.Add(1)
		go func(i int, peerID string) {
			defer wg.Done()
			counts[i], errs[i] = s.messages.CountUnseen(ctx, peerID, viewerID)
		}(i, u.ID)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, nil, fmt.Errorf("count unseen: %w", err)
		}
	}

	unseen := make(map[string]int)
	for i, u := range users {
		if counts[i] > 0 {
			unseen[u.ID] = counts[i]
		}
	}
	return users, unseen, nil
}

// FetchConversation returns all messages between viewer and peer in creation
// order, then bulk-marks the peer's unseen messages to the viewer as seen.
// The returned list carries the pre-transition seen values; the caller
// already holds the full history including the now-seen ones. This is the
// only place a conversation-level mass seen transition happens.
func (s *ChatService) FetchConversation(ctx context.Context, viewerID, peerID string) ([]*domain.Message, error) {
	peer, err := s.users.GetByID(ctx, peerID)
	if err != nil {
		return nil, fmt.Errorf("get peer: %w", err)
	}
	if peer == nil {
		return nil, fmt.Errorf("%w: unknown peer", domain.ErrNotFound)
	}

	msgs, err := s.messages.ListBetween(ctx, viewerID, peerID)
	if err != nil {
		return nil, fmt.Errorf("list conversation: %w", err)
	}

	if err := s.messages.MarkAllSeenBetween(ctx, peerID, viewerID); err != nil {
		return nil, fmt.Errorf("mark conversation seen: %w", err)
	}

	return msgs, nil
}

// MarkSeen transitions a single message to seen. Calling it on an already
// seen message is a no-op returning success.
func (s *ChatService) MarkSeen(ctx context.Context, messageID string) error {
	m, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return fmt.Errorf("get message: %w", err)
	}
	if m == nil {
		return fmt.Errorf("%w: unknown message", domain.ErrNotFound)
	}
	if m.Seen {
		return nil
	}
	return s.messages.MarkSeen(ctx, messageID)
}

type SendMessageInput struct {
	Text string
	// Image is a base64 payload or data URL; it is uploaded to the object
	// store and replaced by a URL before the message is persisted.
	Image string
}

// SendMessage validates, persists, and then hands the message to the
// delivery router. Persistence must succeed before anything is returned;
// delivery is detached and best-effort, so the persisted message is returned
// to the caller regardless of delivery outcome.
func (s *ChatService) SendMessage(ctx context.Context, senderID, receiverID string, in SendMessageInput) (*domain.Message, error) {
	if in.Text == "" && in.Image == "" {
		return nil, fmt.Errorf("%w: message requires text or an image", domain.ErrInvalidInput)
	}

	receiver, err := s.users.GetByID(ctx, receiverID)
	if err != nil {
		return nil, fmt.Errorf("get receiver: %w", err)
	}
	if receiver == nil {
		return nil, fmt.Errorf("%w: unknown receiver", domain.ErrNotFound)
	}

	var imageURL string
	if in.Image != "" {
		data, contentType, err := upload.DecodeImage(in.Image)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		imageURL, err = s.uploads.Save(ctx, data, contentType)
		if err != nil {
			return nil, fmt.Errorf("store image: %w", err)
		}
	}

	msg := &domain.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       in.Text,
		ImageURL:   imageURL,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("persist message: %w", err)
	}

	s.log.Debug("message persisted",
		zap.String("message_id", msg.ID),
		zap.String("sender_id", senderID),
		zap.String("receiver_id", receiverID))

	s.router.RouteNewMessage(msg)

	return msg, nil
}
