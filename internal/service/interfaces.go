package service

import (
	"context"
	"io"
	"zapzap/backend/internal/model"
)

type UserService interface {
	Register(name, password string) (*model.User, error)
	Authenticate(name, password string) (*model.User, error)
	GetUserByID(id string) (*model.User, error)
	GetUsersByIDs(ids []string) ([]model.User, error)
	ListUsers() ([]model.User, error)
	// SetBanned flips the app-level banned flag. Self-targeting is
	// forbidden.
	SetBanned(actorID, targetID string, banned bool) error
}

type GroupService interface {
	Create(creatorID, name string, adminsID, members []string, lastAdminRule string) (*model.Group, error)
	ListAll() ([]model.Group, error)
	ListMine(userID string) ([]model.Group, error)
	Join(groupID, userID string) (*model.Group, error)
	Approve(groupID, adminID, userID string) (*model.Group, error)
	Reject(groupID, adminID, userID string) (*model.Group, error)
	Ban(groupID, adminID, userID string) (*model.Group, error)
	Leave(groupID, userID string) error
	Delete(groupID, requesterID string) error
}

type ChatService interface {
	Send(ctx context.Context, senderID, targetID, chatType, content string, isFile bool) (*model.Message, error)
	PrivateHistory(ctx context.Context, userA, userB string) ([]model.Message, error)
	GroupHistory(ctx context.Context, groupID string) ([]model.Message, error)
	// PrivatePeers resolves the distinct private-chat peers of a user,
	// first-contact order, to user records.
	PrivatePeers(userID string) ([]model.User, error)
}

// FileStorage stores uploaded attachments. The returned metadata's
// StoredPath is what gets recorded as the message content.
type FileStorage interface {
	Save(ctx context.Context, r io.Reader, filename, contentType string, size int64, uploadedBy, targetID string) (*model.FileMetadata, error)
}

// Notifier pushes a freshly stored message to the users that should see
// it. Implemented by the websocket hub.
type Notifier interface {
	Notify(userIDs []string, msg *model.Message)
}
