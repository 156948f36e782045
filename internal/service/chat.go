package service

import (
	"context"
	"time"
	"zapzap/backend/internal/model"
	"zapzap/backend/internal/pkg/apperr"
	"zapzap/backend/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type chatService struct {
	chats    repository.ChatRepository
	users    repository.UserRepository
	groups   repository.GroupRepository
	cache    repository.ConversationCache // nil disables caching
	notifier Notifier                     // nil disables push
}

func NewChatService(
	chats repository.ChatRepository,
	users repository.UserRepository,
	groups repository.GroupRepository,
	cache repository.ConversationCache,
	notifier Notifier,
) ChatService {
	return &chatService{
		chats:    chats,
		users:    users,
		groups:   groups,
		cache:    cache,
		notifier: notifier,
	}
}

// Send appends one record with a generated id and the current timestamp.
// It only fails on storage errors; cache and push failures are logged and
// swallowed.
func (s *chatService) Send(ctx context.Context, senderID, targetID, chatType, content string, isFile bool) (*model.Message, error) {
	if chatType != model.ChatTypePrivate && chatType != model.ChatTypeGroup {
		return nil, apperr.Invalid("chatType must be private or group")
	}

	msg := &model.Message{
		ID:        uuid.NewString(),
		SenderID:  senderID,
		Content:   content,
		Timestamp: time.Now().UTC(),
		ChatType:  chatType,
		TargetID:  targetID,
		IsFile:    isFile,
	}

	if err := s.chats.Append(msg); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SaveMessage(ctx, s.cacheKey(msg), *msg); err != nil {
			log.WithError(err).Warn("failed to cache message")
		}
	}

	s.push(msg)

	return msg, nil
}

func (s *chatService) cacheKey(msg *model.Message) string {
	if msg.ChatType == model.ChatTypeGroup {
		return repository.GroupKey(msg.TargetID)
	}
	return repository.PrivateKey(msg.SenderID, msg.TargetID)
}

func (s *chatService) push(msg *model.Message) {
	if s.notifier == nil {
		return
	}

	var recipients []string
	switch msg.ChatType {
	case model.ChatTypePrivate:
		recipients = []string{msg.TargetID, msg.SenderID}
	case model.ChatTypeGroup:
		group, err := s.groups.FindByID(msg.TargetID)
		if err != nil {
			log.WithError(err).Warn("failed to resolve group for push")
			return
		}
		recipients = group.Members
	}

	s.notifier.Notify(recipients, msg)
}

func (s *chatService) PrivateHistory(ctx context.Context, userA, userB string) ([]model.Message, error) {
	return s.history(ctx, repository.PrivateKey(userA, userB), func() ([]model.Message, error) {
		return s.chats.FindPrivate(userA, userB)
	})
}

func (s *chatService) GroupHistory(ctx context.Context, groupID string) ([]model.Message, error) {
	return s.history(ctx, repository.GroupKey(groupID), func() ([]model.Message, error) {
		return s.chats.FindGroup(groupID)
	})
}

// history is a read-through: a hit serves straight from the cache, a miss
// loads from the log and primes the full conversation so subsequent sends
// can append (RPUSHX only extends existing lists).
func (s *chatService) history(ctx context.Context, key string, load func() ([]model.Message, error)) ([]model.Message, error) {
	if s.cache != nil {
		cached, err := s.cache.GetMessages(ctx, key)
		if err != nil {
			log.WithError(err).Warn("conversation cache read failed")
		} else if len(cached) > 0 {
			return cached, nil
		}
	}

	messages, err := load()
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(messages) > 0 {
		if err := s.cache.PrimeMessages(ctx, key, messages); err != nil {
			log.WithError(err).Warn("failed to prime conversation cache")
		}
	}

	return messages, nil
}

func (s *chatService) PrivatePeers(userID string) ([]model.User, error) {
	messages, err := s.chats.FindInvolving(userID)
	if err != nil {
		return nil, err
	}

	// Distinct peer ids, ordered by first appearance (messages come back
	// timestamp ascending).
	seen := make(map[string]struct{})
	var peerIDs []string
	for _, m := range messages {
		peer := m.TargetID
		if m.SenderID != userID {
			peer = m.SenderID
		}
		if peer == userID {
			continue
		}
		if _, ok := seen[peer]; ok {
			continue
		}
		seen[peer] = struct{}{}
		peerIDs = append(peerIDs, peer)
	}

	users, err := s.users.FindByIDs(peerIDs)
	if err != nil {
		return nil, err
	}

	// Restore conversation order lost by the IN query.
	byID := make(map[string]model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	ordered := make([]model.User, 0, len(peerIDs))
	for _, id := range peerIDs {
		if u, ok := byID[id]; ok {
			ordered = append(ordered, u)
		}
	}
	return ordered, nil
}
