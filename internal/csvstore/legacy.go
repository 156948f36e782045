package csvstore

import (
	"fmt"
	"path/filepath"
	"time"
	"zapzap/backend/internal/model"
	"zapzap/backend/internal/repository"

	log "github.com/sirupsen/logrus"
)

// Column layouts of the legacy data directory.
var (
	UserHeaders  = []string{"id", "name", "password", "banned"}
	GroupHeaders = []string{"id", "name", "adminsId", "members", "pendingRequests", "lastAdminRule"}
	ChatHeaders  = []string{"id", "senderId", "content", "timestamp", "chatType", "targetId", "isFile"}
)

// Importer moves a legacy CSV data directory into the database. It only
// runs against an empty user table, so restarting with the same data dir
// does not duplicate anything.
type Importer struct {
	users  repository.UserRepository
	groups repository.GroupRepository
	chats  repository.ChatRepository
}

func NewImporter(users repository.UserRepository, groups repository.GroupRepository, chats repository.ChatRepository) *Importer {
	return &Importer{users: users, groups: groups, chats: chats}
}

func (im *Importer) Import(dir string) error {
	existing, err := im.users.FindAll()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	if err := im.importUsers(New(filepath.Join(dir, "users.csv"), UserHeaders)); err != nil {
		return err
	}
	if err := im.importGroups(New(filepath.Join(dir, "groups.csv"), GroupHeaders)); err != nil {
		return err
	}
	return im.importChats(New(filepath.Join(dir, "chats.csv"), ChatHeaders))
}

func (im *Importer) importUsers(store *Store) error {
	records, ok, err := readIfPresent(store)
	if !ok || err != nil {
		return err
	}

	for _, rec := range records {
		user := &model.User{
			ID:       rec["id"],
			Name:     rec["name"],
			Password: rec["password"],
			Banned:   rec["banned"] == "true",
		}
		if err := im.users.Create(user); err != nil {
			return fmt.Errorf("failed to import user %s: %w", user.ID, err)
		}
	}

	log.WithField("count", len(records)).Info("imported legacy users")
	return nil
}

func (im *Importer) importGroups(store *Store) error {
	records, ok, err := readIfPresent(store)
	if !ok || err != nil {
		return err
	}

	for _, rec := range records {
		rule := rec["lastAdminRule"]
		if rule == "" {
			// The legacy files never stored the column; the documented
			// default applies.
			rule = model.LastAdminPromote
		}
		group := &model.Group{
			ID:              rec["id"],
			Name:            rec["name"],
			AdminsID:        model.Parse(rec["adminsId"]),
			Members:         model.Parse(rec["members"]),
			PendingRequests: model.Parse(rec["pendingRequests"]),
			LastAdminRule:   rule,
		}
		if err := im.groups.Create(group); err != nil {
			return fmt.Errorf("failed to import group %s: %w", group.ID, err)
		}
	}

	log.WithField("count", len(records)).Info("imported legacy groups")
	return nil
}

func (im *Importer) importChats(store *Store) error {
	records, ok, err := readIfPresent(store)
	if !ok || err != nil {
		return err
	}

	for _, rec := range records {
		ts, err := time.Parse(time.RFC3339, rec["timestamp"])
		if err != nil {
			return fmt.Errorf("failed to parse timestamp of message %s: %w", rec["id"], err)
		}
		msg := &model.Message{
			ID:        rec["id"],
			SenderID:  rec["senderId"],
			Content:   rec["content"],
			Timestamp: ts,
			ChatType:  rec["chatType"],
			TargetID:  rec["targetId"],
			IsFile:    rec["isFile"] == "true",
		}
		if err := im.chats.Append(msg); err != nil {
			return fmt.Errorf("failed to import message %s: %w", msg.ID, err)
		}
	}

	log.WithField("count", len(records)).Info("imported legacy messages")
	return nil
}

func readIfPresent(store *Store) ([]Record, bool, error) {
	exists, err := store.Exists()
	if err != nil || !exists {
		return nil, false, err
	}
	records, err := store.ReadAll()
	if err != nil {
		return nil, false, err
	}
	return records, true, nil
}
