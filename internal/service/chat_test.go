package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"zapzap/backend/internal/model"
	"zapzap/backend/internal/pkg/apperr"
	"zapzap/backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatFixture struct {
	chats  ChatService
	users  UserService
	groups GroupService
}

func newChatFixture(t *testing.T, notifier Notifier) *chatFixture {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	chatRepo := repository.NewChatRepository(db)
	return &chatFixture{
		chats:  NewChatService(chatRepo, userRepo, groupRepo, nil, notifier),
		users:  NewUserService(userRepo),
		groups: NewGroupService(groupRepo),
	}
}

type captureNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

type notifyCall struct {
	userIDs []string
	msg     *model.Message
}

func (n *captureNotifier) Notify(userIDs []string, msg *model.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifyCall{userIDs: userIDs, msg: msg})
}

func TestPrivateHistoryIsSymmetric(t *testing.T) {
	fx := newChatFixture(t, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := fx.chats.Send(ctx, "alice", "bob", model.ChatTypePrivate, fmt.Sprintf("a%d", i), false)
		require.NoError(t, err)
		_, err = fx.chats.Send(ctx, "bob", "alice", model.ChatTypePrivate, fmt.Sprintf("b%d", i), false)
		require.NoError(t, err)
	}
	// Noise from an unrelated pair must not leak in.
	_, err := fx.chats.Send(ctx, "alice", "carol", model.ChatTypePrivate, "hi carol", false)
	require.NoError(t, err)

	fromAlice, err := fx.chats.PrivateHistory(ctx, "alice", "bob")
	require.NoError(t, err)
	fromBob, err := fx.chats.PrivateHistory(ctx, "bob", "alice")
	require.NoError(t, err)

	require.Len(t, fromAlice, 6)
	assert.Equal(t, fromAlice, fromBob, "direction of the query must not matter")
	assert.Equal(t, "a0", fromAlice[0].Content)
	assert.Equal(t, "b2", fromAlice[5].Content)
}

func TestGroupHistory(t *testing.T) {
	fx := newChatFixture(t, nil)
	ctx := context.Background()

	group, err := fx.groups.Create("alice", "gophers", nil, []string{"bob"}, "")
	require.NoError(t, err)

	_, err = fx.chats.Send(ctx, "alice", group.ID, model.ChatTypeGroup, "hello group", false)
	require.NoError(t, err)
	_, err = fx.chats.Send(ctx, "bob", group.ID, model.ChatTypeGroup, "hi", false)
	require.NoError(t, err)
	_, err = fx.chats.Send(ctx, "alice", "bob", model.ChatTypePrivate, "psst", false)
	require.NoError(t, err)

	history, err := fx.chats.GroupHistory(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "hello group", history[0].Content)
	assert.True(t, history[0].Timestamp.Before(history[1].Timestamp) ||
		history[0].Timestamp.Equal(history[1].Timestamp))
}

func TestEmptyHistories(t *testing.T) {
	fx := newChatFixture(t, nil)
	ctx := context.Background()

	private, err := fx.chats.PrivateHistory(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Empty(t, private)

	group, err := fx.chats.GroupHistory(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, group)
}

func TestSendRejectsUnknownChatType(t *testing.T) {
	fx := newChatFixture(t, nil)

	_, err := fx.chats.Send(context.Background(), "alice", "bob", "broadcast", "hi", false)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalid))
}

func TestSendPushesPrivateMessageToBothSides(t *testing.T) {
	notifier := &captureNotifier{}
	fx := newChatFixture(t, notifier)

	msg, err := fx.chats.Send(context.Background(), "alice", "bob", model.ChatTypePrivate, "hi", false)
	require.NoError(t, err)

	require.Len(t, notifier.calls, 1)
	assert.ElementsMatch(t, []string{"alice", "bob"}, notifier.calls[0].userIDs)
	assert.Equal(t, msg.ID, notifier.calls[0].msg.ID)
}

func TestSendPushesGroupMessageToMembers(t *testing.T) {
	notifier := &captureNotifier{}
	fx := newChatFixture(t, notifier)

	group, err := fx.groups.Create("alice", "gophers", nil, []string{"bob", "carol"}, "")
	require.NoError(t, err)

	_, err = fx.chats.Send(context.Background(), "alice", group.ID, model.ChatTypeGroup, "hi all", false)
	require.NoError(t, err)

	require.Len(t, notifier.calls, 1)
	assert.ElementsMatch(t, []string{"alice", "bob", "carol"}, notifier.calls[0].userIDs)
}

func TestPrivatePeers(t *testing.T) {
	fx := newChatFixture(t, nil)
	ctx := context.Background()

	ids := map[string]string{}
	for _, name := range []string{"alice", "bob", "carol", "dave"} {
		u, err := fx.users.Register(name, "s3cret")
		require.NoError(t, err)
		ids[name] = u.ID
	}

	_, err := fx.chats.Send(ctx, ids["alice"], ids["bob"], model.ChatTypePrivate, "1", false)
	require.NoError(t, err)
	_, err = fx.chats.Send(ctx, ids["carol"], ids["alice"], model.ChatTypePrivate, "2", false)
	require.NoError(t, err)
	_, err = fx.chats.Send(ctx, ids["alice"], ids["bob"], model.ChatTypePrivate, "3", false)
	require.NoError(t, err)
	// dave only talks to carol; he is not alice's peer.
	_, err = fx.chats.Send(ctx, ids["dave"], ids["carol"], model.ChatTypePrivate, "4", false)
	require.NoError(t, err)

	peers, err := fx.chats.PrivatePeers(ids["alice"])
	require.NoError(t, err)

	require.Len(t, peers, 2)
	assert.Equal(t, "bob", peers[0].Name, "peers come back in first-contact order")
	assert.Equal(t, "carol", peers[1].Name)
}

func TestPrivatePeersEmpty(t *testing.T) {
	fx := newChatFixture(t, nil)

	peers, err := fx.chats.PrivatePeers("loner")
	require.NoError(t, err)
	assert.Empty(t, peers)
}
