package service

import (
	"testing"

	"zapzap/backend/internal/model"
	"zapzap/backend/internal/pkg/apperr"
	"zapzap/backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGroupService(t *testing.T) GroupService {
	t.Helper()
	return NewGroupService(repository.NewGroupRepository(newTestDB(t)))
}

// Every admin must also be a member, and the creator always ends up both.
func requireAdminsAreMembers(t *testing.T, g *model.Group) {
	t.Helper()
	for _, admin := range g.AdminsID {
		assert.Truef(t, g.IsMember(admin), "admin %s is not a member", admin)
	}
}

func TestCreateGroupForcesCreatorIn(t *testing.T) {
	svc := newGroupService(t)

	group, err := svc.Create("alice", "gophers", []string{"bob"}, []string{"carol"}, "")
	require.NoError(t, err)

	assert.True(t, group.IsAdmin("alice"))
	assert.True(t, group.IsMember("alice"))
	assert.True(t, group.IsMember("bob"), "listed admins become members")
	assert.True(t, group.IsMember("carol"))
	assert.Equal(t, model.LastAdminPromote, group.LastAdminRule)
	requireAdminsAreMembers(t, group)
}

func TestCreateGroupRejectsBadRule(t *testing.T) {
	svc := newGroupService(t)

	_, err := svc.Create("alice", "gophers", nil, nil, "coinflip")
	assert.True(t, apperr.IsKind(err, apperr.KindInvalid))

	_, err = svc.Create("alice", "", nil, nil, "")
	assert.True(t, apperr.IsKind(err, apperr.KindInvalid))
}

func TestJoinApproveFlow(t *testing.T) {
	svc := newGroupService(t)

	group, err := svc.Create("alice", "gophers", nil, nil, "")
	require.NoError(t, err)

	group, err = svc.Join(group.ID, "bob")
	require.NoError(t, err)
	assert.True(t, group.PendingRequests.Contains("bob"))
	assert.False(t, group.IsMember("bob"))

	// Joining twice, or as a member, is forbidden.
	_, err = svc.Join(group.ID, "bob")
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	_, err = svc.Join(group.ID, "alice")
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	group, err = svc.Approve(group.ID, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, group.IsMember("bob"))
	assert.False(t, group.PendingRequests.Contains("bob"), "approval clears the pending entry")
	requireAdminsAreMembers(t, group)
}

func TestApproveRequiresAdminAndPending(t *testing.T) {
	svc := newGroupService(t)

	group, err := svc.Create("alice", "gophers", nil, []string{"bob"}, "")
	require.NoError(t, err)

	_, err = svc.Join(group.ID, "carol")
	require.NoError(t, err)

	_, err = svc.Approve(group.ID, "bob", "carol")
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden), "plain members cannot approve")

	_, err = svc.Approve(group.ID, "alice", "dave")
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden), "no pending request to approve")
}

func TestRejectIsIdempotent(t *testing.T) {
	svc := newGroupService(t)

	group, err := svc.Create("alice", "gophers", nil, nil, "")
	require.NoError(t, err)

	_, err = svc.Join(group.ID, "bob")
	require.NoError(t, err)

	group, err = svc.Reject(group.ID, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, group.PendingRequests.Contains("bob"))

	// Rejecting again is a no-op, not an error.
	_, err = svc.Reject(group.ID, "alice", "bob")
	assert.NoError(t, err)

	_, err = svc.Reject(group.ID, "bob", "carol")
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestBan(t *testing.T) {
	svc := newGroupService(t)

	group, err := svc.Create("alice", "gophers", []string{"bob"}, []string{"carol"}, "")
	require.NoError(t, err)

	group, err = svc.Ban(group.ID, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, group.IsMember("bob"))
	assert.False(t, group.IsAdmin("bob"), "banning an admin strips adminship too")
	requireAdminsAreMembers(t, group)

	_, err = svc.Ban(group.ID, "alice", "alice")
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden), "self-ban")

	_, err = svc.Ban(group.ID, "alice", "dave")
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden), "not a member")

	_, err = svc.Ban(group.ID, "carol", "alice")
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden), "not an admin")
}

func TestLeavePromotesFirstRemainingMember(t *testing.T) {
	svc := newGroupService(t)

	group, err := svc.Create("alice", "gophers", nil, []string{"bob", "carol"}, model.LastAdminPromote)
	require.NoError(t, err)

	require.NoError(t, svc.Leave(group.ID, "alice"))

	groups, err := svc.ListAll()
	require.NoError(t, err)
	require.Len(t, groups, 1)
	got := groups[0]
	assert.Equal(t, model.IDList{"bob"}, got.AdminsID, "first remaining member takes over")
	assert.False(t, got.IsMember("alice"))
	requireAdminsAreMembers(t, &got)
}

func TestLeaveWithDeleteRuleRemovesGroup(t *testing.T) {
	svc := newGroupService(t)

	group, err := svc.Create("alice", "gophers", nil, []string{"bob"}, model.LastAdminDelete)
	require.NoError(t, err)

	require.NoError(t, svc.Leave(group.ID, "alice"))

	groups, err := svc.ListAll()
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestLeaveEmptyGroupRemovesItRegardlessOfRule(t *testing.T) {
	svc := newGroupService(t)

	group, err := svc.Create("alice", "gophers", nil, nil, model.LastAdminPromote)
	require.NoError(t, err)

	require.NoError(t, svc.Leave(group.ID, "alice"))

	groups, err := svc.ListAll()
	require.NoError(t, err)
	assert.Empty(t, groups, "nobody left to promote")
}

func TestLeaveNonMember(t *testing.T) {
	svc := newGroupService(t)

	group, err := svc.Create("alice", "gophers", nil, nil, "")
	require.NoError(t, err)

	err = svc.Leave(group.ID, "bob")
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestDeleteGroup(t *testing.T) {
	svc := newGroupService(t)

	group, err := svc.Create("alice", "gophers", nil, []string{"bob"}, "")
	require.NoError(t, err)

	err = svc.Delete(group.ID, "bob")
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden), "plain member cannot delete")

	require.NoError(t, svc.Delete(group.ID, "alice"))

	_, err = svc.Join(group.ID, "carol")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestListMine(t *testing.T) {
	svc := newGroupService(t)

	_, err := svc.Create("alice", "gophers", nil, []string{"bob"}, "")
	require.NoError(t, err)
	_, err = svc.Create("carol", "rustaceans", nil, nil, "")
	require.NoError(t, err)

	mine, err := svc.ListMine("bob")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "gophers", mine[0].Name)

	all, err := svc.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGroupNotFound(t *testing.T) {
	svc := newGroupService(t)

	_, err := svc.Join("missing", "bob")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Equal(t, 404, apperr.HTTPStatus(err))
}
