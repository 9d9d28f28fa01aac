package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/serverboard/internal/core"
	"github.com/target/serverboard/internal/domain/model"
	"github.com/target/serverboard/internal/testutil"
)

func TestServerRepo_Create_Get_Update_Delete(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		fixed := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
		repo := NewServerRepoWithTimeProvider(db, NewFixedTimeProvider(fixed))
		members := NewMemberRepo(db)

		srv, err := repo.Create(ctx, testutil.NewServerRequest().WithName("  길드  ").WithOwner("alice").Build())
		require.NoError(t, err)
		require.Positive(t, srv.ID)
		assert.Equal(t, "길드", srv.Name)
		assert.Equal(t, "alice", srv.Owner)
		assert.Nil(t, srv.Description)
		assert.True(t, srv.CreatedAt.Equal(fixed))

		// owner joins as first member
		isMember, err := members.IsMember(ctx, core.MembershipKey{ServerID: srv.ID, UserID: "alice"})
		require.NoError(t, err)
		assert.True(t, isMember)

		got, err := repo.GetByID(ctx, srv.ID)
		require.NoError(t, err)
		assert.Equal(t, srv.Name, got.Name)

		updated, err := repo.Update(ctx, srv.ID, model.UpdateServerRequest{
			Name:        testutil.StringPtr("새 이름"),
			Description: testutil.StringPtr("주말 모임"),
		})
		require.NoError(t, err)
		assert.Equal(t, "새 이름", updated.Name)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "주말 모임", *updated.Description)
		assert.Equal(t, "alice", updated.Owner)

		cleared, err := repo.Update(ctx, srv.ID, model.UpdateServerRequest{Description: testutil.StringPtr("  ")})
		require.NoError(t, err)
		assert.Nil(t, cleared.Description)

		deleted, err := repo.Delete(ctx, srv.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = repo.GetByID(ctx, srv.ID)
		require.ErrorIs(t, err, ErrServerNotFound)

		deleted, err = repo.Delete(ctx, srv.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		// membership rows cascade
		n, err := members.CountByServer(ctx, srv.ID)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestServerRepo_Update_NotFoundAndInvalid(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewServerRepo(db)
		_, err := repo.Update(context.Background(), 999999, model.UpdateServerRequest{Name: testutil.StringPtr("x")})
		require.ErrorIs(t, err, ErrServerNotFound)

		_, err = repo.Update(context.Background(), 1, model.UpdateServerRequest{})
		require.Error(t, err)
	})
}

func TestServerRepo_List_And_ListForMember(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewServerRepo(db)
		members := NewMemberRepo(db)

		a, err := repo.Create(ctx, testutil.NewServerRequest().WithName("Alpha Raiders").WithOwner("alice").Build())
		require.NoError(t, err)
		b, err := repo.Create(ctx, testutil.NewServerRequest().WithName("Bravo Club").WithOwner("bob").Build())
		require.NoError(t, err)
		require.NoError(t, members.Add(ctx, core.MembershipKey{ServerID: a.ID, UserID: "bob"}))

		all, err := repo.List(ctx, model.ServerListOptions{})
		require.NoError(t, err)
		assert.Len(t, all, 2)

		byOwner, err := repo.List(ctx, model.ServerListOptions{Owner: "bob"})
		require.NoError(t, err)
		require.Len(t, byOwner, 1)
		assert.Equal(t, b.ID, byOwner[0].ID)

		byName, err := repo.List(ctx, model.ServerListOptions{Q: "raid"})
		require.NoError(t, err)
		require.Len(t, byName, 1)
		assert.Equal(t, a.ID, byName[0].ID)

		paged, err := repo.List(ctx, model.ServerListOptions{Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Len(t, paged, 1)

		bobs, err := repo.ListForMember(ctx, "bob")
		require.NoError(t, err)
		require.Len(t, bobs, 2)
		assert.Equal(t, "Alpha Raiders", bobs[0].Name)
		assert.Equal(t, "Bravo Club", bobs[1].Name)
	})
}

func TestMemberRepo_AddRemove(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		srv, err := NewServerRepo(db).Create(ctx, testutil.NewServerRequest().Build())
		require.NoError(t, err)
		members := NewMemberRepo(db)
		key := core.MembershipKey{ServerID: srv.ID, UserID: "carol"}

		require.NoError(t, members.Add(ctx, key))
		require.ErrorIs(t, members.Add(ctx, key), ErrMemberExists)
		require.ErrorIs(t, members.Add(ctx, core.MembershipKey{ServerID: 999999, UserID: "carol"}), ErrServerNotFound)

		list, err := members.ListByServer(ctx, srv.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "alice", list[0].UserID)

		removed, err := members.Remove(ctx, key)
		require.NoError(t, err)
		assert.True(t, removed)
		removed, err = members.Remove(ctx, key)
		require.NoError(t, err)
		assert.False(t, removed)

		n, err := members.CountByServer(ctx, srv.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}
