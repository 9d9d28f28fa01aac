package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/serverboard/internal/core"
	"github.com/target/serverboard/internal/domain/model"
	"github.com/target/serverboard/internal/testutil"
)

func TestGameRepo_CreateListDelete(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		srv, err := NewServerRepo(db).Create(ctx, testutil.NewServerRequest().Build())
		require.NoError(t, err)
		repo := NewGameRepo(db)

		g, err := repo.Create(ctx, &model.CreateGameRequest{ServerID: srv.ID, Name: " Valorant ", MinPlayers: 2, MaxPlayers: 5, AddedBy: "alice"})
		require.NoError(t, err)
		assert.Equal(t, "Valorant", g.Name)
		assert.Equal(t, 2, g.MinPlayers)

		_, err = repo.Create(ctx, &model.CreateGameRequest{ServerID: srv.ID, Name: "Valorant", AddedBy: "bob"})
		require.ErrorIs(t, err, ErrGameNameExists)

		_, err = repo.Create(ctx, &model.CreateGameRequest{ServerID: 999999, Name: "Tetris", AddedBy: "bob"})
		require.ErrorIs(t, err, ErrServerNotFound)

		_, err = repo.Create(ctx, &model.CreateGameRequest{ServerID: srv.ID, Name: "among us", AddedBy: "bob"})
		require.NoError(t, err)

		list, err := repo.ListByServer(ctx, srv.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "among us", list[0].Name)
		assert.Equal(t, "Valorant", list[1].Name)

		ok, err := repo.Delete(ctx, core.ServerItemKey{ServerID: srv.ID, ID: g.ID})
		require.NoError(t, err)
		assert.True(t, ok)

		n, err := repo.CountByServer(ctx, srv.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}
