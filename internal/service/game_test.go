package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/serverboard/internal/core"
	"github.com/target/serverboard/internal/domain/model"
	apperrors "github.com/target/serverboard/internal/errors"
	"github.com/target/serverboard/internal/mocks"
	"go.uber.org/mock/gomock"
)

func newGameService(t *testing.T) (*mocks.MockGameRepository, *mocks.MockMemberRepository, *GameService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	games := mocks.NewMockGameRepository(ctrl)
	members := mocks.NewMockMemberRepository(ctrl)
	return games, members, NewGameService(GameServiceOptions{Games: games, Members: members})
}

func sampleGames() []*model.Game {
	return []*model.Game{
		{ID: "g1", ServerID: 42, Name: "Among Us", MinPlayers: 4, MaxPlayers: 15},
		{ID: "g2", ServerID: 42, Name: "Tetris", MinPlayers: 1, MaxPlayers: 1},
		{ID: "g3", ServerID: 42, Name: "Valorant", MinPlayers: 2, MaxPlayers: 5},
	}
}

func TestGameService_List_Filter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		filter  string
		want    []string
		wantErr bool
	}{
		{name: "no filter", filter: "", want: []string{"Among Us", "Tetris", "Valorant"}},
		{name: "max players", filter: "[?max_players > `4`]", want: []string{"Among Us", "Valorant"}},
		{name: "name match", filter: "[?name == 'Tetris']", want: []string{"Tetris"}},
		{name: "no match", filter: "[?min_players > `10`]", want: []string{}},
		{name: "projection is not a game list", filter: "[].name", wantErr: true},
		{name: "scalar result", filter: "length(@)", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			games, _, svc := newGameService(t)
			games.EXPECT().ListByServer(gomock.Any(), int64(42)).Return(sampleGames(), nil)

			got, err := svc.List(context.Background(), model.GameListOptions{ServerID: 42, Filter: tt.filter})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsValidation(err))
				assert.Equal(t, "filter", apperrors.GetField(err))
				return
			}
			require.NoError(t, err)
			names := make([]string, 0, len(got))
			for _, g := range got {
				names = append(names, g.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestGameService_List_InvalidExpression(t *testing.T) {
	t.Parallel()
	_, _, svc := newGameService(t)
	_, err := svc.List(context.Background(), model.GameListOptions{ServerID: 42, Filter: "[?max_players >"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestGameService_Add(t *testing.T) {
	t.Parallel()
	games, members, svc := newGameService(t)
	ctx := viewerCtx("bob")

	members.EXPECT().IsMember(ctx, core.MembershipKey{ServerID: 42, UserID: "bob"}).Return(true, nil)
	games.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req *model.CreateGameRequest) (*model.Game, error) {
			assert.Equal(t, "bob", req.AddedBy)
			assert.Equal(t, "Valorant", req.Name)
			assert.Equal(t, 1, req.MinPlayers)
			return &model.Game{ID: "g9", ServerID: 42, Name: req.Name, AddedBy: req.AddedBy}, nil
		})

	got, err := svc.Add(ctx, model.CreateGameRequest{ServerID: 42, Name: " Valorant "})
	require.NoError(t, err)
	assert.Equal(t, "g9", got.ID)
}

func TestGameService_Add_DuplicateIsConflict(t *testing.T) {
	t.Parallel()
	games, members, svc := newGameService(t)
	ctx := viewerCtx("bob")
	dup := apperrors.Conflict("game with this name already exists on the server")

	members.EXPECT().IsMember(ctx, gomock.Any()).Return(true, nil)
	games.EXPECT().Create(ctx, gomock.Any()).Return(nil, dup)

	_, err := svc.Add(ctx, model.CreateGameRequest{ServerID: 42, Name: "Valorant"})
	require.ErrorIs(t, err, dup)
	assert.True(t, apperrors.IsConflict(err))
}

func TestGameService_Remove(t *testing.T) {
	t.Parallel()
	games, members, svc := newGameService(t)
	ctx := viewerCtx("bob")
	key := core.ServerItemKey{ServerID: 42, ID: "g1"}

	members.EXPECT().IsMember(ctx, gomock.Any()).Return(true, nil).Times(2)
	games.EXPECT().Delete(ctx, key).Return(true, nil)
	require.NoError(t, svc.Remove(ctx, key))

	games.EXPECT().Delete(ctx, key).Return(false, errors.New("db down"))
	require.Error(t, svc.Remove(ctx, key))
}
