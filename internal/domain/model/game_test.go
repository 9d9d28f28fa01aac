package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGameRequest_Validate(t *testing.T) {
	req := CreateGameRequest{ServerID: 42, Name: " Valorant "}
	require.NoError(t, req.Validate())
	assert.Equal(t, "Valorant", req.Name)
	assert.Equal(t, 1, req.MinPlayers)
	assert.Equal(t, 1, req.MaxPlayers)

	req = CreateGameRequest{ServerID: 42, Name: "Overcooked", MinPlayers: 2, MaxPlayers: 4}
	require.NoError(t, req.Validate())

	bad := []CreateGameRequest{
		{Name: "no server"},
		{ServerID: 42},
		{ServerID: 42, Name: "x", MinPlayers: 4, MaxPlayers: 2},
		{ServerID: 42, Name: "x", MinPlayers: -1},
		{ServerID: 42, Name: "x", MaxPlayers: 101},
	}
	for _, r := range bad {
		assert.Error(t, r.Validate(), "%+v", r)
	}
}
