package testutil

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearTestDBEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TEST_DB_HOST", "TEST_DB_PORT", "TEST_DB_USER", "TEST_DB_PASSWORD", "TEST_DB_NAME", "DB_SSL_MODE"} {
		t.Setenv(key, "")
	}
}

func TestDefaultTestDBConfig_ComposeProfile(t *testing.T) {
	clearTestDBEnv(t)

	assert.Equal(t, TestDBConfig{
		Host: "localhost", Port: "55432", User: "serverboard", Password: "serverboard", DBName: "serverboard",
	}, DefaultTestDBConfig())
}

func TestDefaultTestDBConfig_Overrides(t *testing.T) {
	clearTestDBEnv(t)
	t.Setenv("TEST_DB_HOST", "postgres")
	t.Setenv("TEST_DB_PORT", "5432")
	t.Setenv("TEST_DB_NAME", "board_ci")

	cfg := DefaultTestDBConfig()
	assert.Equal(t, "postgres", cfg.Host)
	assert.Equal(t, "5432", cfg.Port)
	assert.Equal(t, "board_ci", cfg.DBName)
	assert.Equal(t, "serverboard", cfg.User)
}

func TestTestDBConfig_DSN(t *testing.T) {
	clearTestDBEnv(t)
	cfg := TestDBConfig{Host: "db", Port: "5432", User: "sb", Password: "p@ss", DBName: "board"}

	u, err := url.Parse(cfg.DSN("sb_test_1"))
	require.NoError(t, err)
	assert.Equal(t, "db:5432", u.Host)
	assert.Equal(t, "/board", u.Path)
	pw, _ := u.User.Password()
	assert.Equal(t, "p@ss", pw)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
	assert.Equal(t, "sb_test_1", u.Query().Get("search_path"))

	u, err = url.Parse(cfg.DSN(""))
	require.NoError(t, err)
	assert.False(t, u.Query().Has("search_path"))
}

func TestEnvBool(t *testing.T) {
	for _, v := range []string{"1", "true", "YES", "y"} {
		t.Setenv("SB_FLAG", v)
		assert.True(t, envBool("SB_FLAG"), v)
	}
	for _, v := range []string{"", "0", "false", "off"} {
		t.Setenv("SB_FLAG", v)
		assert.False(t, envBool("SB_FLAG"), v)
	}
}

func TestUniqueName_Distinct(t *testing.T) {
	assert.NotEqual(t, UniqueName("server"), UniqueName("server"))
}

func TestServerRequestBuilder(t *testing.T) {
	req := NewServerRequest().WithName("길드").WithOwner("bob").WithDescription("주말 레이드").Build()
	assert.Equal(t, "길드", req.Name)
	assert.Equal(t, "bob", req.Owner)
	require.NotNil(t, req.Description)
	assert.Equal(t, "주말 레이드", *req.Description)
	assert.NoError(t, req.Validate())
}
