package bootstrap

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/serverboard/config"
)

func TestPostgresDSN_EscapesCredentials(t *testing.T) {
	dsn := postgresDSN(config.DBConfig{
		Host: "db", Port: 5433, User: "sb", Password: "p@ss/w:rd", Name: "serverboard", SSLMode: "require",
	})

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "postgres", u.Scheme)
	assert.Equal(t, "db:5433", u.Host)
	assert.Equal(t, "/serverboard", u.Path)
	assert.Equal(t, "sb", u.User.Username())
	pw, _ := u.User.Password()
	assert.Equal(t, "p@ss/w:rd", pw)
	assert.Equal(t, "require", u.Query().Get("sslmode"))
}

func TestRedisOptions(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.RedisConfig
		topology redisTopology
		addrs    []string
		wantErr  string
	}{
		{
			name:     "plain address",
			cfg:      config.RedisConfig{URI: " localhost:6379 ", Password: "secret"},
			topology: redisDirect,
			addrs:    []string{"localhost:6379"},
		},
		{
			name:     "redis url",
			cfg:      config.RedisConfig{URI: "redis://cache:pw@cache.internal:6380/2"},
			topology: redisDirect,
			addrs:    []string{"cache.internal:6380"},
		},
		{
			name:     "sentinel",
			cfg:      config.RedisConfig{UseSentinel: true, SentinelNodes: []string{"s1:26379", " ", "s2:26379"}, SentinelMasterName: "main"},
			topology: redisSentinel,
			addrs:    []string{"s1:26379", "s2:26379"},
		},
		{
			name:     "cluster nodes",
			cfg:      config.RedisConfig{UseCluster: true, ClusterNodes: []string{"n1:7000", "n2:7000"}, URI: "ignored:6379"},
			topology: redisCluster,
			addrs:    []string{"n1:7000", "n2:7000"},
		},
		{
			name:     "cluster falls back to uri",
			cfg:      config.RedisConfig{UseCluster: true, URI: "redis://seed:7000/3"},
			topology: redisCluster,
			addrs:    []string{"seed:7000"},
		},
		{name: "missing uri", cfg: config.RedisConfig{}, wantErr: "requires a URI"},
		{name: "sentinel without nodes", cfg: config.RedisConfig{UseSentinel: true}, wantErr: "sentinel node"},
		{name: "cluster without nodes", cfg: config.RedisConfig{UseCluster: true}, wantErr: "at least one node"},
		{name: "bad url", cfg: config.RedisConfig{URI: "redis://host:6379/notadb"}, wantErr: "parse redis url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, topology, err := redisOptions(tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.topology, topology)
			assert.Equal(t, tt.addrs, opts.Addrs)
		})
	}
}

func TestRedisOptions_URLCredentials(t *testing.T) {
	opts, _, err := redisOptions(config.RedisConfig{URI: "rediss://app:pw@cache:6380/2", Password: "fallback"})
	require.NoError(t, err)
	assert.Equal(t, "app", opts.Username)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.NotNil(t, opts.TLSConfig)

	opts, _, err = redisOptions(config.RedisConfig{URI: "redis://cache:6379", Password: "fallback"})
	require.NoError(t, err)
	assert.Equal(t, "fallback", opts.Password)
}

func TestRedisOptions_ClusterDropsDB(t *testing.T) {
	opts, _, err := redisOptions(config.RedisConfig{UseCluster: true, URI: "redis://seed:7000/3"})
	require.NoError(t, err)
	assert.Zero(t, opts.DB)
}

func TestRedisOptions_SentinelSettings(t *testing.T) {
	opts, _, err := redisOptions(config.RedisConfig{
		UseSentinel: true, SentinelNodes: []string{"s1:26379"}, SentinelMasterName: "main", SentinelPassword: "sp",
	})
	require.NoError(t, err)
	assert.Equal(t, "main", opts.MasterName)
	assert.Equal(t, "sp", opts.SentinelPassword)
}
