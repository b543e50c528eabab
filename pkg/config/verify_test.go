package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := &Config{
		Database: DatabaseConfig{DSN: "file:test.db"},
		NewsAPI:  NewsAPIConfig{APIKey: "test-key"},
	}
	require.NoError(t, cfg.setDefaults())
	return cfg
}

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{name: "valid config", modify: func(c *Config) {}},
		{name: "missing server listen", modify: func(c *Config) { c.Server.Listen = "" }, errMsg: "server.listen is required"},
		{name: "missing server timeout", modify: func(c *Config) { c.Server.Timeout = 0 }, errMsg: "server.timeout is required"},
		{name: "missing dsn", modify: func(c *Config) { c.Database.DSN = "" }, errMsg: "database.dsn is required"},
		{name: "missing api key", modify: func(c *Config) { c.NewsAPI.APIKey = "" }, errMsg: "newsapi.api_key is required"},
		{name: "missing query", modify: func(c *Config) { c.Topic.Query = "" }, errMsg: "topic.query is required"},
		{name: "bad sort", modify: func(c *Config) { c.Topic.SortBy = "newest" }, errMsg: "topic.sort_by: newest is not one of"},
		{name: "negative pool size", modify: func(c *Config) { c.Database.MaxOpenConns = -1 },
			errMsg: "database.max_open_conns: -1 is less than 1"},
		{name: "several errors", modify: func(c *Config) { c.Server.Listen, c.NewsAPI.APIKey = "", "" },
			errMsg: "newsapi.api_key is required; server.listen is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.modify(cfg)
			err := VerifyAgainstEmbeddedSchema(cfg)
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestEmbeddedSchemaMatchesConfig(t *testing.T) {
	var embedded map[string]any
	require.NoError(t, json.Unmarshal([]byte(embeddedSchema), &embedded))

	generated, err := json.Marshal(GenerateSchema())
	require.NoError(t, err)
	var gen map[string]any
	require.NoError(t, json.Unmarshal(generated, &gen))

	embeddedDefs := embedded["$defs"].(map[string]any)
	genDefs := gen["$defs"].(map[string]any)
	require.Len(t, embeddedDefs, len(genDefs), "schema.json is stale, run go generate")
	for name, def := range genDefs {
		ed, ok := embeddedDefs[name]
		require.True(t, ok, "missing definition %s", name)
		genProps := def.(map[string]any)["properties"].(map[string]any)
		embProps := ed.(map[string]any)["properties"].(map[string]any)
		for prop := range genProps {
			assert.Contains(t, embProps, prop, "%s.%s missing in schema.json", name, prop)
		}
		assert.ElementsMatch(t, def.(map[string]any)["required"], ed.(map[string]any)["required"], "required of %s", name)
	}
}

func TestVerify_DurationsAsNumbers(t *testing.T) {
	cfg := validConfig(t)
	cfg.Cache.TTL = 90 * time.Second
	require.NoError(t, VerifyAgainstEmbeddedSchema(cfg))
}
