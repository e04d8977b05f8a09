package conf

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationUnmarshal(t *testing.T) {
	cases := map[string]time.Duration{
		`"1s"`:    time.Second,
		`"250ms"`: 250 * time.Millisecond,
		`""`:      0,
		`null`:    0,
		`1000`:    time.Microsecond,
	}
	for in, want := range cases {
		var d Duration
		require.NoError(t, json.Unmarshal([]byte(in), &d), in)
		assert.Equal(t, want, d.AsDuration(), in)
	}

	var d Duration
	assert.Error(t, json.Unmarshal([]byte(`"soon"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`true`), &d))
}

func TestBootstrapFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
data:
  database:
    driver: mysql
    source: root:secret@tcp(127.0.0.1:3306)/moviecatalog?parseTime=true
    name: moviecatalog
    charset: utf8mb4
    collation: utf8mb4_unicode_ci
    max_idle_conns: 5
    max_open_conns: 20
    conn_max_lifetime: 30m
  redis:
    addr: 127.0.0.1:6379
    read_timeout: 0.2s
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c := config.New(config.WithSource(file.NewSource(path)))
	defer c.Close()
	require.NoError(t, c.Load())

	var bc Bootstrap
	require.NoError(t, c.Scan(&bc))

	require.NotNil(t, bc.Data)
	assert.Equal(t, "mysql", bc.Data.Database.Driver)
	assert.Equal(t, "utf8mb4", bc.Data.Database.Charset)
	assert.Equal(t, 20, bc.Data.Database.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, bc.Data.Database.ConnMaxLifetime.AsDuration())
	assert.Equal(t, 200*time.Millisecond, bc.Data.Redis.ReadTimeout.AsDuration())
	assert.Zero(t, bc.Data.Redis.WriteTimeout.AsDuration())
	assert.Equal(t, "debug", bc.Log.Level)
}
