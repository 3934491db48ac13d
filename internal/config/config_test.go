package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonlawlor/relalg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const example = `
engine:
  max_materialize: 1000
log:
  level: debug
  encoding: json
sources:
  - name: people
    kind: json
    path: ${RELALG_DATA}/people.json
  - name: orders
    kind: postgres
    dsn: postgres://localhost/shop
    query: select * from orders
    schema:
      - {name: id, kind: Int64}
      - {name: total, kind: Decimal}
metrics:
  file: /tmp/relalg.prom
`

func TestParse(t *testing.T) {
	t.Setenv("RELALG_DATA", "/srv/data")

	cfg, err := Parse([]byte(example))
	require.NoError(t, err)
	assert.Equal(t, rel.Options{MaxMaterialize: 1000}, cfg.Engine.Options())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Encoding)
	assert.Equal(t, "/tmp/relalg.prom", cfg.Metrics.File)

	require.Len(t, cfg.Sources, 2)
	assert.Equal(t, "/srv/data/people.json", cfg.Sources[0].Path)

	s, ok := cfg.Source("orders")
	require.True(t, ok)
	assert.Equal(t, []ColumnConfig{{Name: "id", Kind: "Int64"}, {Name: "total", Kind: "Decimal"}}, s.Schema)
	_, ok = cfg.Source("missing")
	assert.False(t, ok)
}

func TestDefaults(t *testing.T) {
	cfg, err := Parse([]byte("engine: {}\n"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, rel.Options{}, cfg.Engine.Options())
}

func TestSubstituteEnvVars(t *testing.T) {
	t.Setenv("RELALG_A", "x")
	assert.Equal(t, "x-x", substituteEnvVars("${RELALG_A}-${RELALG_A}"))
	assert.Equal(t, "-", substituteEnvVars("${RELALG_UNSET_VAR}-"))
	assert.Equal(t, "${open", substituteEnvVars("${open"))
}

func TestValidate(t *testing.T) {
	var invalid = []string{
		"engine: {max_materialize: -1}",
		"sources: [{kind: json, path: a}]",
		"sources: [{name: a, kind: json, path: a}, {name: a, kind: json, path: b}]",
		"sources: [{name: a, kind: json}]",
		"sources: [{name: a, kind: postgres, dsn: x}]",
		"sources: [{name: a, kind: csv, path: a}]",
		"engine: [",
	}
	for _, in := range invalid {
		_, err := Parse([]byte(in))
		assert.Error(t, err, in)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relalg.yaml")
	cfg := Default()
	cfg.Engine.MaxMaterialize = 5
	cfg.Sources = []SourceConfig{{Name: "a", Kind: "arrow", Path: "a.arrow"}}
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
