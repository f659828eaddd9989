package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_WritesJSONToFile(t *testing.T) {
	dir := t.TempDir()
	logger, closer, err := InitLogger(dir, true)
	require.NoError(t, err)

	logger.Debug("hello", "k", "v")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, "socialflow.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"service":"socialflow"`)
}

func TestInitTelemetry_CreatesFiles(t *testing.T) {
	dir := t.TempDir()
	tracer, meter, cleanup, err := InitTelemetry(context.Background(), dir, "test")
	require.NoError(t, err)
	require.NotNil(t, tracer)
	require.NotNil(t, meter)

	_, span := tracer.Start(context.Background(), "test.span")
	span.End()
	cleanup()

	data, err := os.ReadFile(filepath.Join(dir, "socialflow_traces.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "test.span")
}

func TestInitDB_CreatesKVTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "socialflow.db")
	db, err := InitDB(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES ('a', 'b', CURRENT_TIMESTAMP)`)
	require.NoError(t, err)

	var value string
	require.NoError(t, db.QueryRow(`SELECT value FROM kv WHERE key = 'a'`).Scan(&value))
	assert.Equal(t, "b", value)
}
