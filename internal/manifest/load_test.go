package manifest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStats = `{
  "chunks": [
    {"id": 0, "names": ["main"], "files": ["main.js", "main.js.map"], "initial": true},
    {"id": "lazy", "names": ["admin"], "files": ["admin.js"], "initial": false}
  ],
  "assets": [
    {"name": "main.js", "size": 1536},
    {"name": "main.js.map", "size": 9000},
    {"name": "admin.js", "size": 512},
    {"name": "styles.css", "size": 100}
  ],
  "hash": "ignored"
}`

func TestDecodeJSON(t *testing.T) {
	m, err := Decode([]byte(sampleStats), FormatJSON)
	require.NoError(t, err)

	require.Len(t, m.Chunks(), 2)
	assert.Equal(t, "0", m.Chunks()[0].ID)
	assert.Equal(t, "lazy", m.Chunks()[1].ID)
	assert.True(t, m.Chunks()[0].Initial)
	require.Len(t, m.Assets(), 4)
	assert.Equal(t, "styles.css", m.Assets()[3].Name)
}

func TestDecodeJSON_MissingSections(t *testing.T) {
	_, err := Decode([]byte(`{"assets": []}`), FormatJSON)
	assert.ErrorIs(t, err, ErrNoChunks)

	_, err = Decode([]byte(`{"chunks": []}`), FormatJSON)
	assert.ErrorIs(t, err, ErrNoAssets)
}

func TestDecodeJSON_SchemaViolations(t *testing.T) {
	_, err := Decode([]byte(`{"chunks": [], "assets": [{"name": "a.js", "size": -4}, {"size": 1}]}`), FormatJSON)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.GreaterOrEqual(t, len(schemaErr.Errors), 2)
	assert.Contains(t, schemaErr.Error(), "stats validation failed")
}

func TestDecodeJSON_Malformed(t *testing.T) {
	_, err := Decode([]byte(`{"chunks": [`), FormatJSON)
	assert.Error(t, err)
}

func TestEncodeDecodeMsgpack(t *testing.T) {
	orig, err := Decode([]byte(sampleStats), FormatJSON)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, orig, FormatMsgpack))

	got, err := Decode(buf.Bytes(), FormatMsgpack)
	require.NoError(t, err)
	assert.Equal(t, orig.Assets(), got.Assets())
	assert.Equal(t, orig.Chunks(), got.Chunks())
}

func TestLoad_PicksFormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	orig, err := Decode([]byte(sampleStats), FormatJSON)
	require.NoError(t, err)

	jsonPath := filepath.Join(dir, "stats.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(sampleStats), 0o644))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, orig, FormatMsgpack))
	mpkPath := filepath.Join(dir, "stats.msgpack")
	require.NoError(t, os.WriteFile(mpkPath, buf.Bytes(), 0o644))

	for _, p := range []string{jsonPath, mpkPath} {
		m, err := Load(p)
		require.NoError(t, err, p)
		assert.Len(t, m.Assets(), 4)
	}

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatMsgpack, FormatFor("dist/stats.MPK"))
	assert.Equal(t, FormatMsgpack, FormatFor("stats.msgpack"))
	assert.Equal(t, FormatJSON, FormatFor("stats.json"))
	assert.Equal(t, FormatJSON, FormatFor("stats"))
	assert.Equal(t, "msgpack", FormatMsgpack.String())
}
