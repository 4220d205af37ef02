package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	ErrNoChunks = errors.New("stats output did not include chunk information")
	ErrNoAssets = errors.New("stats output did not include asset information")
)

// Format selects the stats encoding.
type Format uint8

const (
	// FormatAuto picks the format from the file extension.
	FormatAuto Format = iota
	FormatJSON
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	default:
		return "auto"
	}
}

// FormatFor returns the stats format implied by a file name.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".msgpack", ".mpk":
		return FormatMsgpack
	default:
		return FormatJSON
	}
}

type statsChunk struct {
	ID      any      `json:"id" msgpack:"id"`
	Names   []string `json:"names" msgpack:"names"`
	Files   []string `json:"files" msgpack:"files"`
	Initial bool     `json:"initial" msgpack:"initial"`
}

type statsAsset struct {
	Name string `json:"name" msgpack:"name"`
	Size int64  `json:"size" msgpack:"size"`
}

type stats struct {
	Chunks *[]statsChunk `json:"chunks" msgpack:"chunks"`
	Assets *[]statsAsset `json:"assets" msgpack:"assets"`
}

// Load reads and decodes a stats file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stats file: %w", err)
	}
	m, err := Decode(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Decode parses stats in the given format. FormatAuto is treated as JSON.
func Decode(data []byte, format Format) (*Manifest, error) {
	var st stats
	switch format {
	case FormatMsgpack:
		if err := msgpack.NewDecoder(bytes.NewReader(data)).Decode(&st); err != nil {
			return nil, fmt.Errorf("failed to decode msgpack stats: %w", err)
		}
	default:
		if err := ValidateJSON(data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &st); err != nil {
			return nil, fmt.Errorf("failed to decode JSON stats: %w", err)
		}
	}
	return st.manifest()
}

// Encode writes m in the given format, using the same field names Decode reads.
func Encode(w io.Writer, m *Manifest, format Format) error {
	chunks := make([]statsChunk, 0, len(m.Chunks()))
	for _, c := range m.Chunks() {
		chunks = append(chunks, statsChunk{ID: c.ID, Names: c.Names, Files: c.Files, Initial: c.Initial})
	}
	assets := make([]statsAsset, 0, len(m.Assets()))
	for _, a := range m.Assets() {
		assets = append(assets, statsAsset(a))
	}
	st := stats{Chunks: &chunks, Assets: &assets}

	switch format {
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(st)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}
}

func (st stats) manifest() (*Manifest, error) {
	if st.Chunks == nil {
		return nil, ErrNoChunks
	}
	if st.Assets == nil {
		return nil, ErrNoAssets
	}
	chunks := make([]Chunk, 0, len(*st.Chunks))
	for _, c := range *st.Chunks {
		chunks = append(chunks, Chunk{
			ID:      formatChunkID(c.ID),
			Names:   c.Names,
			Files:   c.Files,
			Initial: c.Initial,
		})
	}
	assets := make([]Asset, 0, len(*st.Assets))
	for _, a := range *st.Assets {
		assets = append(assets, Asset(a))
	}
	return New(chunks, assets)
}

// formatChunkID renders numeric and string chunk ids uniformly.
func formatChunkID(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
