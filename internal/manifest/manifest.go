package manifest

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateAsset reports two assets sharing one name.
	ErrDuplicateAsset = errors.New("duplicate asset")
	// ErrNegativeSize reports an asset with a negative byte size.
	ErrNegativeSize = errors.New("negative asset size")
)

// Chunk is a group of output files produced by one compilation unit.
type Chunk struct {
	ID      string
	Names   []string
	Files   []string
	Initial bool
}

// HasName reports whether name is one of the chunk's names.
func (c Chunk) HasName(name string) bool {
	for _, n := range c.Names {
		if n == name {
			return true
		}
	}
	return false
}

// Asset is a single output file.
type Asset struct {
	Name string
	Size int64
}

// Manifest holds chunks and assets in input order.
type Manifest struct {
	chunks []Chunk
	assets []Asset
	index  map[string]int
}

// New builds a Manifest. Names are normalised; asset names must be unique and
// sizes non-negative. Chunk files are not checked here: a file with no asset
// is reported by the evaluator when a budget needs it.
func New(chunks []Chunk, assets []Asset) (*Manifest, error) {
	m := &Manifest{
		chunks: make([]Chunk, 0, len(chunks)),
		assets: make([]Asset, 0, len(assets)),
		index:  make(map[string]int, len(assets)),
	}
	for _, a := range assets {
		name := NormalizeName(a.Name)
		if a.Size < 0 {
			return nil, fmt.Errorf("%w: %s (%d)", ErrNegativeSize, name, a.Size)
		}
		if _, dup := m.index[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAsset, name)
		}
		m.index[name] = len(m.assets)
		m.assets = append(m.assets, Asset{Name: name, Size: a.Size})
	}
	for _, c := range chunks {
		files := make([]string, len(c.Files))
		for i, f := range c.Files {
			files[i] = NormalizeName(f)
		}
		names := make([]string, len(c.Names))
		copy(names, c.Names)
		m.chunks = append(m.chunks, Chunk{ID: c.ID, Names: names, Files: files, Initial: c.Initial})
	}
	return m, nil
}

// SingleAsset returns a manifest holding exactly one asset and no chunks. It is
// used when a single file is checked in isolation (per-resource style checks).
func SingleAsset(name string, size int64) *Manifest {
	name = NormalizeName(name)
	if size < 0 {
		size = 0
	}
	return &Manifest{
		assets: []Asset{{Name: name, Size: size}},
		index:  map[string]int{name: 0},
	}
}

// Chunks returns the chunks in input order. Callers must not modify the slice.
func (m *Manifest) Chunks() []Chunk {
	if m == nil {
		return nil
	}
	return m.chunks
}

// Assets returns the assets in input order. Callers must not modify the slice.
func (m *Manifest) Assets() []Asset {
	if m == nil {
		return nil
	}
	return m.assets
}

// Asset looks up an asset by (normalised) file name.
func (m *Manifest) Asset(name string) (Asset, bool) {
	if m == nil {
		return Asset{}, false
	}
	idx, ok := m.index[NormalizeName(name)]
	if !ok {
		return Asset{}, false
	}
	return m.assets[idx], true
}

// TotalSize sums every asset, map files included.
func (m *Manifest) TotalSize() int64 {
	var total int64
	for _, a := range m.Assets() {
		total += a.Size
	}
	return total
}
