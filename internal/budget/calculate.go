package budget

import (
	"sizebudget/internal/manifest"
)

// Size is one labelled byte count produced by a calculator.
type Size struct {
	Bytes int64
	Label string
}

const (
	labelInitial      = "initial"
	labelTotal        = "total"
	labelTotalScripts = "total scripts"
)

// Calculate aggregates m according to rule.Type. Aggregate types return one
// Size; per-file types return one Size per matching asset in manifest order.
// Source maps never count.
func Calculate(rule Rule, m *manifest.Manifest) ([]Size, error) {
	switch rule.Type {
	case TypeBundle:
		if rule.Name == "" {
			return nil, newConfigError(rule, "name", "", ErrMissingName)
		}
		var chunks []manifest.Chunk
		for _, c := range m.Chunks() {
			if c.HasName(rule.Name) {
				chunks = append(chunks, c)
			}
		}
		if len(chunks) == 0 {
			return nil, nil
		}
		total, err := sumChunkFiles(m, chunks)
		if err != nil {
			return nil, err
		}
		return []Size{{Bytes: total, Label: rule.Name}}, nil

	case TypeInitial:
		var chunks []manifest.Chunk
		for _, c := range m.Chunks() {
			if c.Initial {
				chunks = append(chunks, c)
			}
		}
		total, err := sumChunkFiles(m, chunks)
		if err != nil {
			return nil, err
		}
		return []Size{{Bytes: total, Label: labelInitial}}, nil

	case TypeAllScript:
		return []Size{{Bytes: sumAssets(m, manifest.IsScript), Label: labelTotalScripts}}, nil

	case TypeAll:
		return []Size{{Bytes: sumAssets(m, notMap), Label: labelTotal}}, nil

	case TypeAnyComponentStyle:
		return eachAsset(m, manifest.IsStyle), nil

	case TypeAnyScript:
		return eachAsset(m, manifest.IsScript), nil

	case TypeAny:
		return eachAsset(m, notMap), nil

	default:
		return nil, newConfigError(rule, "type", string(rule.Type), ErrUnknownType)
	}
}

func notMap(name string) bool {
	return !manifest.IsMap(name)
}

// sumChunkFiles adds up the non-map files of chunks. A file listed in several
// chunks is counted once per listing.
func sumChunkFiles(m *manifest.Manifest, chunks []manifest.Chunk) (int64, error) {
	var total int64
	for _, c := range chunks {
		for _, file := range c.Files {
			if manifest.IsMap(file) {
				continue
			}
			asset, ok := m.Asset(file)
			if !ok {
				return 0, &ManifestIntegrityError{Chunk: c.ID, File: file}
			}
			total += asset.Size
		}
	}
	return total, nil
}

func sumAssets(m *manifest.Manifest, keep func(string) bool) int64 {
	var total int64
	for _, a := range m.Assets() {
		if keep(a.Name) && !manifest.IsMap(a.Name) {
			total += a.Size
		}
	}
	return total
}

func eachAsset(m *manifest.Manifest, keep func(string) bool) []Size {
	var out []Size
	for _, a := range m.Assets() {
		if keep(a.Name) && !manifest.IsMap(a.Name) {
			out = append(out, Size{Bytes: a.Size, Label: a.Name})
		}
	}
	return out
}
