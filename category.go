package pivotchart

import "strings"

// KeyOptions controls whether the color and pattern dimensions stay in
// the category key. The zero value drops both, since the renderer
// already encodes them visually.
type KeyOptions struct {
	KeepColor   bool
	KeepPattern bool
}

// CategoryDimensions returns the dimensions that make up the category
// key. The last remaining dimension is never removed.
func CategoryDimensions(dimensions []DimensionKey, color, pattern DimensionKey, opts KeyOptions) []DimensionKey {
	keyDims := make([]DimensionKey, len(dimensions))
	copy(keyDims, dimensions)

	if color != NoDimension && !opts.KeepColor && len(keyDims) > 1 {
		keyDims = removeKey(keyDims, color)
	}
	if pattern != NoDimension && !opts.KeepPattern && len(keyDims) > 1 {
		keyDims = removeKey(keyDims, pattern)
	}

	return keyDims
}

// BuildCategoryKey sets the Category of every row of resp to the
// space-joined values of the category dimensions, or AllValue when no
// dimensions were requested.
func BuildCategoryKey(resp *ItemsResponse, dimensions []DimensionKey, color, pattern DimensionKey, opts KeyOptions) *ItemsResponse {
	if len(dimensions) == 0 {
		for _, row := range resp.Rows {
			row.Category = AllValue
		}
		return resp
	}

	keyDims := CategoryDimensions(dimensions, color, pattern, opts)
	parts := make([]string, len(keyDims))
	for _, row := range resp.Rows {
		for i, d := range keyDims {
			parts[i] = valueKey(row.Dimensions[string(d)])
		}
		row.Category = strings.Join(parts, " ")
	}

	return resp
}

// removeKey removes the first occurrence of key.
func removeKey(keys []DimensionKey, key DimensionKey) []DimensionKey {
	for i, k := range keys {
		if k == key {
			return append(keys[:i:i], keys[i+1:]...)
		}
	}

	return keys
}
