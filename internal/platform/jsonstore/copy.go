package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// Copy replaces the document in dst with the one in src. It reports false
// without writing when src holds nothing. src must hold a JSON array.
func Copy(ctx context.Context, dst, src Backend) (bool, error) {
	data, exists, err := src.Read(ctx)
	if err != nil {
		return false, fmt.Errorf("read source: %w", err)
	}
	if !exists {
		return false, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if records == nil {
		data = emptyArray
	}
	if err := dst.Write(ctx, data); err != nil {
		return false, fmt.Errorf("write destination: %w", err)
	}
	return true, nil
}
