package application

import (
	"bytes"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/mahabubulhasibshawon/library-borrow/internal/domain"
)

const snapshotVersion = 1

var errCorruptSnapshot = errors.New("corrupt cart snapshot")

type cartSnapshot struct {
	Version int            `json:"version"`
	Items   []snapshotItem `json:"items"`
}

type snapshotItem struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	CoverURL string `json:"coverUrl"`
	Category string `json:"category,omitempty"`
	Selected bool   `json:"selected"`
}

func encodeSnapshot(items []domain.CartItem) ([]byte, error) {
	snap := cartSnapshot{Version: snapshotVersion, Items: make([]snapshotItem, 0, len(items))}
	for _, it := range items {
		snap.Items = append(snap.Items, snapshotItem{
			ID:       it.ID,
			Title:    it.Title,
			Author:   it.Author,
			CoverURL: it.CoverURL,
			Category: it.Category,
			Selected: it.Selected,
		})
	}
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(snap)
}

// decodeSnapshot accepts the versioned envelope and the bare item array older
// clients wrote. Anything else is reported as errCorruptSnapshot.
func decodeSnapshot(data []byte) ([]domain.CartItem, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if !jsoniter.ConfigFastest.Valid(data) {
		return nil, errCorruptSnapshot
	}

	var raw []snapshotItem
	switch data[0] {
	case '[':
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", errCorruptSnapshot, err)
		}
	case '{':
		var snap cartSnapshot
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("%w: %v", errCorruptSnapshot, err)
		}
		if snap.Version != snapshotVersion {
			return nil, fmt.Errorf("%w: unsupported version %d", errCorruptSnapshot, snap.Version)
		}
		raw = snap.Items
	default:
		return nil, errCorruptSnapshot
	}

	seen := make(map[int64]struct{}, len(raw))
	items := make([]domain.CartItem, 0, len(raw))
	for _, it := range raw {
		if it.ID <= 0 {
			return nil, fmt.Errorf("%w: item without id", errCorruptSnapshot)
		}
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", errCorruptSnapshot, it.ID)
		}
		seen[it.ID] = struct{}{}
		items = append(items, domain.CartItem{
			ID:       it.ID,
			Title:    it.Title,
			Author:   it.Author,
			CoverURL: it.CoverURL,
			Category: it.Category,
			Selected: it.Selected,
		})
	}
	return items, nil
}
