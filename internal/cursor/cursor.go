// Package cursor encodes the continuation token for task list pagination.
//
// A token marks the position of the last row delivered: the value of the
// active sort key on that row plus the row's task number as tie-break. It is
// opaque to clients and position-stable: rows inserted before the boundary
// do not shift it, so repeated calls with the same token never duplicate or
// skip rows the way a numeric offset would.
package cursor

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

var ErrInvalid = errors.New("invalid cursor")

// Position is the decoded resume point. SortValue is the stringified value
// of the sort key on the boundary row; Number is the boundary task number.
type Position struct {
	SortKey   string `json:"k"`
	SortValue string `json:"v"`
	Number    uint64 `json:"n"`
}

// Encode serializes a position into an opaque token.
func Encode(p Position) string {
	raw, _ := json.Marshal(p)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Decode parses a token produced by Encode. It rejects malformed input and
// tokens minted for a different sort key, which would otherwise resume a
// page at a meaningless position.
func Decode(token, expectSortKey string) (Position, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Position{}, ErrInvalid
	}

	var p Position
	if err := json.Unmarshal(raw, &p); err != nil {
		return Position{}, ErrInvalid
	}
	if p.SortKey != expectSortKey {
		return Position{}, ErrInvalid
	}

	return p, nil
}
