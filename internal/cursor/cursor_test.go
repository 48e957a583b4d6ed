package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	pos := Position{SortKey: "title", SortValue: "Fix the roof", Number: 42}

	token := Encode(pos)
	decoded, err := Decode(token, "title")
	require.NoError(t, err)
	assert.Equal(t, pos, decoded)
}

func TestDecode_RejectsMalformedToken(t *testing.T) {
	_, err := Decode("not a token!!", "number")
	assert.ErrorIs(t, err, ErrInvalid)

	// Valid base64 of junk bytes
	_, err = Decode("aGVsbG8", "number")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecode_RejectsSortKeyMismatch(t *testing.T) {
	token := Encode(Position{SortKey: "title", SortValue: "x", Number: 1})

	_, err := Decode(token, "status")
	assert.ErrorIs(t, err, ErrInvalid)
}
