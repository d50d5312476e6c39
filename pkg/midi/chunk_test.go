package midi

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeChunk(&buf, "MThd", []byte{0, 1, 0, 2, 1, 0xe0}))

	c, err := readChunk(&buf, "MThd")
	require.NoError(t, err)
	assert.Equal(t, "MThd", c.id)
	assert.Equal(t, []byte{0, 1, 0, 2, 1, 0xe0}, c.payload)
}

func TestChunkIDMismatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeChunk(&buf, "MTrk", []byte{}))

	_, err := readChunk(&buf, "MThd")
	require.Error(t, err)
	var midiErr *Error
	require.ErrorAs(t, err, &midiErr)
	assert.Equal(t, KindChunkIDMismatch, midiErr.Kind)
}

func TestChunkTruncatedHeader(t *testing.T) {
	_, err := readChunk(bytes.NewReader([]byte{'M', 'T', 'h'}), "MThd")
	require.Error(t, err)
	var midiErr *Error
	require.ErrorAs(t, err, &midiErr)
	assert.Equal(t, KindChunkTruncated, midiErr.Kind)
}

func TestChunkTruncatedPayload(t *testing.T) {
	data := []byte{'M', 'T', 'h', 'd', 0, 0, 0, 10, 1, 2}
	_, err := readChunk(bytes.NewReader(data), "")
	require.Error(t, err)
	var midiErr *Error
	require.ErrorAs(t, err, &midiErr)
	assert.Equal(t, KindChunkTruncated, midiErr.Kind)
}

func TestChunkInvalidID(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0, 0, 0, 0}
	_, err := readChunk(bytes.NewReader(data), "")
	require.Error(t, err)
	var midiErr *Error
	require.ErrorAs(t, err, &midiErr)
	assert.Equal(t, KindChunkIDInvalid, midiErr.Kind)
}
