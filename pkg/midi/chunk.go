package midi

import (
	"encoding/binary"
	"io"
)

// chunk is a raw `[4-byte ID][4-byte big-endian length][payload]` block, the
// framing unit both the header and every track use.
type chunk struct {
	id      string
	payload []byte
}

// readChunk reads one chunk from r. If wantID is non-empty, the chunk's ID
// must match it exactly or KindChunkIDMismatch is raised.
func readChunk(r io.Reader, wantID string) (chunk, error) {
	var head [8]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return chunk{}, wrapError(KindChunkTruncated, err, "reading chunk header")
	}

	id := string(head[:4])
	if !isASCIIChunkID(head[:4]) {
		return chunk{}, NewError(KindChunkIDInvalid, "chunk id %q is not printable ASCII", id)
	}
	if wantID != "" && id != wantID {
		return chunk{}, NewError(KindChunkIDMismatch, "expected %q chunk, found %q", wantID, id)
	}

	length := binary.BigEndian.Uint32(head[4:8])
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return chunk{}, wrapError(KindChunkTruncated, err, "reading %q payload (%d bytes)", id, length)
	}

	return chunk{id: id, payload: payload}, nil
}

// writeChunk frames payload as an id-tagged chunk and writes it to w.
func writeChunk(w io.Writer, id string, payload []byte) error {
	var head [8]byte
	copy(head[:4], id)
	binary.BigEndian.PutUint32(head[4:8], uint32(len(payload)))
	if _, err := w.Write(head[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// isASCIIChunkID reports whether id is 4 printable ASCII bytes. The spec
// adopts the strict check; callers that need to round-trip files with
// ISO-8859-1 chunk IDs can relax this by pre-filtering before Parse.
func isASCIIChunkID(id []byte) bool {
	for _, b := range id {
		if b < 0x20 || b > 0x7e {
			return false
		}
	}
	return true
}
