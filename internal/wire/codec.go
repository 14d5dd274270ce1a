// Package wire implements the length-prefixed JSON framing used on every
// client<->server connection: [u32 big-endian length][utf-8 json body].
package wire

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
)

// MaxMessageSize bounds a single frame's body. A length prefix above this
// is a protocol violation, not a retryable condition — the connection is
// reset.
const MaxMessageSize = 64 * 1024

const lenPrefixSize = 4

// Encode frames msg as [u32 len][json body].
func Encode(msg any) ([]byte, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("wire: marshal: %w", err)
	}
	if len(body) > MaxMessageSize {
		return nil, fmt.Errorf("wire: message of %d bytes exceeds max %d", len(body), MaxMessageSize)
	}
	var buf bytes.Buffer
	buf.Grow(lenPrefixSize + len(body))
	if err := binary.Write(&buf, binary.BigEndian, uint32(len(body))); err != nil {
		return nil, err
	}
	buf.Write(body)
	return buf.Bytes(), nil
}

// Decoder incrementally reassembles frames from a byte stream arriving in
// arbitrary-sized chunks (as from a net.Conn read loop). Feed appends raw
// bytes; each TryDecode call pulls at most one complete frame out of the
// internal buffer, so callers loop until it reports ok == false.
type Decoder struct {
	buf []byte
}

// Feed appends newly-read bytes to the decoder's internal buffer.
func (d *Decoder) Feed(chunk []byte) {
	d.buf = append(d.buf, chunk...)
}

// TryDecode extracts one complete frame's raw JSON body from the buffer, if
// one is fully present. ok is false when more bytes are needed. An oversize
// length prefix is a protocol error: the decoder drops its buffered state
// entirely so the caller can reset the connection rather than attempt to
// resynchronize on a corrupt stream.
func (d *Decoder) TryDecode() (body []byte, ok bool, err error) {
	if len(d.buf) < lenPrefixSize {
		return nil, false, nil
	}
	n := binary.BigEndian.Uint32(d.buf[:lenPrefixSize])
	if n > MaxMessageSize {
		d.buf = nil
		return nil, false, fmt.Errorf("wire: frame length %d exceeds max %d", n, MaxMessageSize)
	}
	total := lenPrefixSize + int(n)
	if len(d.buf) < total {
		return nil, false, nil
	}
	body = make([]byte, n)
	copy(body, d.buf[lenPrefixSize:total])
	d.buf = d.buf[total:]
	return body, true, nil
}

// Decode unmarshals a single extracted frame body into v.
func Decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("wire: unmarshal: %w", err)
	}
	return nil
}
