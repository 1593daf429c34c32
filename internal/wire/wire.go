// Package wire implements the length-prefixed, tagged binary protocol
// requests and responses travel in: every message is a 4-byte length
// header followed by a one-byte tag and a tag-specific payload.
package wire

import "keyspace/internal/buf"

// MaxLen bounds the payload size of a single frame (excluding its
// 4-byte length prefix), for both requests and responses. It defaults
// to 4096 but is a var so a server entrypoint can overlay a configured
// limit at startup, before any connection is accepted.
var MaxLen = 4096

// Status is the outcome of attempting to unmarshal a frame.
type Status int

const (
	// StatusSuccess means a value was fully decoded.
	StatusSuccess Status = iota
	// StatusIncomplete means more bytes are needed.
	StatusIncomplete
	// StatusTooBig means the declared length exceeds MaxLen.
	StatusTooBig
	// StatusInvalid means the tag byte did not match a known variant or
	// the payload was shorter than its own fields declare.
	StatusInvalid
)

// request tags.
const (
	tagCmd uint8 = 0
)

// response tags.
const (
	tagNil uint8 = iota
	tagErr
	tagStr
	tagInt
	tagArr
	tagDbl
)

// Command is the sole request variant: a command name plus its
// arguments, in order.
type Command struct {
	Args []string
}

// MarshalRequest encodes cmd as a length-prefixed frame into b. It
// returns StatusTooBig without writing anything if the encoded
// payload would exceed MaxLen.
func MarshalRequest(b *buf.Buffer, cmd Command) Status {
	n := requestPayloadLen(cmd)
	if n > MaxLen {
		return StatusTooBig
	}
	b.AppendUint32(uint32(n))
	b.AppendUint8(tagCmd)
	b.AppendUint32(uint32(len(cmd.Args)))
	for _, s := range cmd.Args {
		b.AppendUint32(uint32(len(s)))
		b.Append([]byte(s))
	}
	return StatusSuccess
}

func requestPayloadLen(cmd Command) int {
	n := 1 + 4 // tag + ncmd
	for _, s := range cmd.Args {
		n += 4 + len(s)
	}
	return n
}

// UnmarshalRequest attempts to decode one frame from the head of
// data. On success it returns the decoded Command and the number of
// bytes consumed (4 + payload length); the caller is responsible for
// consuming that many bytes from its buffer.
func UnmarshalRequest(data []byte) (cmd Command, consumed int, status Status) {
	if len(data) < 4 {
		return Command{}, 0, StatusIncomplete
	}
	n := int(buf.ReadUint32(data))
	if n > MaxLen {
		return Command{}, 0, StatusTooBig
	}
	if len(data) < 4+n {
		return Command{}, 0, StatusIncomplete
	}

	payload := data[4 : 4+n]
	if len(payload) < 1 || payload[0] != tagCmd {
		return Command{}, 0, StatusInvalid
	}
	payload = payload[1:]

	if len(payload) < 4 {
		return Command{}, 0, StatusInvalid
	}
	ncmd := int(buf.ReadUint32(payload))
	payload = payload[4:]

	args := make([]string, 0, ncmd)
	for i := 0; i < ncmd; i++ {
		if len(payload) < 4 {
			return Command{}, 0, StatusInvalid
		}
		slen := int(buf.ReadUint32(payload))
		payload = payload[4:]
		if len(payload) < slen {
			return Command{}, 0, StatusInvalid
		}
		args = append(args, buf.ReadStr(payload, slen))
		payload = payload[slen:]
	}

	return Command{Args: args}, 4 + n, StatusSuccess
}
