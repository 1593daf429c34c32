package wire

import (
	"fmt"

	"keyspace/internal/buf"
)

// Error codes carried in the first byte of an Err response payload.
// Codes beyond ErrUnknown/ErrTooBig are assigned by collaborators
// outside this package (the dispatcher); the codec itself treats the
// byte as opaque.
const (
	ErrUnknown   uint8 = 0
	ErrTooBig    uint8 = 1
	ErrWrongType uint8 = 2
	ErrNotFound  uint8 = 3
)

// Response is the tagged sum of every reply variant: nil, err, str,
// int, arr and dbl.
type Response interface {
	marshal(b *buf.Buffer)
	length() int
	String() string
}

// Nil is the absence of a value.
type Nil struct{}

func (Nil) marshal(b *buf.Buffer) { b.AppendUint8(tagNil) }
func (Nil) length() int           { return 1 }
func (Nil) String() string        { return "nil" }

// Err carries a one-byte code plus a human-readable message.
type Err struct {
	Code uint8
	Msg  string
}

func (e Err) marshal(b *buf.Buffer) {
	b.AppendUint8(tagErr)
	b.AppendUint8(e.Code)
	Str{Val: e.Msg}.marshal(b)
}
func (e Err) length() int    { return 1 + 1 + (Str{Val: e.Msg}).length() }
func (e Err) String() string { return fmt.Sprintf("(error) %s", e.Msg) }

// Str carries a length-prefixed string.
type Str struct {
	Val string
}

func (s Str) marshal(b *buf.Buffer) {
	b.AppendUint8(tagStr)
	b.AppendUint32(uint32(len(s.Val)))
	b.Append([]byte(s.Val))
}
func (s Str) length() int    { return 1 + 4 + len(s.Val) }
func (s Str) String() string { return s.Val }

// Int carries a 64-bit signed integer.
type Int struct {
	Val int64
}

func (i Int) marshal(b *buf.Buffer) {
	b.AppendUint8(tagInt)
	b.AppendInt64(i.Val)
}
func (i Int) length() int    { return 1 + 8 }
func (i Int) String() string { return fmt.Sprintf("%d", i.Val) }

// Dbl carries a 64-bit IEEE-754 double.
type Dbl struct {
	Val float64
}

func (d Dbl) marshal(b *buf.Buffer) {
	b.AppendUint8(tagDbl)
	b.AppendDbl(d.Val)
}
func (d Dbl) length() int    { return 1 + 8 }
func (d Dbl) String() string { return fmt.Sprintf("%v", d.Val) }

// Arr carries a homogeneous-or-not sequence of nested responses.
type Arr struct {
	Elements []Response
}

func (a Arr) marshal(b *buf.Buffer) {
	b.AppendUint8(tagArr)
	b.AppendUint32(uint32(len(a.Elements)))
	for _, e := range a.Elements {
		e.marshal(b)
	}
}
func (a Arr) length() int {
	n := 1 + 4
	for _, e := range a.Elements {
		n += e.length()
	}
	return n
}
func (a Arr) String() string {
	out := fmt.Sprintf("(array) len=%d", len(a.Elements))
	for _, e := range a.Elements {
		out += "\n" + e.String()
	}
	return out + "\n(array) end"
}

// MarshalResponse encodes r as a length-prefixed frame into b. It
// returns StatusTooBig without writing anything if the encoded
// payload would exceed MaxLen.
func MarshalResponse(b *buf.Buffer, r Response) Status {
	n := r.length()
	if n > MaxLen {
		return StatusTooBig
	}
	b.AppendUint32(uint32(n))
	r.marshal(b)
	return StatusSuccess
}

// UnmarshalResponse attempts to decode one response frame from the
// head of data, returning the decoded Response and the number of
// bytes consumed.
func UnmarshalResponse(data []byte) (r Response, consumed int, status Status) {
	if len(data) < 4 {
		return nil, 0, StatusIncomplete
	}
	n := int(buf.ReadUint32(data))
	if n > MaxLen {
		return nil, 0, StatusTooBig
	}
	if len(data) < 4+n {
		return nil, 0, StatusIncomplete
	}

	payload := data[4 : 4+n]
	r, ok := decodeResponse(payload)
	if !ok {
		return nil, 0, StatusInvalid
	}
	return r, 4 + n, StatusSuccess
}

// decodeResponse decodes exactly one tagged response from the front
// of payload, which must hold at least its full encoded length (the
// caller having already validated the outer frame length).
func decodeResponse(payload []byte) (Response, bool) {
	if len(payload) < 1 {
		return nil, false
	}
	switch payload[0] {
	case tagNil:
		return Nil{}, true

	case tagErr:
		if len(payload) < 2 {
			return nil, false
		}
		code := payload[1]
		inner, ok := decodeResponse(payload[2:])
		if !ok {
			return nil, false
		}
		str, ok := inner.(Str)
		if !ok {
			return nil, false
		}
		return Err{Code: code, Msg: str.Val}, true

	case tagStr:
		if len(payload) < 5 {
			return nil, false
		}
		slen := int(buf.ReadUint32(payload[1:]))
		if len(payload) < 5+slen {
			return nil, false
		}
		return Str{Val: buf.ReadStr(payload[5:], slen)}, true

	case tagInt:
		if len(payload) < 9 {
			return nil, false
		}
		return Int{Val: buf.ReadInt64(payload[1:])}, true

	case tagDbl:
		if len(payload) < 9 {
			return nil, false
		}
		return Dbl{Val: buf.ReadDbl(payload[1:])}, true

	case tagArr:
		if len(payload) < 5 {
			return nil, false
		}
		n := int(buf.ReadUint32(payload[1:]))
		rest := payload[5:]
		elements := make([]Response, 0, n)
		for i := 0; i < n; i++ {
			el, ok := decodeResponse(rest)
			if !ok {
				return nil, false
			}
			elements = append(elements, el)
			rest = rest[el.length():]
		}
		return Arr{Elements: elements}, true

	default:
		return nil, false
	}
}
