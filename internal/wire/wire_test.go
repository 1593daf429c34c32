package wire

import (
	"testing"

	"keyspace/internal/buf"
)

func TestRequestRoundTrip(t *testing.T) {
	b := buf.New()
	cmd := Command{Args: []string{"set", "k", "v"}}
	if st := MarshalRequest(b, cmd); st != StatusSuccess {
		t.Fatalf("marshal failed: %v", st)
	}

	got, consumed, status := UnmarshalRequest(b.Data())
	if status != StatusSuccess {
		t.Fatalf("unmarshal failed: %v", status)
	}
	if consumed != b.Size() {
		t.Fatalf("expected to consume the entire frame (%d bytes), consumed %d", b.Size(), consumed)
	}
	if len(got.Args) != 3 || got.Args[0] != "set" || got.Args[1] != "k" || got.Args[2] != "v" {
		t.Fatalf("unexpected roundtrip result: %+v", got.Args)
	}
}

func TestUnmarshalIncomplete(t *testing.T) {
	if _, _, status := UnmarshalRequest([]byte{1, 2, 3}); status != StatusIncomplete {
		t.Fatalf("expected incomplete with < 4 bytes, got %v", status)
	}

	b := buf.New()
	MarshalRequest(b, Command{Args: []string{"a", "bb", "ccc"}})
	full := b.Data()
	if _, _, status := UnmarshalRequest(full[:len(full)-1]); status != StatusIncomplete {
		t.Fatalf("expected incomplete with a truncated frame, got %v", status)
	}
}

func TestUnmarshalMaxLenBoundary(t *testing.T) {
	b := buf.NewWithCapacity(2 * MaxLen)
	// one string sized so the total payload is exactly MaxLen
	payloadOverhead := 1 + 4 + 4 // tag + ncmd + one string's length header
	strLen := MaxLen - payloadOverhead
	MarshalRequest(b, Command{Args: []string{string(make([]byte, strLen))}})

	_, _, status := UnmarshalRequest(b.Data())
	if status != StatusSuccess {
		t.Fatalf("expected success at exactly MaxLen, got %v", status)
	}
}

func TestUnmarshalTooBig(t *testing.T) {
	b := buf.New()
	b.AppendUint32(uint32(MaxLen + 1))
	_, _, status := UnmarshalRequest(b.Data())
	if status != StatusTooBig {
		t.Fatalf("expected too big, got %v", status)
	}
}

func TestResponseRoundTripAllVariants(t *testing.T) {
	cases := []Response{
		Nil{},
		Err{Code: ErrNotFound, Msg: "no such key"},
		Str{Val: "hello"},
		Int{Val: -42},
		Dbl{Val: 3.25},
		Arr{Elements: []Response{Int{Val: 1}, Str{Val: "two"}, Nil{}}},
	}

	for _, want := range cases {
		b := buf.New()
		if st := MarshalResponse(b, want); st != StatusSuccess {
			t.Fatalf("marshal %v failed: %v", want, st)
		}
		got, consumed, status := UnmarshalResponse(b.Data())
		if status != StatusSuccess {
			t.Fatalf("unmarshal %v failed: %v", want, status)
		}
		if consumed != b.Size() {
			t.Fatalf("expected full frame consumed for %v", want)
		}
		if got.String() != want.String() {
			t.Fatalf("roundtrip mismatch: want %v got %v", want, got)
		}
	}
}

func TestResponseInvalidTag(t *testing.T) {
	b := buf.New()
	b.AppendUint32(1)
	b.AppendUint8(0xFF)
	if _, _, status := UnmarshalResponse(b.Data()); status != StatusInvalid {
		t.Fatalf("expected invalid tag, got %v", status)
	}
}
