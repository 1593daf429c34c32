package buf

import "testing"

func TestAppendConsumeRoundTrip(t *testing.T) {
	b := New()
	b.Append([]byte("hello"))
	if b.Size() != 5 {
		t.Fatalf("expected size 5, got %d", b.Size())
	}
	if string(b.Data()) != "hello" {
		t.Fatalf("unexpected data %q", b.Data())
	}
	b.Consume(5)
	if b.Size() != 0 {
		t.Fatalf("expected size 0 after consuming everything, got %d", b.Size())
	}
}

func TestConsumeEmptyIsNoop(t *testing.T) {
	b := New()
	b.Consume(10)
	if b.Size() != 0 {
		t.Fatalf("expected size 0, got %d", b.Size())
	}
}

func TestCompactAndAppend48KiB(t *testing.T) {
	b := New() // default 64KiB
	first := make([]byte, 48*1024)
	for i := range first {
		first[i] = byte(i)
	}
	b.Append(first)
	b.Consume(32 * 1024)

	second := make([]byte, 48*1024)
	for i := range second {
		second[i] = byte(i + 1)
	}
	b.Append(second)

	if b.Size() != 64*1024 {
		t.Fatalf("expected final size 64KiB, got %d", b.Size())
	}

	data := b.Data()
	for i := 0; i < 16*1024; i++ {
		want := byte(i + 32*1024)
		if data[i] != want {
			t.Fatalf("byte %d: want %d, got %d", i, want, data[i])
		}
	}
	for i := 0; i < 48*1024; i++ {
		want := byte(i + 1)
		if data[16*1024+i] != want {
			t.Fatalf("byte %d: want %d, got %d", 16*1024+i, want, data[16*1024+i])
		}
	}
}

func TestCodecRoundTrip(t *testing.T) {
	b := New()
	b.AppendUint8(0xAB)
	b.AppendUint32(0xDEADBEEF)
	b.AppendInt64(-42)
	b.AppendDbl(3.5)
	b.Append([]byte("abc"))

	data := b.Data()
	if ReadUint8(data) != 0xAB {
		t.Fatalf("uint8 mismatch")
	}
	data = data[1:]
	if ReadUint32(data) != 0xDEADBEEF {
		t.Fatalf("uint32 mismatch")
	}
	data = data[4:]
	if ReadInt64(data) != -42 {
		t.Fatalf("int64 mismatch")
	}
	data = data[8:]
	if ReadDbl(data) != 3.5 {
		t.Fatalf("dbl mismatch")
	}
	data = data[8:]
	if ReadStr(data, 3) != "abc" {
		t.Fatalf("str mismatch")
	}
}
