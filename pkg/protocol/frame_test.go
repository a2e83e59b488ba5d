package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestFrameEncodeDecode(t *testing.T) {
	tests := []struct {
		name  string
		frame *Frame
	}{
		{"empty", NewFrame(FrameControl, nil)},
		{"payload", NewFrame(FrameEvent, []byte(`{"type":"click"}`))},
		{"flags", &Frame{Type: FramePatches, Flags: FlagFinal, Payload: []byte("x")}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decoded, err := DecodeFrame(tc.frame.Encode())
			if err != nil {
				t.Fatalf("DecodeFrame: %v", err)
			}
			if decoded.Type != tc.frame.Type {
				t.Errorf("Type = %v, want %v", decoded.Type, tc.frame.Type)
			}
			if decoded.Flags != tc.frame.Flags {
				t.Errorf("Flags = %v, want %v", decoded.Flags, tc.frame.Flags)
			}
			if !bytes.Equal(decoded.Payload, tc.frame.Payload) && len(tc.frame.Payload) > 0 {
				t.Errorf("Payload = %q, want %q", decoded.Payload, tc.frame.Payload)
			}
		})
	}
}

func TestDecodeFrameTruncated(t *testing.T) {
	full := NewFrame(FrameEvent, []byte("payload")).Encode()

	for _, n := range []int{0, 2, FrameHeaderSize, len(full) - 1} {
		if _, err := DecodeFrame(full[:n]); !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("DecodeFrame(%d bytes) err = %v, want ErrUnexpectedEOF", n, err)
		}
	}
}

func TestDecodeFrameInvalidType(t *testing.T) {
	data := []byte{0xFF, 0, 0, 0}
	if _, err := DecodeFrame(data); !errors.Is(err, ErrInvalidFrameType) {
		t.Errorf("err = %v, want ErrInvalidFrameType", err)
	}
}

func TestReadWriteFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	in := &Frame{Type: FramePatches, Flags: FlagCompressed, Payload: []byte("abc")}

	if err := WriteFrame(&buf, in); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	out, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if out.Type != in.Type || out.Flags != in.Flags || !bytes.Equal(out.Payload, in.Payload) {
		t.Errorf("round trip mismatch: %+v vs %+v", out, in)
	}
}

func TestWriteFrameTooLarge(t *testing.T) {
	f := NewFrame(FramePatches, make([]byte, MaxPayloadSize+1))
	if err := WriteFrame(io.Discard, f); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("err = %v, want ErrFrameTooLarge", err)
	}
}

func TestFrameFlagsHas(t *testing.T) {
	ff := FlagCompressed | FlagFinal
	if !ff.Has(FlagCompressed) || !ff.Has(FlagFinal) {
		t.Error("Has missed set flags")
	}
	if FrameFlags(0).Has(FlagFinal) {
		t.Error("Has reported an unset flag")
	}
}

func TestFrameTypeString(t *testing.T) {
	names := map[FrameType]string{
		FrameHandshake: "Handshake",
		FrameEvent:     "Event",
		FramePatches:   "Patches",
		FrameControl:   "Control",
		FrameError:     "Error",
		FrameType(99):  "Unknown",
	}
	for ft, want := range names {
		if ft.String() != want {
			t.Errorf("FrameType(%d).String() = %q, want %q", ft, ft.String(), want)
		}
	}
}
