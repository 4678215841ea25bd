package wire

import (
	"bytes"
	"errors"
	"testing"
)

// frame builds a valid message frame around the given type and payload.
func frame(msgType byte, payload []byte) []byte {
	length := byte(len(payload) + 4)
	out := []byte{FramePrefix, length, msgType}
	out = append(out, payload...)

	var checksum byte
	for _, b := range out {
		checksum += b
	}
	return append(out, checksum, FrameSuffix1, FrameSuffix2)
}

func TestParseFrameRotation(t *testing.T) {
	data := frame(MsgTypeRotation, []byte{0x02, 0x00})

	msg, err := ParseFrame(data)
	if err != nil {
		t.Fatalf("ParseFrame returned error: %v", err)
	}
	if msg.Type != MsgTypeRotation {
		t.Errorf("Type = 0x%02X, want 0x%02X", msg.Type, MsgTypeRotation)
	}
	if !bytes.Equal(msg.Payload, []byte{0x02, 0x00}) {
		t.Errorf("Payload = %v, want [2 0]", msg.Payload)
	}
	if msg.RawBase64 == "" {
		t.Error("RawBase64 should be populated")
	}
}

func TestParseFrameEmptyPayload(t *testing.T) {
	data := frame(MsgTypeBattery, nil)
	msg, err := ParseFrame(data)
	if err != nil {
		t.Fatalf("ParseFrame returned error: %v", err)
	}
	if len(msg.Payload) != 0 {
		t.Errorf("Payload should be empty, got %v", msg.Payload)
	}
}

func TestParseFrameErrors(t *testing.T) {
	valid := frame(MsgTypeRotation, []byte{0x02, 0x00})

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"too short", []byte{FramePrefix, 0x01}, ErrMessageTooShort},
		{"bad prefix", append([]byte{0x00}, valid[1:]...), ErrInvalidPrefix},
		{"truncated", valid[:len(valid)-2], ErrInvalidLength},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseFrame(tc.data); !errors.Is(err, tc.want) {
				t.Errorf("ParseFrame error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestParseFrameBadSuffix(t *testing.T) {
	data := frame(MsgTypeRotation, []byte{0x02, 0x00})
	data[len(data)-1] = 0x00
	if _, err := ParseFrame(data); !errors.Is(err, ErrInvalidSuffix) {
		t.Errorf("ParseFrame error = %v, want ErrInvalidSuffix", err)
	}
}

func TestParseFrameBadChecksum(t *testing.T) {
	data := frame(MsgTypeRotation, []byte{0x02, 0x00})
	data[len(data)-3]++
	if _, err := ParseFrame(data); !errors.Is(err, ErrInvalidChecksum) {
		t.Errorf("ParseFrame error = %v, want ErrInvalidChecksum", err)
	}
}

func TestBuildCommandRoundTrip(t *testing.T) {
	for _, cmd := range []byte{CmdRequestBattery, CmdRequestState, CmdFlashBacklight} {
		data := BuildCommand(cmd)
		msg, err := ParseFrame(data)
		if err != nil {
			t.Fatalf("ParseFrame(BuildCommand(0x%02X)) returned error: %v", cmd, err)
		}
		if msg.Type != cmd {
			t.Errorf("Type = 0x%02X, want 0x%02X", msg.Type, cmd)
		}
		if len(msg.Payload) != 0 {
			t.Errorf("Command payload should be empty, got %v", msg.Payload)
		}
	}
}

func TestMessageTypeName(t *testing.T) {
	cases := map[byte]string{
		MsgTypeRotation:     "rotation",
		MsgTypeState:        "state",
		MsgTypeOrientation:  "orientation",
		MsgTypeBattery:      "battery",
		MsgTypeOfflineStats: "offline_stats",
		MsgTypeCubeType:     "cube_type",
		0xEE:                "unknown_0xEE",
	}
	for msgType, want := range cases {
		if got := MessageTypeName(msgType); got != want {
			t.Errorf("MessageTypeName(0x%02X) = %q, want %q", msgType, got, want)
		}
	}
}
