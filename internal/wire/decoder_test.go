package wire

import (
	"testing"

	"github.com/cubelab/virtualcube"
)

func TestDecodeRotation(t *testing.T) {
	// Codes pair up as color*2 (+1 for counter-clockwise) in the
	// device's blue-first color order.
	payload := []byte{
		0x00, 0x01, // blue clockwise
		0x01, 0x02, // blue counter-clockwise
		0x04, 0x00, // white clockwise
		0x0B, 0x03, // orange counter-clockwise
	}

	events, err := DecodeRotation(payload)
	if err != nil {
		t.Fatalf("DecodeRotation returned error: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("DecodeRotation returned %d events, want 4", len(events))
	}

	want := []struct {
		face      virtualcube.Color
		clockwise bool
		center    byte
	}{
		{virtualcube.Blue, true, 0x01},
		{virtualcube.Blue, false, 0x02},
		{virtualcube.White, true, 0x00},
		{virtualcube.Orange, false, 0x03},
	}
	for i, w := range want {
		if events[i].Face != w.face {
			t.Errorf("Event %d face = %v, want %v", i, events[i].Face, w.face)
		}
		if events[i].Clockwise != w.clockwise {
			t.Errorf("Event %d clockwise = %v, want %v", i, events[i].Clockwise, w.clockwise)
		}
		if events[i].CenterOrientation != w.center {
			t.Errorf("Event %d center = %d, want %d", i, events[i].CenterOrientation, w.center)
		}
	}

	m := events[3].Move()
	if m.Face != virtualcube.Orange || m.Clockwise {
		t.Errorf("Move() = %v, want O'", m)
	}
}

func TestDecodeRotationErrors(t *testing.T) {
	if _, err := DecodeRotation([]byte{0x00}); err == nil {
		t.Error("Odd-length payload should fail")
	}
	if _, err := DecodeRotation([]byte{0x0C, 0x00}); err == nil {
		t.Error("Out-of-range face code should fail")
	}
}

func TestDecodeBattery(t *testing.T) {
	event, err := DecodeBattery([]byte{0x42})
	if err != nil {
		t.Fatalf("DecodeBattery returned error: %v", err)
	}
	if event.Level != 66 {
		t.Errorf("Level = %d, want 66", event.Level)
	}

	if _, err := DecodeBattery(nil); err == nil {
		t.Error("Empty battery payload should fail")
	}
}

func TestDecodeCubeType(t *testing.T) {
	event, err := DecodeCubeType([]byte{0x00})
	if err != nil {
		t.Fatalf("DecodeCubeType returned error: %v", err)
	}
	if event.TypeName != "standard" {
		t.Errorf("TypeName = %q, want standard", event.TypeName)
	}

	event, err = DecodeCubeType([]byte{0x01})
	if err != nil {
		t.Fatalf("DecodeCubeType returned error: %v", err)
	}
	if event.TypeName != "edge" {
		t.Errorf("TypeName = %q, want edge", event.TypeName)
	}
}

func TestDecodeStateSolved(t *testing.T) {
	// A solved dump: each face block uniformly carries its own on-wire
	// color index.
	payload := make([]byte, 54)
	for w := 0; w < 6; w++ {
		for i := 0; i < 9; i++ {
			payload[w*9+i] = byte(w)
		}
	}

	state, err := DecodeState(payload)
	if err != nil {
		t.Fatalf("DecodeState returned error: %v", err)
	}

	cube, err := virtualcube.RestoreCube(state)
	if err != nil {
		t.Fatalf("RestoreCube returned error: %v", err)
	}
	if !cube.IsSolved() {
		t.Error("Solved dump should restore to a solved cube")
		t.Log("\n" + cube.String())
	}
}

func TestDecodeStateErrors(t *testing.T) {
	if _, err := DecodeState(make([]byte, 53)); err == nil {
		t.Error("Short state payload should fail")
	}

	payload := make([]byte, 54)
	payload[10] = 0x06
	if _, err := DecodeState(payload); err == nil {
		t.Error("Out-of-range color index should fail")
	}
}

func TestDecodeOrientationIdentity(t *testing.T) {
	event, err := DecodeOrientation([]byte("0#0#0#1"))
	if err != nil {
		t.Fatalf("DecodeOrientation returned error: %v", err)
	}
	if event.Up != virtualcube.White {
		t.Errorf("Up = %v, want White", event.Up)
	}
	if event.Front != virtualcube.Green {
		t.Errorf("Front = %v, want Green", event.Front)
	}
}

func TestDecodeOrientationErrors(t *testing.T) {
	if _, err := DecodeOrientation([]byte("1#2#3")); err == nil {
		t.Error("Orientation with 3 parts should fail")
	}
	if _, err := DecodeOrientation([]byte("a#b#c#d")); err == nil {
		t.Error("Non-numeric orientation should fail")
	}
}
