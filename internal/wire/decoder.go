package wire

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cubelab/virtualcube"
)

// wireColors maps the cube's on-wire color indices to model colors.
// The device numbers its faces blue, green, white, yellow, red, orange.
var wireColors = [6]virtualcube.Color{
	virtualcube.Blue,
	virtualcube.Green,
	virtualcube.White,
	virtualcube.Yellow,
	virtualcube.Red,
	virtualcube.Orange,
}

// RotationEvent is a single face rotation reported by the device.
type RotationEvent struct {
	Code              byte              `json:"code"`               // Raw face+direction code (0x00-0x0B)
	CenterOrientation byte              `json:"center_orientation"` // Center piece orientation
	Face              virtualcube.Color `json:"face"`               // Model face that turned
	Clockwise         bool              `json:"clockwise"`          // Direction of rotation
}

// Move converts the event into a model move.
func (e RotationEvent) Move() virtualcube.Move {
	return virtualcube.Move{Face: e.Face, Clockwise: e.Clockwise}
}

// BatteryEvent is a battery level notification.
type BatteryEvent struct {
	Level int `json:"level"` // 0-100 percentage
}

// CubeTypeEvent is a cube type notification.
type CubeTypeEvent struct {
	TypeCode byte   `json:"type_code"`
	TypeName string `json:"type_name"`
}

// OrientationEvent is a cube orientation notification. Up and Front
// name the model faces currently pointing up and at the solver.
type OrientationEvent struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`

	Up    virtualcube.Color `json:"up"`
	Front virtualcube.Color `json:"front"`
}

// DecodeRotation decodes a rotation message payload into rotation
// events. Rotation payloads contain pairs of bytes:
// [face_dir] [center_orientation]. Even face codes are clockwise, odd
// counter-clockwise, and code/2 indexes the on-wire color table.
func DecodeRotation(payload []byte) ([]RotationEvent, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("wire: rotation payload must have even length, got %d", len(payload))
	}

	var events []RotationEvent
	for i := 0; i < len(payload); i += 2 {
		code := payload[i]
		colorIdx := code / 2
		if int(colorIdx) >= len(wireColors) {
			return nil, fmt.Errorf("wire: unknown color index %d from face code 0x%02X", colorIdx, code)
		}

		events = append(events, RotationEvent{
			Code:              code,
			CenterOrientation: payload[i+1],
			Face:              wireColors[colorIdx],
			Clockwise:         code%2 == 0,
		})
	}

	return events, nil
}

// DecodeBattery decodes a battery message payload.
func DecodeBattery(payload []byte) (*BatteryEvent, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("wire: battery payload too short")
	}
	return &BatteryEvent{
		Level: int(payload[0]),
	}, nil
}

// DecodeCubeType decodes a cube type message payload.
func DecodeCubeType(payload []byte) (*CubeTypeEvent, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("wire: cube type payload too short")
	}

	typeName := "standard"
	if payload[0] == 0x01 {
		typeName = "edge"
	}

	return &CubeTypeEvent{
		TypeCode: payload[0],
		TypeName: typeName,
	}, nil
}

// DecodeState decodes a full facelet dump into a sticker array usable
// with virtualcube.RestoreCube. The payload holds 54 on-wire color
// indices, one face block of nine after another in on-wire face order,
// each block row-major.
func DecodeState(payload []byte) ([virtualcube.NumFaces][9]virtualcube.Color, error) {
	var state [virtualcube.NumFaces][9]virtualcube.Color
	if len(payload) < 54 {
		return state, fmt.Errorf("wire: state payload too short, got %d bytes", len(payload))
	}

	for w := 0; w < 6; w++ {
		face := wireColors[w]
		for i := 0; i < 9; i++ {
			idx := payload[w*9+i]
			if int(idx) >= len(wireColors) {
				return state, fmt.Errorf("wire: invalid color index %d at facelet %d", idx, w*9+i)
			}
			state[face][i] = wireColors[idx]
		}
	}

	return state, nil
}

// DecodeOrientation decodes an orientation message payload.
// Format: ASCII string "x#y#z#w" where # is the separator.
func DecodeOrientation(payload []byte) (*OrientationEvent, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 4 {
		return nil, fmt.Errorf("wire: orientation payload must have 4 parts, got %d", len(parts))
	}

	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, fmt.Errorf("wire: invalid x value: %w", err)
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, fmt.Errorf("wire: invalid y value: %w", err)
	}
	z, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return nil, fmt.Errorf("wire: invalid z value: %w", err)
	}
	w, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return nil, fmt.Errorf("wire: invalid w value: %w", err)
	}

	event := &OrientationEvent{X: x, Y: y, Z: z, W: w}
	event.Up, event.Front = quaternionToFaces(x, y, z, w)

	return event, nil
}

// quaternionToFaces converts a quaternion to discrete face
// orientations: which model face points up and which faces the solver.
//
// Reference orientation (identity quaternion): white up (+Y), green in
// front (+Z), red to the right (+X).
func quaternionToFaces(x, y, z, w float64) (up, front virtualcube.Color) {
	// Rotate the up vector (0, 1, 0) by the quaternion
	upX := 2 * (x*y - w*z)
	upY := 1 - 2*(x*x+z*z)
	upZ := 2 * (y*z + w*x)

	// Rotate the front vector (0, 0, 1) by the quaternion
	frontX := 2 * (x*z + w*y)
	frontY := 2 * (y*z - w*x)
	frontZ := 1 - 2*(x*x+y*y)

	return vectorToFace(upX, upY, upZ), vectorToFace(frontX, frontY, frontZ)
}

// vectorToFace maps a vector to the model face on its dominant axis.
func vectorToFace(x, y, z float64) virtualcube.Color {
	absX := math.Abs(x)
	absY := math.Abs(y)
	absZ := math.Abs(z)

	if absY >= absX && absY >= absZ {
		if y > 0 {
			return virtualcube.White
		}
		return virtualcube.Yellow
	}
	if absZ >= absX && absZ >= absY {
		if z > 0 {
			return virtualcube.Green
		}
		return virtualcube.Blue
	}
	if x > 0 {
		return virtualcube.Red
	}
	return virtualcube.Orange
}
