// Package wire implements the BLE message framing and payload decoding
// for the smart cube that the mirror feature listens to.
package wire

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// BLE service and characteristic UUIDs exposed by the cube.
const (
	ServiceUUID = "6e400001-b5a3-f393-e0a9-e50e24dcca9e"
	TxCharUUID  = "6e400003-b5a3-f393-e0a9-e50e24dcca9e" // Notify
	RxCharUUID  = "6e400002-b5a3-f393-e0a9-e50e24dcca9e" // Write
)

// Message type constants. Offline stats frames are recognized but not
// decoded; the cube sends them when it reconnects after offline use.
const (
	MsgTypeRotation     byte = 0x01
	MsgTypeState        byte = 0x02
	MsgTypeOrientation  byte = 0x03
	MsgTypeBattery      byte = 0x05
	MsgTypeOfflineStats byte = 0x07
	MsgTypeCubeType     byte = 0x08
)

// Command codes written to the RX characteristic.
const (
	CmdRequestBattery     byte = 0x32
	CmdRequestState       byte = 0x33
	CmdReboot             byte = 0x34
	CmdResetSolved        byte = 0x35
	CmdDisableOrientation byte = 0x37
	CmdEnableOrientation  byte = 0x38
	CmdFlashBacklight     byte = 0x41
	CmdToggleBacklight    byte = 0x44
	CmdRequestCubeType    byte = 0x56
)

// Message frame constants.
const (
	FramePrefix  byte = 0x2A // '*'
	FrameSuffix1 byte = 0x0D // CR
	FrameSuffix2 byte = 0x0A // LF
)

// Sentinel errors for the wire package.
var (
	ErrInvalidPrefix   = errors.New("wire: invalid message prefix")
	ErrInvalidSuffix   = errors.New("wire: invalid message suffix")
	ErrInvalidChecksum = errors.New("wire: invalid checksum")
	ErrMessageTooShort = errors.New("wire: message too short")
	ErrInvalidLength   = errors.New("wire: invalid message length")
)

// Message is a parsed BLE notification.
type Message struct {
	Type      byte   // Message type identifier
	Payload   []byte // Decoded payload (without frame overhead)
	RawBase64 string // Base64 encoded raw bytes for logging
}

// ParseFrame parses a raw BLE notification into a Message.
//
// Frame format: [0x2A] [length] [type] [payload...] [checksum] [0x0D 0x0A]
// The length byte counts everything after itself: type, payload,
// checksum and the two suffix bytes. The checksum is the mod-256 sum of
// all bytes from the prefix through the payload.
func ParseFrame(data []byte) (*Message, error) {
	if len(data) < 6 {
		return nil, ErrMessageTooShort
	}

	if data[0] != FramePrefix {
		return nil, ErrInvalidPrefix
	}

	length := int(data[1])
	expectedLen := 2 + length
	if len(data) < expectedLen {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidLength, expectedLen, len(data))
	}

	// Checksum sits right before the two suffix bytes.
	checksumIdx := expectedLen - 3
	if checksumIdx < 3 {
		return nil, ErrMessageTooShort
	}

	if data[checksumIdx+1] != FrameSuffix1 || data[checksumIdx+2] != FrameSuffix2 {
		return nil, ErrInvalidSuffix
	}

	var checksum byte
	for i := 0; i < checksumIdx; i++ {
		checksum += data[i]
	}
	if checksum != data[checksumIdx] {
		return nil, fmt.Errorf("%w: expected 0x%02X, got 0x%02X", ErrInvalidChecksum, data[checksumIdx], checksum)
	}

	return &Message{
		Type:      data[2],
		Payload:   data[3:checksumIdx],
		RawBase64: base64.StdEncoding.EncodeToString(data[:expectedLen]),
	}, nil
}

// BuildCommand creates a payload-free command frame to send to the
// cube. The result parses back through ParseFrame.
func BuildCommand(cmdCode byte) []byte {
	// type + checksum + suffix = 4 bytes after the length byte
	length := byte(0x04)
	checksum := FramePrefix + length + cmdCode

	return []byte{FramePrefix, length, cmdCode, checksum, FrameSuffix1, FrameSuffix2}
}

// MessageTypeName returns a human-readable name for the message type.
func MessageTypeName(msgType byte) string {
	switch msgType {
	case MsgTypeRotation:
		return "rotation"
	case MsgTypeState:
		return "state"
	case MsgTypeOrientation:
		return "orientation"
	case MsgTypeBattery:
		return "battery"
	case MsgTypeOfflineStats:
		return "offline_stats"
	case MsgTypeCubeType:
		return "cube_type"
	default:
		return fmt.Sprintf("unknown_0x%02X", msgType)
	}
}
