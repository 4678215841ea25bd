package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LogEventType identifies the type of logged event
type LogEventType string

const (
	LogEventMove     LogEventType = "move"
	LogEventKeyPress LogEventType = "key_press"
)

// LogEvent represents a single logged event
type LogEvent struct {
	Timestamp time.Time    `json:"timestamp"`
	EventType LogEventType `json:"event_type"`
	KeyPress  string       `json:"key_press,omitempty"`
	Notation  string       `json:"notation,omitempty"`
}

// EventLog represents a complete mirror session log
type EventLog struct {
	Version    string     `json:"version"`
	CreatedAt  time.Time  `json:"created_at"`
	DeviceName string     `json:"device_name,omitempty"`
	SessionID  string     `json:"session_id,omitempty"`
	Events     []LogEvent `json:"events"`
}

// EventLogger writes mirror events to a JSONL file as they happen
type EventLogger struct {
	log     *EventLog
	file    *os.File
	enabled bool
}

// NewEventLogger creates a new logger
func NewEventLogger() *EventLogger {
	return &EventLogger{
		enabled: false,
	}
}

// Start begins logging to a file
func (l *EventLogger) Start(logDir string) error {
	// Create log directory if needed
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	// Create log file with timestamp
	filename := fmt.Sprintf("mirror_%s.jsonl", time.Now().Format("20060102_150405"))
	path := filepath.Join(logDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	l.file = file
	l.enabled = true
	l.log = &EventLog{
		Version:   "1.0",
		CreatedAt: time.Now(),
		Events:    make([]LogEvent, 0),
	}

	// Write header
	header := map[string]interface{}{
		"version":    "1.0",
		"created_at": l.log.CreatedAt,
		"type":       "header",
	}
	return l.writeJSON(header)
}

// SetDeviceInfo sets device information
func (l *EventLogger) SetDeviceInfo(name, sessionID string) {
	if l.log != nil {
		l.log.DeviceName = name
		l.log.SessionID = sessionID
	}
}

// LogMove logs an applied move by notation
func (l *EventLogger) LogMove(notation string) {
	if !l.enabled || l.file == nil {
		return
	}

	event := LogEvent{
		Timestamp: time.Now(),
		EventType: LogEventMove,
		Notation:  notation,
	}

	l.log.Events = append(l.log.Events, event)
	l.writeJSON(event)
}

// LogKeyPress logs a key press
func (l *EventLogger) LogKeyPress(key string) {
	if !l.enabled || l.file == nil {
		return
	}

	event := LogEvent{
		Timestamp: time.Now(),
		EventType: LogEventKeyPress,
		KeyPress:  key,
	}

	l.log.Events = append(l.log.Events, event)
	l.writeJSON(event)
}

func (l *EventLogger) writeJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = l.file.Write(append(data, '\n'))
	return err
}

// Close closes the log file
func (l *EventLogger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// FilePath returns the current log file path
func (l *EventLogger) FilePath() string {
	if l.file != nil {
		return l.file.Name()
	}
	return ""
}

// DefaultLogDir returns the directory mirror logs are written to.
func DefaultLogDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".virtualcube", "logs")
}

// LoadEventLog loads an event log from a JSONL file
func LoadEventLog(path string) (*EventLog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	log := &EventLog{
		Events: make([]LogEvent, 0),
	}

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		// First line is the header
		if lineNum == 1 {
			var header map[string]interface{}
			if err := json.Unmarshal(line, &header); err != nil {
				return nil, fmt.Errorf("failed to parse header: %w", err)
			}
			if v, ok := header["version"].(string); ok {
				log.Version = v
			}
			if v, ok := header["created_at"].(string); ok {
				if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
					log.CreatedAt = t
				}
			}
			continue
		}

		// Parse event
		var event LogEvent
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("failed to parse event at line %d: %w", lineNum, err)
		}
		log.Events = append(log.Events, event)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}

	return log, nil
}

// MovesFromLog extracts the logged move notations in order.
func MovesFromLog(log *EventLog) []string {
	var notations []string
	for _, event := range log.Events {
		if event.EventType == LogEventMove {
			notations = append(notations, event.Notation)
		}
	}
	return notations
}
