// wirelog writes a JSON-lines trace of realtime traffic for one room
// session: connects, drops, frame sizes, parse failures. It is a debug
// aid, off by default, and a session keeps working when it cannot be
// created.
package wirelog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Direction string    `json:"direction"`
	Type      string    `json:"type"`
	RoomID    string    `json:"room_id"`
	Size      int       `json:"size,omitempty"`
	Event     string    `json:"event,omitempty"`
	Error     string    `json:"error,omitempty"`
	Message   string    `json:"message,omitempty"`
}

type Logger struct {
	mu     sync.Mutex
	file   *os.File
	enc    *json.Encoder
	roomID string
}

func New(roomID string) (*Logger, error) {
	logDir, err := getLogDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get log directory: %w", err)
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile := filepath.Join(logDir, fmt.Sprintf("room-%s.log", roomID))

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &Logger{
		file:   file,
		enc:    json.NewEncoder(file),
		roomID: roomID,
	}, nil
}

func getLogDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	var logDir string
	switch runtime.GOOS {
	case "windows":
		logDir = filepath.Join(homeDir, "AppData", "Local", "voteroom", "logs")
	case "darwin":
		logDir = filepath.Join(homeDir, "Library", "Logs", "voteroom")
	default: // linux and others
		logDir = filepath.Join(homeDir, ".local", "share", "voteroom", "logs")
		if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
			logDir = filepath.Join(xdgData, "voteroom", "logs")
		}
	}

	return logDir, nil
}

func (l *Logger) Log(entry Entry) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry.Timestamp = time.Now()
	entry.RoomID = l.roomID
	l.enc.Encode(entry)
}

// LogFrame records one inbound or outbound frame.
func (l *Logger) LogFrame(direction, event string, size int) {
	l.Log(Entry{
		Direction: direction,
		Type:      "frame",
		Event:     event,
		Size:      size,
	})
}

func (l *Logger) LogError(direction string, err error) {
	l.Log(Entry{
		Direction: direction,
		Type:      "error",
		Error:     err.Error(),
	})
}

func (l *Logger) LogEvent(message string) {
	l.Log(Entry{
		Direction: "client",
		Type:      "event",
		Message:   message,
	})
}

func (l *Logger) Close() error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *Logger) Path() string {
	if l == nil || l.file == nil {
		return ""
	}
	return l.file.Name()
}
