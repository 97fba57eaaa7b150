package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/PolarWolf314/envcipher/internal/configs"
	"github.com/PolarWolf314/envcipher/internal/utils"
)

// TimestampFormat is the layout of Entry.Timestamp.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts" yaml:"ts"`                         // RFC3339 with microseconds.
	ID        string `json:"id" yaml:"id"`                         // Unique entry ID.
	User      string `json:"user,omitempty" yaml:"user,omitempty"` // OS user performing the action.
	Host      string `json:"host,omitempty" yaml:"host,omitempty"` // Machine the action ran on.
	Operation string `json:"op" yaml:"op"`                         // Operation name.

	// Optional fields depending on operation.
	KeyID     string `json:"key_id,omitempty" yaml:"key_id,omitempty"`       // Project key ID.
	File      string `json:"file,omitempty" yaml:"file,omitempty"`           // .env path.
	Layers    int    `json:"layers,omitempty" yaml:"layers,omitempty"`       // For unlock/edit.
	Preserved int    `json:"preserved,omitempty" yaml:"preserved,omitempty"` // For unlock: lines kept verbatim.
	Exhausted bool   `json:"exhausted,omitempty" yaml:"exhausted,omitempty"` // For unlock: iteration cap reached.
	Reused    bool   `json:"reused,omitempty" yaml:"reused,omitempty"`       // For init: existing key reused.
}

// NewEntry returns an entry for op with the ID and user fields populated.
func NewEntry(op string) Entry {
	entry := Entry{
		ID:        uuid.NewString(),
		Operation: op,
	}

	if username, err := utils.GetUsername(); err == nil {
		entry.User = username
	}
	if hostname, err := utils.GetHostname(); err == nil {
		entry.Host = hostname
	}

	return entry
}

// Log appends an entry to the audit log.
// If logging fails, the error is dropped. Operations should not fail just
// because audit logging failed.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the audit log file.
func LogPath() string {
	if configs.UserSettings == nil {
		return ""
	}
	return configs.UserSettings.AuditLogPath
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// LastEntry returns the most recent entry recorded for keyID, or nil.
func LastEntry(keyID string) (*Entry, error) {
	entries, err := ReadEntries()
	if err != nil {
		return nil, err
	}

	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].KeyID == keyID {
			return &entries[i], nil
		}
	}
	return nil, nil
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// Time parses the entry timestamp.
func (e Entry) Time() (time.Time, error) {
	return time.Parse(TimestampFormat, e.Timestamp)
}
