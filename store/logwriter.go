package store

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// SqlWriter sinks zerolog events into the log_entries table so they can be
// served back through the admin logs endpoint. It writes through the raw
// database handle; going through gorm here would log the log insert itself.
type SqlWriter struct {
	db *sql.DB
}

var _ io.Writer = (*SqlWriter)(nil)

func NewSqlWriter(db *sql.DB) *SqlWriter {
	return &SqlWriter{db: db}
}

func (l *SqlWriter) Write(p []byte) (n int, err error) {
	var evt map[string]interface{}
	d := json.NewDecoder(bytes.NewReader(p))
	d.UseNumber()
	if err = d.Decode(&evt); err != nil {
		return 0, fmt.Errorf("cannot decode event: %s", err)
	}

	level, _ := evt[zerolog.LevelFieldName].(string)
	message, _ := evt[zerolog.MessageFieldName].(string)
	caller, _ := evt[zerolog.CallerFieldName].(string)

	var timestamp int64
	if ts, ok := evt[zerolog.TimestampFieldName].(json.Number); ok {
		timestamp, _ = ts.Int64()
	}

	// Remove standard fields to store remaining as JSON
	delete(evt, zerolog.LevelFieldName)
	delete(evt, zerolog.TimestampFieldName)
	delete(evt, zerolog.MessageFieldName)
	delete(evt, zerolog.CallerFieldName)

	var extraFields []byte
	if len(evt) > 0 {
		if extraFields, err = json.Marshal(evt); err != nil {
			fmt.Fprintln(os.Stderr, "Error marshaling extra fields:", err)
		}
	}

	query := `INSERT INTO log_entries (level, timestamp, caller, message, fields) VALUES (?, ?, ?, ?, ?)`
	if _, err = l.db.Exec(query, level, timestamp, caller, message, extraFields); err != nil {
		fmt.Fprintln(os.Stderr, "Error inserting log into DB:", err)
	}

	return len(p), nil
}
