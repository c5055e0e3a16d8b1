package exchange

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pdxmph/addressbook/internal/db"
)

// JSONL writes one JSON object per line
type JSONL struct{}

// Name returns the format identifier
func (JSONL) Name() string {
	return "jsonl"
}

// Encode writes each contact as a single JSON line
func (JSONL) Encode(w io.Writer, contacts []db.Contact) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, rec := range toRecords(contacts) {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encoding contact %d: %w", rec.ID, err)
		}
	}
	return bw.Flush()
}

// Decode reads one contact per line. Blank and malformed lines are skipped.
func (JSONL) Decode(r io.Reader) ([]db.Contact, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning jsonl: %w", err)
	}
	return toContacts(records), nil
}

func init() {
	MustRegister("jsonl", func() Format { return JSONL{} })
}
