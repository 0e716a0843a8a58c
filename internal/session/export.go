package session

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ExportJSON serializes the ordered event list verbatim.
func ExportJSON(events []Event) ([]byte, error) {
	return json.MarshalIndent(events, "", "  ")
}

// csvHeader is the flattened export schema.
var csvHeader = []string{"timestamp", "hand", "instrument", "gesture", "note"}

// ExportCSV flattens events into CSV. Field values that a spreadsheet
// would interpret as a formula (leading =, +, - or @) are prefixed
// with a quote to defuse formula injection.
func ExportCSV(events []Event) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, e := range events {
		record := []string{
			defuseCell(strconv.FormatFloat(e.Timestamp, 'f', -1, 64)),
			defuseCell(string(e.Hand)),
			defuseCell(e.Instrument),
			defuseCell(string(e.Gesture)),
			defuseCell(e.Note),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// defuseCell quote-prefixes values that would otherwise execute as
// spreadsheet formulas.
func defuseCell(value string) string {
	if strings.HasPrefix(value, "=") || strings.HasPrefix(value, "+") ||
		strings.HasPrefix(value, "-") || strings.HasPrefix(value, "@") {
		return "'" + value
	}
	return value
}
