package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// MalformedExportError indicates the uploaded file could not be parsed as a
// connections export. The whole import fails before anything is written.
type MalformedExportError struct {
	Message string
}

// Error implements the error interface.
func (e MalformedExportError) Error() string {
	return e.Message
}

// ParseExport extracts candidates from a LinkedIn connections export.
//
// Exports carry a free-text notes section of arbitrary length before the
// real data, so the parser scans for the first line starting with the
// leading header column and treats everything from there on as CSV. If no
// header line is found the whole content is parsed best-effort from the top.
// Rows without a usable name are dropped silently.
func ParseExport(content string) ([]Candidate, error) {
	lines := strings.Split(content, "\n")

	headerIndex := 0
	for i, line := range lines {
		if strings.HasPrefix(line, columnFirstName) {
			headerIndex = i
			break
		}
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(lines[headerIndex:], "\n")))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, MalformedExportError{Message: "export file is empty"}
		}
		return nil, MalformedExportError{Message: fmt.Sprintf("unreadable export header: %v", err)}
	}

	columns := make([]string, len(header))
	for i, col := range header {
		columns[i] = strings.TrimSpace(col)
	}

	var candidates []Candidate
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, MalformedExportError{Message: fmt.Sprintf("unreadable export row: %v", err)}
		}

		row := make(map[string]string, len(columns))
		for i, value := range record {
			if i < len(columns) {
				row[columns[i]] = value
			}
		}

		if candidate := FromExportRow(row); candidate != nil {
			candidates = append(candidates, *candidate)
		}
	}

	return candidates, nil
}
