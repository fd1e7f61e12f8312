// Package csvfile reads and writes waypoint tables as delimited text.
//
// Column names are normalised on read so older file vintages and the lane
// format load as ordinary waypoint tables; the names found in the file are
// remembered and written back on save.
package csvfile

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/philipparndt/gowaypoint/pkg/trajectory"
)

// ErrEmptyFile is returned when a file has no header line
var ErrEmptyFile = errors.New("file has no header")

var aliases = map[string]string{
	"llatitude":       trajectory.ColLatitude,
	"utm_zone_number": trajectory.ColZone,
	"latitude_utm":    trajectory.ColEasting,
	"llatitude_utm":   trajectory.ColEasting,
	"longitude_utm":   trajectory.ColNorthing,
}

// NormaliseColumn maps a source column name onto the recognised name
func NormaliseColumn(name string) string {
	name = strings.TrimSpace(name)
	if canonical, ok := aliases[strings.ToLower(name)]; ok {
		return canonical
	}
	return name
}

// Document is a table read from disk together with how it was stored
type Document struct {
	Table     trajectory.Table
	Comma     rune
	source    map[string]string // normalised -> name in file
	hasSource bool
}

// ReadFile reads a delimited waypoint file
func ReadFile(filename string) (*Document, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	doc, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return doc, nil
}

// Read parses delimited waypoint records. The delimiter is detected from the
// header line (comma, tab or semicolon).
func Read(r io.Reader) (*Document, error) {
	br := bufio.NewReader(r)
	first, err := br.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	first = bytes.TrimPrefix(first, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(first)) == 0 {
		return nil, ErrEmptyFile
	}
	comma := detectComma(first)

	// Drop a UTF-8 byte order mark left by spreadsheet exports
	if bom, _ := br.Peek(3); bytes.Equal(bom, []byte("\xef\xbb\xbf")) {
		if _, err := br.Discard(3); err != nil {
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
	}

	cr := csv.NewReader(br)
	cr.Comma = comma
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	doc := &Document{
		Comma:     comma,
		source:    make(map[string]string, len(header)),
		hasSource: true,
	}
	doc.Table.Columns = make([]string, len(header))
	for i, h := range header {
		name := NormaliseColumn(h)
		doc.Table.Columns[i] = name
		if _, seen := doc.source[name]; !seen {
			doc.source[name] = strings.TrimSpace(h)
		}
	}

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading records: %w", err)
		}
		doc.Table.Rows = append(doc.Table.Rows, record)
	}

	return doc, nil
}

func detectComma(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestCount := ',', bytes.Count(line, []byte{','})
	for _, c := range []rune{'\t', ';'} {
		if n := bytes.Count(line, []byte(string(c))); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}

// Header returns the column names to write for a table. Columns that were
// read from this document get their original spelling back.
func (d *Document) Header(columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c
		if d != nil && d.hasSource {
			if name, ok := d.source[c]; ok {
				out[i] = name
			}
		}
	}
	return out
}

// Write emits a table, restoring source column names when doc is not nil
func Write(w io.Writer, tbl trajectory.Table, doc *Document) error {
	cw := csv.NewWriter(w)
	if doc != nil && doc.Comma != 0 {
		cw.Comma = doc.Comma
	}

	if err := cw.Write(doc.Header(tbl.Columns)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range tbl.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes a table to disk, replacing any existing file
func WriteFile(filename string, tbl trajectory.Table, doc *Document) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := Write(file, tbl, doc); err != nil {
		file.Close()
		return fmt.Errorf("%s: %w", filename, err)
	}
	return file.Close()
}

// Load reads a file and builds a trajectory from it
func Load(filename string) (*trajectory.Trajectory, *Document, error) {
	doc, err := ReadFile(filename)
	if err != nil {
		return nil, nil, err
	}
	traj, err := trajectory.Load(doc.Table)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", filename, err)
	}
	return traj, doc, nil
}
