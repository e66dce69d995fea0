package source

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Pedreb/cronogramadefolgas/schedule"
)

// CSVProvider reads the schedule from a local CSV file. Both comma and
// semicolon delimiters are accepted; exports from Brazilian-locale
// spreadsheet tools use semicolons.
type CSVProvider struct {
	Path string
}

func NewCSVProvider(path string) *CSVProvider {
	return &CSVProvider{Path: path}
}

func (p *CSVProvider) Fetch(ctx context.Context) (schedule.Dataset, error) {
	f, err := os.Open(p.Path)
	if err != nil {
		return schedule.Dataset{}, fmt.Errorf("open schedule file: %w", err)
	}
	defer f.Close()

	ds, err := parseCSV(f)
	if err != nil {
		return schedule.Dataset{}, fmt.Errorf("parse %s: %w", p.Path, err)
	}
	return ds, nil
}

// parseCSV reads a header row plus data rows. Ragged rows are tolerated;
// the normalizer treats missing cells as absent values.
func parseCSV(r io.Reader) (schedule.Dataset, error) {
	br := bufio.NewReader(r)

	reader := csv.NewReader(br)
	reader.Comma = sniffDelimiter(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return schedule.Dataset{}, err
	}
	if len(rows) == 0 {
		return schedule.Dataset{}, nil
	}

	return schedule.Dataset{Columns: rows[0], Rows: rows[1:]}, nil
}

// sniffDelimiter peeks at the header line and picks semicolon when it
// outnumbers commas.
func sniffDelimiter(br *bufio.Reader) rune {
	peek, _ := br.Peek(4096)
	line := string(peek)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}
