package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/heartmarshall/dante-lexicon/internal/domain"
)

// Column counts accepted by Parse: en;la;defn;fr;es;it with an optional leading id.
const (
	columnsPlain  = 6
	columnsWithID = 7
)

// Row is one validated input line.
type Row struct {
	Line  int
	ID    int64 // 0 when the line carries no id
	Entry domain.LexiconEntry
}

// Parse reads delimited lexicon rows. Blank lines, lines starting with '#'
// and a leading header row ("id" or "en" in the first column) are skipped.
// All row problems are collected into a single *domain.ValidationError.
func Parse(r io.Reader, comma rune) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.Comment = '#'
	reader.FieldsPerRecord = -1 // checked per row below
	reader.LazyQuotes = true

	var (
		rows    []Row
		errs    []domain.FieldError
		seen    = make(map[string]int)
		isFirst = true
	)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if isFirst {
			isFirst = false
			if isHeader(record) {
				continue
			}
		}

		row, fieldErr := parseRecord(line, record)
		if fieldErr != nil {
			errs = append(errs, *fieldErr)
			continue
		}
		if prev, dup := seen[row.Entry.Headword]; dup {
			errs = append(errs, domain.FieldError{
				Field:   lineField(line),
				Message: fmt.Sprintf("duplicate headword %q (first on line %d)", row.Entry.Headword, prev),
			})
			continue
		}
		seen[row.Entry.Headword] = line
		rows = append(rows, row)
	}

	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}
	return rows, nil
}

func parseRecord(line int, record []string) (Row, *domain.FieldError) {
	fail := func(format string, args ...any) (Row, *domain.FieldError) {
		return Row{}, &domain.FieldError{Field: lineField(line), Message: fmt.Sprintf(format, args...)}
	}

	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	row := Row{Line: line}
	switch len(record) {
	case columnsPlain:
	case columnsWithID:
		id, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil || id <= 0 {
			return fail("invalid id %q", record[0])
		}
		row.ID = id
		record = record[1:]
	default:
		return fail("expected %d or %d columns, got %d", columnsPlain, columnsWithID, len(record))
	}

	row.Entry = domain.LexiconEntry{
		Headword:   domain.NormalizeText(record[0]),
		Root:       record[1],
		Definition: record[2],
		French:     record[3],
		Spanish:    record[4],
		Italian:    record[5],
	}

	if _, ok := domain.HeadwordLetter(row.Entry.Headword); !ok {
		return fail("headword %q must start with a letter a-z", record[0])
	}
	if row.Entry.Root == "" {
		return fail("latin root is empty for %q", row.Entry.Headword)
	}
	return row, nil
}

func isHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(record[0]))
	return first == "id" || first == "en"
}

func lineField(line int) string {
	return "line " + strconv.Itoa(line)
}
