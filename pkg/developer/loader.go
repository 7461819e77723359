package developer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"reviewers/pkg/sheets"

	log "github.com/sirupsen/logrus"
)

var (
	ErrMissingNameColumn     = errors.New("roster has no Developer column")
	ErrEmptyName             = errors.New("developer name is empty")
	ErrInvalidReviewerNumber = errors.New("invalid reviewer number")
)

// LoadDevelopers turns sheet records into developers, one per record and
// in the same order. Reviewer assignments start out empty. A row with a
// blank name is an error rather than skipped: the written column is
// aligned to rows by position, so every row needs a developer.
func LoadDevelopers(records []sheets.Record, defaultReviewerNumber int) ([]*Developer, error) {
	devs := make([]*Developer, 0, len(records))
	for i, rec := range records {
		// Row 1 is the header, records start on row 2.
		row := i + 2

		name, ok := get(rec, ColumnDeveloper)
		if !ok {
			return nil, ErrMissingNameColumn
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("row %d: %w", row, ErrEmptyName)
		}

		number := defaultReviewerNumber
		if raw, ok := get(rec, ColumnReviewerNumber); ok && strings.TrimSpace(raw) != "" {
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("row %d: %w: %q", row, ErrInvalidReviewerNumber, raw)
			}
			number = n
		}

		dev := New(name, number)
		if raw, ok := get(rec, ColumnPreferableReviewers); ok {
			dev.PreferableReviewerNames = ParseNameSet(raw)
			dev.PreferableReviewerNames.Remove(name)
		}
		devs = append(devs, dev)
	}
	log.Debugf("Loaded %d developers from sheet", len(devs))
	return devs, nil
}

func get(rec sheets.Record, c colName) (string, bool) {
	v, ok := rec[string(c)]
	return v, ok
}
