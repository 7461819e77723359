package api

import (
	"time"

	"reviewers/pkg/developer"
)

// Dated columns use a fixed day-month-year header whatever the locale.
const dateLayout = "02-01-2006"

const exceptionPrefix = "Exception "

var nowFunc = time.Now

type Allocator interface {
	Allocate(devs []*developer.Developer) error
}

// DatedColumn is one snapshot column: a header cell and one cell per row.
type DatedColumn struct {
	Header string
	Cells  []string
}

func reviewersColumn(devs []*developer.Developer) DatedColumn {
	cells := make([]string, len(devs))
	for i, d := range devs {
		cells[i] = d.ReviewerNames.String()
	}
	return DatedColumn{
		Header: nowFunc().Format(dateLayout),
		Cells:  cells,
	}
}

func exceptionColumn(message string) DatedColumn {
	return DatedColumn{
		Header: exceptionPrefix + nowFunc().Format(dateLayout),
		Cells:  []string{message},
	}
}

// ToColumns renders the column in the list-of-columns shape the sheet
// insert takes.
func (c DatedColumn) ToColumns() [][]interface{} {
	col := make([]interface{}, 0, len(c.Cells)+1)
	col = append(col, c.Header)
	for _, cell := range c.Cells {
		col = append(col, cell)
	}
	return [][]interface{}{col}
}

// RunResult is reported back by the HTTP trigger.
type RunResult struct {
	RunID      string `json:"run_id"`
	Status     string `json:"status"`
	Developers int    `json:"developers"`
	Exception  string `json:"exception,omitempty"`
	Error      string `json:"error,omitempty"`
}
