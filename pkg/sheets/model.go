package sheets

import "context"

// DriveScope is the access scope requested for the service account.
var DriveScope = []string{
	"https://spreadsheets.google.com/feeds",
	"https://www.googleapis.com/auth/drive",
}

// Record is one data row of a worksheet keyed by header name.
type Record map[string]string

type Authorizer interface {
	Authorize(ctx context.Context, credentialFile string, scopes []string) (Client, error)
}

type Client interface {
	Open(ctx context.Context, name string) (Spreadsheet, error)
	Close() error
}

type Spreadsheet interface {
	Sheet1() Worksheet
}

type Worksheet interface {
	GetAllRecords(ctx context.Context) ([]Record, error)
	// InsertCols inserts the given columns before the 1-based column col.
	InsertCols(ctx context.Context, columns [][]interface{}, col int) error
}
