package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

var (
	ErrSpreadsheetNotFound = errors.New("spreadsheet not found")
	ErrNoWorksheet         = errors.New("spreadsheet has no worksheets")
	ErrRateLimited         = errors.New("rate limited by Google API")
)

// GoogleAuthorizer authorizes a service account from its JSON key file.
// Endpoint overrides the Google API endpoint and is only set in tests.
type GoogleAuthorizer struct {
	Endpoint string
}

func (a GoogleAuthorizer) Authorize(ctx context.Context, credentialFile string, scopes []string) (Client, error) {
	b, err := os.ReadFile(credentialFile)
	if err != nil {
		return nil, err
	}
	conf, err := google.JWTConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credential file: %w", err)
	}
	client, err := NewGoogleClient(ctx, conf.Client(ctx), a.Endpoint)
	if err != nil {
		return nil, err
	}
	return client, nil
}

type GoogleClient struct {
	httpClient *http.Client
	sheets     *sheets.Service
	drive      *drive.Service
	closeOnce  sync.Once
}

func NewGoogleClient(ctx context.Context, httpClient *http.Client, endpoint string) (*GoogleClient, error) {
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create Sheets client: %w", err)
	}
	drv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create Drive client: %w", err)
	}
	return &GoogleClient{
		httpClient: httpClient,
		sheets:     srv,
		drive:      drv,
	}, nil
}

// Open looks the spreadsheet up by name and returns the first match.
func (c *GoogleClient) Open(ctx context.Context, name string) (Spreadsheet, error) {
	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		escapeQuery(name), spreadsheetMimeType)
	files, err := c.drive.Files.List().
		Q(query).
		Fields("files(id, name)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError("list spreadsheets", err)
	}
	if len(files.Files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSpreadsheetNotFound, name)
	}
	id := files.Files[0].Id

	ss, err := c.sheets.Spreadsheets.Get(id).
		Fields("spreadsheetId", "sheets.properties").
		Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError("get spreadsheet", err)
	}
	var first *sheets.SheetProperties
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Index == 0 {
			first = sh.Properties
			break
		}
	}
	if first == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoWorksheet, name)
	}
	return &GoogleSpreadsheet{
		sheet1: &GoogleWorksheet{
			service:       c.sheets,
			spreadsheetID: id,
			sheetID:       first.SheetId,
			title:         first.Title,
		},
	}, nil
}

// Close drops the idle connections of the session. Only the first call
// does anything.
func (c *GoogleClient) Close() error {
	c.closeOnce.Do(func() {
		c.httpClient.CloseIdleConnections()
		log.Debug("Closed sheets session")
	})
	return nil
}

type GoogleSpreadsheet struct {
	sheet1 *GoogleWorksheet
}

func (s *GoogleSpreadsheet) Sheet1() Worksheet {
	return s.sheet1
}

type GoogleWorksheet struct {
	service       *sheets.Service
	spreadsheetID string
	sheetID       int64
	title         string
}

// GetAllRecords reads the worksheet and keys every row after the first by
// the header row.
func (w *GoogleWorksheet) GetAllRecords(ctx context.Context) ([]Record, error) {
	resp, err := w.service.Spreadsheets.Values.Get(w.spreadsheetID, w.a1Range("")).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError("read worksheet", err)
	}
	return rowsToRecords(resp.Values), nil
}

func (w *GoogleWorksheet) InsertCols(ctx context.Context, columns [][]interface{}, col int) error {
	if len(columns) == 0 {
		return nil
	}
	insert := &sheets.Request{
		InsertDimension: &sheets.InsertDimensionRequest{
			Range: &sheets.DimensionRange{
				SheetId:    w.sheetID,
				Dimension:  "COLUMNS",
				StartIndex: int64(col - 1),
				EndIndex:   int64(col - 1 + len(columns)),
			},
			InheritFromBefore: false,
		},
	}
	fill := &sheets.Request{
		UpdateCells: &sheets.UpdateCellsRequest{
			Start: &sheets.GridCoordinate{
				SheetId:     w.sheetID,
				RowIndex:    0,
				ColumnIndex: int64(col - 1),
			},
			Rows:   columnsToRowData(columns),
			Fields: "userEnteredValue",
		},
	}

	// Both requests go in one batch so the sheet never keeps an empty column.
	_, err := w.service.Spreadsheets.BatchUpdate(w.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{insert, fill},
	}).Context(ctx).Do()
	if err != nil {
		return wrapAPIError("insert columns", err)
	}
	log.Debugf("Inserted %d column(s) at %s", len(columns), columnLetter(col))
	return nil
}

// columnsToRowData transposes column-major values into the row-major grid
// UpdateCells expects. Every value is written as a plain string.
func columnsToRowData(columns [][]interface{}) []*sheets.RowData {
	height := 0
	for _, c := range columns {
		if len(c) > height {
			height = len(c)
		}
	}
	rows := make([]*sheets.RowData, height)
	for i := range rows {
		cells := make([]*sheets.CellData, len(columns))
		for j, c := range columns {
			v := ""
			if i < len(c) {
				v = fmt.Sprint(c[i])
			}
			cells[j] = &sheets.CellData{
				UserEnteredValue: &sheets.ExtendedValue{StringValue: &v},
			}
		}
		rows[i] = &sheets.RowData{Values: cells}
	}
	return rows
}

func (w *GoogleWorksheet) a1Range(cells string) string {
	r := "'" + strings.ReplaceAll(w.title, "'", "''") + "'"
	if cells != "" {
		r += "!" + cells
	}
	return r
}

// escapeQuery quotes a value for a Drive search string literal.
func escapeQuery(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, "'", `\'`)
}

func rowsToRecords(rows [][]interface{}) []Record {
	if len(rows) == 0 {
		return nil
	}
	header := make([]string, len(rows[0]))
	for i, v := range rows[0] {
		header[i] = fmt.Sprint(v)
	}

	// The API already trims empty trailing rows, but a range can still end
	// with rows of blank strings.
	last := len(rows) - 1
	for last > 0 && rowIsBlank(rows[last]) {
		last--
	}

	records := make([]Record, 0, last)
	for _, row := range rows[1 : last+1] {
		rec := make(Record, len(header))
		for i, key := range header {
			if i < len(row) {
				rec[key] = fmt.Sprint(row[i])
			} else {
				rec[key] = ""
			}
		}
		records = append(records, rec)
	}
	return records
}

func rowIsBlank(row []interface{}) bool {
	for _, v := range row {
		if strings.TrimSpace(fmt.Sprint(v)) != "" {
			return false
		}
	}
	return true
}

// columnLetter converts a 1-based column index to its A1 letters.
func columnLetter(col int) string {
	var s string
	for col > 0 {
		col--
		s = string(rune('A'+col%26)) + s
		col /= 26
	}
	return s
}

func wrapAPIError(op string, err error) error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) && isRateLimit(gErr) {
		return fmt.Errorf("%s: %w: %v", op, ErrRateLimited, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isRateLimit(gErr *googleapi.Error) bool {
	if gErr.Code == http.StatusTooManyRequests {
		return true
	}
	if gErr.Code != http.StatusForbidden {
		return false
	}
	for _, item := range gErr.Errors {
		if item.Reason == "rateLimitExceeded" || item.Reason == "userRateLimitExceeded" {
			return true
		}
	}
	return false
}
