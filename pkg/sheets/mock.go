package sheets

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAuthorizer and friends stand in for the Google client in tests of
// this and other packages.
type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) Authorize(ctx context.Context, credentialFile string, scopes []string) (Client, error) {
	args := m.Called(ctx, credentialFile, scopes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(Client), args.Error(1)
}

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Open(ctx context.Context, name string) (Spreadsheet, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(Spreadsheet), args.Error(1)
}

func (m *MockClient) Close() error {
	return m.Called().Error(0)
}

type MockSpreadsheet struct {
	Worksheet Worksheet
}

func (m *MockSpreadsheet) Sheet1() Worksheet {
	return m.Worksheet
}

type MockWorksheet struct {
	Records         []Record
	GetRecordsErr   error
	InsertErr       error
	InsertColsCalls []InsertColsCall
}

type InsertColsCall struct {
	Columns [][]interface{}
	Col     int
}

func (m *MockWorksheet) GetAllRecords(ctx context.Context) ([]Record, error) {
	return m.Records, m.GetRecordsErr
}

func (m *MockWorksheet) InsertCols(ctx context.Context, columns [][]interface{}, col int) error {
	m.InsertColsCalls = append(m.InsertColsCalls, InsertColsCall{Columns: columns, Col: col})
	return m.InsertErr
}
