package developer

import (
	"testing"

	"reviewers/pkg/sheets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sheetRecords = []sheets.Record{
	{"Developer": "A", "Reviewer Number": "1", "Preferable Reviewers": ""},
	{"Developer": "B", "Reviewer Number": "2", "Preferable Reviewers": "C, D"},
	{"Developer": "C", "Reviewer Number": "", "Preferable Reviewers": "A"},
	{"Developer": "D", "Reviewer Number": "1", "Preferable Reviewers": "D, E"},
	{"Developer": "E", "Reviewer Number": "2", "Preferable Reviewers": ""},
}

func TestLoadDevelopers(t *testing.T) {
	devs, err := LoadDevelopers(sheetRecords, 2)
	require.NoError(t, err)
	require.Len(t, devs, len(sheetRecords))

	want := []struct {
		name       string
		number     int
		preferable []string
	}{
		{"A", 1, []string{}},
		{"B", 2, []string{"C", "D"}},
		{"C", 2, []string{"A"}},
		{"D", 1, []string{"E"}},
		{"E", 2, []string{}},
	}
	for i, w := range want {
		assert.Equal(t, w.name, devs[i].Name)
		assert.Equal(t, w.number, devs[i].ReviewerNumber)
		assert.Equal(t, w.preferable, devs[i].PreferableReviewerNames.Sorted())
		assert.Zero(t, devs[i].ReviewerNames.Len())
		assert.Zero(t, devs[i].ReviewFor.Len())
	}
}

func TestLoadDevelopersEmpty(t *testing.T) {
	devs, err := LoadDevelopers(nil, 2)
	require.NoError(t, err)
	assert.Empty(t, devs)
}

func TestLoadDevelopersErrors(t *testing.T) {
	tests := []struct {
		name    string
		records []sheets.Record
		wantErr error
	}{
		{"missing name column", []sheets.Record{{"Name": "A"}}, ErrMissingNameColumn},
		{"blank name", []sheets.Record{{"Developer": "A"}, {"Developer": "  "}}, ErrEmptyName},
		{"non numeric", []sheets.Record{{"Developer": "A", "Reviewer Number": "two"}}, ErrInvalidReviewerNumber},
		{"negative", []sheets.Record{{"Developer": "A", "Reviewer Number": "-1"}}, ErrInvalidReviewerNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDevelopers(tt.records, 1)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNameSetString(t *testing.T) {
	tests := []struct {
		set  NameSet
		want string
	}{
		{NameSet{}, ""},
		{NewNameSet("C", "D"), "C, D"},
		{NewNameSet("C", "A"), "A, C"},
		{ParseNameSet(" B ,, A"), "A, B"},
	}
	for _, tt := range tests {
		if got := tt.set.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestLoadDevelopersBlankMiddleRow(t *testing.T) {
	records := []sheets.Record{
		{"Developer": "A"},
		{"Developer": ""},
		{"Developer": "C"},
	}
	_, err := LoadDevelopers(records, 1)
	require.ErrorIs(t, err, ErrEmptyName)
	assert.Contains(t, err.Error(), "row 3")
}
