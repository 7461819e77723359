package sheets

import (
	"context"
	"errors"
	"testing"

	"reviewers/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testConfig = &config.Config{CredentialFile: "credential_file.json", SheetName: "S"}

func TestGetRemoteSheet(t *testing.T) {
	ctx := context.Background()
	worksheet := &MockWorksheet{}
	client := new(MockClient)
	client.On("Open", ctx, "S").Return(&MockSpreadsheet{Worksheet: worksheet}, nil).Once()
	client.On("Close").Return(nil).Once()
	auth := new(MockAuthorizer)
	auth.On("Authorize", ctx, "credential_file.json", DriveScope).Return(client, nil).Once()

	err := GetRemoteSheet(ctx, testConfig, auth, func(ws Worksheet) error {
		assert.Same(t, worksheet, ws)
		client.AssertNotCalled(t, "Close")
		return nil
	})
	require.NoError(t, err)

	auth.AssertExpectations(t)
	client.AssertExpectations(t)
	client.AssertNumberOfCalls(t, "Close", 1)
}

func TestGetRemoteSheetClosesOnError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	t.Run("callback error", func(t *testing.T) {
		client := new(MockClient)
		client.On("Open", ctx, "S").Return(&MockSpreadsheet{Worksheet: &MockWorksheet{}}, nil)
		client.On("Close").Return(nil)
		auth := new(MockAuthorizer)
		auth.On("Authorize", ctx, mock.Anything, mock.Anything).Return(client, nil)

		err := GetRemoteSheet(ctx, testConfig, auth, func(Worksheet) error { return boom })
		assert.ErrorIs(t, err, boom)
		client.AssertNumberOfCalls(t, "Close", 1)
	})

	t.Run("open error", func(t *testing.T) {
		client := new(MockClient)
		client.On("Open", ctx, "S").Return(nil, ErrSpreadsheetNotFound)
		client.On("Close").Return(nil)
		auth := new(MockAuthorizer)
		auth.On("Authorize", ctx, mock.Anything, mock.Anything).Return(client, nil)

		called := false
		err := GetRemoteSheet(ctx, testConfig, auth, func(Worksheet) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, ErrSpreadsheetNotFound)
		assert.False(t, called)
		client.AssertNumberOfCalls(t, "Close", 1)
	})

	t.Run("panic", func(t *testing.T) {
		client := new(MockClient)
		client.On("Open", ctx, "S").Return(&MockSpreadsheet{Worksheet: &MockWorksheet{}}, nil)
		client.On("Close").Return(nil)
		auth := new(MockAuthorizer)
		auth.On("Authorize", ctx, mock.Anything, mock.Anything).Return(client, nil)

		assert.Panics(t, func() {
			_ = GetRemoteSheet(ctx, testConfig, auth, func(Worksheet) error { panic("boom") })
		})
		client.AssertNumberOfCalls(t, "Close", 1)
	})

	t.Run("close error", func(t *testing.T) {
		client := new(MockClient)
		client.On("Open", ctx, "S").Return(&MockSpreadsheet{Worksheet: &MockWorksheet{}}, nil)
		client.On("Close").Return(boom)
		auth := new(MockAuthorizer)
		auth.On("Authorize", ctx, mock.Anything, mock.Anything).Return(client, nil)

		err := GetRemoteSheet(ctx, testConfig, auth, func(Worksheet) error { return nil })
		assert.ErrorIs(t, err, boom)
	})
}

func TestGetRemoteSheetAuthorizeError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("bad credentials")
	auth := new(MockAuthorizer)
	auth.On("Authorize", ctx, "credential_file.json", DriveScope).Return(nil, boom)

	err := GetRemoteSheet(ctx, testConfig, auth, func(Worksheet) error {
		t.Fatal("callback must not run")
		return nil
	})
	assert.ErrorIs(t, err, boom)
}
