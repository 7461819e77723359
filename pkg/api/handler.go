package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"reviewers/pkg/config"
	"reviewers/pkg/developer"
	"reviewers/pkg/sheets"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	statusOK        = "ok"
	statusException = "exception"
	statusError     = "error"
)

// RunAllocation loads the roster from the configured sheet, allocates
// reviewers and writes a new dated column back. A roster or allocation
// failure is written to the sheet as an exception column instead and is
// not returned; failures to reach the sheet are.
func RunAllocation(ctx context.Context, cfg *config.Config, auth sheets.Authorizer, alloc Allocator) (RunResult, error) {
	result := RunResult{RunID: uuid.NewString(), Status: statusOK}
	logger := log.WithFields(log.Fields{
		"run_id": result.RunID,
		"sheet":  cfg.SheetName,
	})
	logger.Info("Starting reviewer allocation")

	err := sheets.GetRemoteSheet(ctx, cfg, auth, func(ws sheets.Worksheet) error {
		records, err := ws.GetAllRecords(ctx)
		if err != nil {
			return err
		}

		devs, err := allocate(records, cfg.Settings.DefaultReviewerNumber, alloc)
		if err != nil {
			logger.Warnf("Allocation failed, recording exception: %v", err)
			result.Status = statusException
			result.Exception = err.Error()
			return writeExceptionToSheet(ctx, ws, err.Error(), cfg.Settings.InsertColumn)
		}
		result.Developers = len(devs)
		logger.WithField("developers", len(devs)).Info("Allocated reviewers")
		return writeReviewersToSheet(ctx, ws, devs, cfg.Settings.InsertColumn)
	})
	if err != nil {
		result.Status = statusError
		result.Error = err.Error()
		logger.Errorf("Reviewer allocation failed: %v", err)
		return result, err
	}
	return result, nil
}

func allocate(records []sheets.Record, defaultReviewerNumber int, alloc Allocator) ([]*developer.Developer, error) {
	devs, err := developer.LoadDevelopers(records, defaultReviewerNumber)
	if err != nil {
		return nil, err
	}
	if err := alloc.Allocate(devs); err != nil {
		return nil, err
	}
	return devs, nil
}

// writeReviewersToSheet inserts today's reviewers column. Cells follow the
// order of devs, which must be the order the rows were read in.
func writeReviewersToSheet(ctx context.Context, ws sheets.Worksheet, devs []*developer.Developer, col int) error {
	for _, d := range devs {
		log.Debugf("%s: %s", d.Name, d.ReviewerNames)
	}
	return ws.InsertCols(ctx, reviewersColumn(devs).ToColumns(), col)
}

func writeExceptionToSheet(ctx context.Context, ws sheets.Worksheet, message string, col int) error {
	return ws.InsertCols(ctx, exceptionColumn(message).ToColumns(), col)
}

type handler struct {
	// One run at a time against the sheet.
	mu    sync.Mutex
	cfg   *config.Config
	auth  sheets.Authorizer
	alloc Allocator
}

func (h *handler) getIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("reviewer allocator is running\n"))
}

func (h *handler) postAllocate(w http.ResponseWriter, r *http.Request) {
	result, err := h.run(r.Context())
	status := http.StatusOK
	if err != nil {
		status = http.StatusBadGateway
	}
	body, merr := json.Marshal(result)
	if merr != nil {
		log.Errorf("Failed to encode run result: %v", merr)
		status = http.StatusInternalServerError
		body = []byte(`{"status":"error"}`)
	}
	sendResponse(w, status, body)
}

// run holds the lock for the whole run, including when it panics.
func (h *handler) run(ctx context.Context) (RunResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return RunAllocation(ctx, h.cfg, h.auth, h.alloc)
}

func sendResponse(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
