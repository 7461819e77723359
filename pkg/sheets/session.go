package sheets

import (
	"context"
	"fmt"

	"reviewers/pkg/config"

	log "github.com/sirupsen/logrus"
)

// GetRemoteSheet authorizes, opens the configured spreadsheet and hands its
// first worksheet to fn. The client is closed once on every way out.
func GetRemoteSheet(ctx context.Context, cfg *config.Config, auth Authorizer, fn func(Worksheet) error) (err error) {
	client, err := auth.Authorize(ctx, cfg.CredentialFile, DriveScope)
	if err != nil {
		return fmt.Errorf("authorize with %s: %w", cfg.CredentialFile, err)
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			log.Warnf("Failed to close sheets session: %v", cerr)
			if err == nil {
				err = fmt.Errorf("close sheets session: %w", cerr)
			}
		}
	}()

	spreadsheet, err := client.Open(ctx, cfg.SheetName)
	if err != nil {
		return fmt.Errorf("open spreadsheet %q: %w", cfg.SheetName, err)
	}
	log.WithField("sheet", cfg.SheetName).Debug("Opened spreadsheet")

	return fn(spreadsheet.Sheet1())
}
