// Package drive stores résumés in a Google Drive folder and shares them by link.
package drive

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/jobboard/jobboard-go/internal/config"
)

var ErrNotConfigured = errors.New("google drive credentials are incomplete")

// Result identifies an uploaded file.
type Result struct {
	FileID      string
	WebViewLink string
}

// Uploader writes files into one Drive folder using a long-lived refresh token.
type Uploader struct {
	files    *drivev3.FilesService
	perms    *drivev3.PermissionsService
	folderID string
}

// NewUploader builds a Drive client authenticated with cfg's refresh token.
// Extra options are applied last and may replace the HTTP client or endpoint.
func NewUploader(ctx context.Context, cfg config.DriveConfig, opts ...option.ClientOption) (*Uploader, error) {
	if !cfg.Complete() {
		return nil, ErrNotConfigured
	}

	oc := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{drivev3.DriveFileScope},
	}
	client := oauth2.NewClient(ctx, oc.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken}))

	svc, err := drivev3.NewService(ctx, append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	return &Uploader{
		files:    svc.Files,
		perms:    svc.Permissions,
		folderID: cfg.FolderID,
	}, nil
}

// Upload creates the file, grants read access to anyone with the link and
// returns the file's view link. Nothing is retried.
func (u *Uploader) Upload(ctx context.Context, data []byte, name, mimeType string) (*Result, error) {
	meta := &drivev3.File{
		Name:    name,
		Parents: []string{u.folderID},
	}

	created, err := u.files.Create(meta).
		Media(bytes.NewReader(data), googleapi.ContentType(mimeType)).
		Fields("id", "webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrap("create file", err)
	}

	perm := &drivev3.Permission{Role: "reader", Type: "anyone"}
	if _, err := u.perms.Create(created.Id, perm).Context(ctx).Do(); err != nil {
		return nil, wrap("share file", err)
	}

	f, err := u.files.Get(created.Id).Fields("webViewLink").Context(ctx).Do()
	if err != nil {
		return nil, wrap("read view link", err)
	}

	return &Result{FileID: created.Id, WebViewLink: f.WebViewLink}, nil
}

func wrap(step string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return fmt.Errorf("drive %s: status %d: %w", step, gerr.Code, err)
	}
	return fmt.Errorf("drive %s: %w", step, err)
}
