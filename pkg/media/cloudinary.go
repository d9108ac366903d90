package media

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/jobhive/jobhive-backend/pkg/config"
)

// Asset is a stored media object addressable both by URL and by the
// provider public id used for later deletion.
type Asset struct {
	URL      string `json:"secure_url"`
	PublicID string `json:"public_id"`
}

// Store wraps the Cloudinary client behind the operations the platform needs.
type Store struct {
	cld        *cloudinary.Cloudinary
	rootFolder string
}

// Uploader is the surface services depend on, kept narrow so tests can stub it.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, folder string) (Asset, error)
	Replace(ctx context.Context, r io.Reader, publicID string) (Asset, error)
	Destroy(ctx context.Context, publicID string) error
	DeleteFolder(ctx context.Context, folder string) error
}

// New builds a Store from credentials.
func New(cfg config.CloudinaryConfig) (*Store, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("initializing cloudinary: %w", err)
	}
	return &Store{cld: cld, rootFolder: cfg.RootFolder}, nil
}

// Upload stores the stream under folder and returns the created asset.
func (s *Store) Upload(ctx context.Context, r io.Reader, folder string) (Asset, error) {
	res, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "auto",
	})
	if err != nil {
		return Asset{}, fmt.Errorf("uploading to cloudinary: %w", err)
	}
	return Asset{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

// Replace overwrites an existing asset in place, keeping its public id.
func (s *Store) Replace(ctx context.Context, r io.Reader, publicID string) (Asset, error) {
	res, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     publicID,
		Overwrite:    api.Bool(true),
		ResourceType: "auto",
	})
	if err != nil {
		return Asset{}, fmt.Errorf("replacing cloudinary asset %s: %w", publicID, err)
	}
	return Asset{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

// Destroy removes a single asset by public id.
func (s *Store) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("destroying cloudinary asset %s: %w", publicID, err)
	}
	return nil
}

// DeleteFolder removes every asset under folder and then the folder itself.
// Cloudinary refuses to drop non-empty folders, so the prefix purge runs first.
func (s *Store) DeleteFolder(ctx context.Context, folder string) error {
	if folder == "" {
		return nil
	}
	if _, err := s.cld.Admin.DeleteAssetsByPrefix(ctx, admin.DeleteAssetsByPrefixParams{
		Prefix: api.CldAPIArray{folder},
	}); err != nil {
		return fmt.Errorf("purging cloudinary prefix %s: %w", folder, err)
	}
	if _, err := s.cld.Admin.DeleteFolder(ctx, admin.DeleteFolderParams{Folder: folder}); err != nil {
		return fmt.Errorf("deleting cloudinary folder %s: %w", folder, err)
	}
	return nil
}

// UserFolder returns the per-user media folder.
func (s *Store) UserFolder(userID string) string {
	return UserFolder(s.rootFolder, userID)
}

// CompanyFolder returns the per-company media folder.
func (s *Store) CompanyFolder(companyID string) string {
	return CompanyFolder(s.rootFolder, companyID)
}

// UserFolder builds the per-user media folder under root.
func UserFolder(root, userID string) string {
	return path.Join(root, "users", userID)
}

// CompanyFolder builds the per-company media folder under root.
func CompanyFolder(root, companyID string) string {
	return path.Join(root, "companies", companyID)
}

// ResumeFolder builds the folder holding the resumes submitted to a job.
func ResumeFolder(root, companyID, jobID string) string {
	return path.Join(root, "jobs", "company-"+companyID, "job-"+jobID, "applications")
}
