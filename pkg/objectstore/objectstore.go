// Package objectstore uploads hero images to S3-compatible storage and hands
// back public URLs. The persistence layer only ever stores the resulting URL
// string, never binary content.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// DefaultBucket is the bucket hero images land in.
const DefaultBucket = "portfolio-images"

// Uploader stores a binary file and returns its public URL.
type Uploader interface {
	UploadHeroImage(ctx context.Context, userID, fileName string, r io.Reader, size int64, contentType string) (string, error)
}

// Config holds MinIO connection details.
type Config struct {
	Endpoint        string // e.g. localhost:9000
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
}

// MinIOUploader is a MinIO-backed Uploader.
type MinIOUploader struct {
	client *minio.Client
	config Config
}

// NewMinIOUploader creates the client and ensures the bucket exists.
func NewMinIOUploader(ctx context.Context, cfg Config) (*MinIOUploader, error) {
	if cfg.Bucket == "" {
		cfg.Bucket = DefaultBucket
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOUploader{
		client: client,
		config: cfg,
	}, nil
}

// UploadHeroImage stores the file under <userID>/<timestamp>-<sanitized name>
// and returns the public URL to persist on the profile.
func (u *MinIOUploader) UploadHeroImage(ctx context.Context, userID, fileName string, r io.Reader, size int64, contentType string) (string, error) {
	objectName := fmt.Sprintf("%s/%d-%s", userID, time.Now().UnixMilli(), SanitizeFileName(fileName))

	_, err := u.client.PutObject(ctx, u.config.Bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "max-age=3600",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload hero image: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", u.client.EndpointURL(), u.config.Bucket, objectName), nil
}

// SanitizeFileName lower-cases the base name, replaces spaces with hyphens,
// strips everything outside [a-z0-9-], caps it at 80 characters and keeps the
// extension. A fully stripped name becomes "image".
func SanitizeFileName(name string) string {
	ext := ""
	base := name
	if i := strings.LastIndex(name, "."); i >= 0 {
		ext = strings.ToLower(name[i:])
		base = name[:i]
	}

	var b strings.Builder
	for _, r := range strings.ToLower(base) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	safe := b.String()
	if len(safe) > 80 {
		safe = safe[:80]
	}
	if safe == "" {
		safe = "image"
	}
	return safe + ext
}
