package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"VzlaR011Cleaning/internal/config"
)

// ContentTypeXLSX is the MIME type the processed workbook is stored under.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Uploader stores processed workbooks in S3 and hands back a retrievable
// URL.
type Uploader struct {
	Bucket  string
	Region  string
	BaseURL string
	Prefix  string
	Enabled bool
}

func New(cfg config.AppConfig) *Uploader {
	base := strings.TrimSuffix(cfg.BaseURL, "/") + "/"
	return &Uploader{
		Bucket:  cfg.Bucket,
		Region:  cfg.Region,
		BaseURL: base,
		Prefix:  cfg.BlobPrefix,
		Enabled: cfg.S3Enabled,
	}
}

// BuildKey places a processed workbook under the run it came from.
func (u *Uploader) BuildKey(runID, filename string) string {
	name := sanitizePathSegment(filename)
	return fmt.Sprintf("%s%s/%s", u.Prefix, runID, name)
}

// Upload puts the object and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(u.Region))
	if err != nil {
		return "", fmt.Errorf("load AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload to s3 (bucket %s, key %s): %w", u.Bucket, key, err)
	}
	return u.BaseURL + key, nil
}

// Ping verifies the bucket is reachable with the current credentials.
func (u *Uploader) Ping(ctx context.Context) error {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(u.Region))
	if err != nil {
		return fmt.Errorf("load AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	_, err = client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(u.Bucket)})
	if err != nil {
		return fmt.Errorf("head bucket %s: %w", u.Bucket, err)
	}
	return nil
}

func sanitizePathSegment(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_")
	return replacer.Replace(s)
}
