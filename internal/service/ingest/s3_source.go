package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3Downloader is satisfied by *manager.Downloader.
type S3Downloader interface {
	Download(ctx context.Context, w io.WriterAt, input *s3.GetObjectInput, options ...func(*manager.Downloader)) (int64, error)
}

// S3Source downloads the whole object into memory before parsing.
type S3Source struct {
	Bucket     string
	Key        string
	Downloader S3Downloader
}

func (s S3Source) Open(ctx context.Context) (io.ReadCloser, error) {
	buf := manager.NewWriteAtBuffer(nil)
	n, err := s.Downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, s.classify(err)
	}
	return io.NopCloser(bytes.NewReader(buf.Bytes()[:n])), nil
}

func (s S3Source) classify(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket", "NotFound":
			return fmt.Errorf("download %s: %s: %w", s, apiErr.ErrorCode(), ErrNotFound)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("download %s: access denied: %w", s, err)
		}
	}
	return fmt.Errorf("download %s: %w", s, err)
}

func (s S3Source) String() string { return "s3://" + s.Bucket + "/" + s.Key }
