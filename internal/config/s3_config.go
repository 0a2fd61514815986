package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stock-ahora/api-sales/internal/config_lib"
)

type S3Service struct {
	Client     *s3.Client
	Downloader *manager.Downloader
}

// NewS3Service builds the S3 client used for s3:// import sources.
func NewS3Service(ctx context.Context, region string) (*S3Service, error) {
	client, downloader, err := config_lib.NewS3Client(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}
	return &S3Service{Client: client, Downloader: downloader}, nil
}
