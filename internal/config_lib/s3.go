package config_lib

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// NewS3Client returns a client and a concurrent downloader for region.
func NewS3Client(ctx context.Context, region string) (*s3.Client, *manager.Downloader, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	downloader := manager.NewDownloader(client, func(d *manager.Downloader) {
		d.PartSize = 8 * 1024 * 1024
	})

	return client, downloader, nil
}
