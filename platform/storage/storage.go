package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"medscan_gateway/config"
	"medscan_gateway/pkg/logging"
	"medscan_gateway/utils"
)

// Service archives analyzed images to a bucket so the history view can
// fetch them again later.
type Service struct {
	Client           *minio.Client
	Bucket           string
	Region           string
	StorageType      string
	FileKeyGenerator *utils.FileKeyGenerator
}

func InitStorageService(cfg *config.Config) (*Service, error) {
	var client *minio.Client
	var err error

	// local vs s3
	switch cfg.StorageType {
	case "minio":
		client, err = minio.New(cfg.BucketEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.BucketAccessID, cfg.BucketAccessKey, ""),
			Secure: cfg.UseSSL,
		})
	case "s3":
		client, err = minio.New("s3.amazonaws.com", &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.BucketAccessID, cfg.BucketAccessKey, ""),
			Secure: cfg.UseSSL,
			Region: cfg.BucketRegion,
		})
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.StorageType)
	}
	if err != nil {
		logging.Logger.Error("fail InitStorageService", "error", err)
		return nil, err
	}

	ss := &Service{
		Client:           client,
		Bucket:           cfg.BucketName,
		Region:           cfg.BucketRegion,
		StorageType:      cfg.StorageType,
		FileKeyGenerator: utils.NewFileKeyGenerator("scans"),
	}
	if err := ss.EnsureBucketExists(); err != nil {
		logging.Logger.Error("fail InitStorageService", "error", err)
		return nil, err
	}
	logging.Logger.Info("Storage service initialized",
		"type", cfg.StorageType,
		"bucket", cfg.BucketName,
		"region", cfg.BucketRegion,
	)

	return ss, nil
}

func (ss *Service) EnsureBucketExists() error {
	ctx := context.Background()
	exists, err := ss.Client.BucketExists(ctx, ss.Bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	err = ss.Client.MakeBucket(ctx, ss.Bucket, minio.MakeBucketOptions{
		Region: ss.Region,
	})
	if err != nil {
		if ss.StorageType == "s3" {
			logging.Logger.Warn("Could not create S3 bucket (might exist or no permission)",
				"bucket", ss.Bucket, "error", err)
			return nil
		}
		return err
	}
	logging.Logger.Info("Bucket created", "bucket", ss.Bucket)
	return nil
}

// ArchiveImage stores one analyzed image and returns the object key.
func (ss *Service) ArchiveImage(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	fileKey := ss.FileKeyGenerator.GenerateFileKey(filename)

	_, err := ss.Client.PutObject(ctx, ss.Bucket, fileKey,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		logging.Logger.Error("fail ArchiveImage", "error", err, "fileKey", fileKey)
		return "", err
	}
	return fileKey, nil
}

// ImageURL returns a presigned GET link for a stored image.
func (ss *Service) ImageURL(ctx context.Context, fileKey string, expiry time.Duration) (string, error) {
	presignedURL, err := ss.Client.PresignedGetObject(ctx, ss.Bucket, fileKey, expiry, nil)
	if err != nil {
		logging.Logger.Error("fail ImageURL", "error", err, "fileKey", fileKey)
		return "", err
	}
	return presignedURL.String(), nil
}
