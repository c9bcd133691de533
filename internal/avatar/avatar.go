// Package avatar stores profile pictures in an S3-compatible bucket. The
// server never proxies image bytes: clients upload and download through
// short-lived presigned URLs and the backend only keeps the object key.
package avatar

import (
	"context"
	"fmt"
	"time"

	appconfig "github.com/MARELLASUSANNA/TravelViz/internal/config"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignTTL = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}
)

type Store struct {
	cfg appconfig.S3
}

func New(cfg appconfig.S3) *Store {
	return &Store{cfg: cfg}
}

func newObjectKey(userID int) string {
	return fmt.Sprintf("avatars/%d/%v.png", userID, uuid.New())
}

func (s *Store) presignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey,
			s.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.BaseEndpoint)
		}
	})

	return newS3PresignClient(client), nil
}

// PresignUpload returns a fresh object key and a URL the client can PUT the
// image to within the TTL.
func (s *Store) PresignUpload(ctx context.Context, userID int) (string, string, error) {
	presignClient, err := s.presignClient()
	if err != nil {
		return "", "", err
	}

	key := newObjectKey(userID)

	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &s.cfg.Bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// PresignDownload returns a URL the stored picture can be fetched from.
func (s *Store) PresignDownload(ctx context.Context, key string) (string, error) {
	presignClient, err := s.presignClient()
	if err != nil {
		return "", err
	}

	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.cfg.Bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
