package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"imovia/internal/utils/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"imovia/internal/config"
)

var _ ImageStore = (*S3Store)(nil)

// S3Store keeps images in an S3-compatible bucket. Objects are public
// read; the returned path is the full object URL.
type S3Store struct {
	client     *s3.Client
	bucketName string
	endpoint   string
	region     string
	log        *logger.Logger
}

func NewS3Store(cfg config.S3Config) (*S3Store, error) {
	log := logger.New("s3_store")

	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, log.Error("S3 credentials are empty", fmt.Errorf("accessKey or secretKey is empty"))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
		awsconfig.WithRetryMode(aws.RetryModeStandard),
		awsconfig.WithRetryMaxAttempts(3),
	)
	if err != nil {
		return nil, log.Error("Unable to load SDK config", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.%s", cfg.Region, cfg.Endpoint))
		}
	})

	// Verify credentials before accepting uploads
	_, err = client.ListObjectsV2(context.TODO(), &s3.ListObjectsV2Input{
		Bucket: aws.String(cfg.BucketName),
	})
	if err != nil {
		return nil, log.Error("Failed to verify S3 credentials", err)
	}

	log.Success("S3 store initialized")

	return &S3Store{
		client:     client,
		bucketName: cfg.BucketName,
		endpoint:   cfg.Endpoint,
		region:     cfg.Region,
		log:        log,
	}, nil
}

func (s *S3Store) Save(ctx context.Context, content []byte, filename, contentType string) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("only image files are allowed, got %s", contentType)
	}
	if len(content) > MaxImageBytes {
		return "", fmt.Errorf("file exceeds %d byte limit", MaxImageBytes)
	}

	key := uuid.New().String() + filepath.Ext(filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ACL:         types.ObjectCannedACLPublicRead,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", s.log.Error("Failed to upload image %s", err, key)
	}

	return s.objectURL(key), nil
}

func (s *S3Store) Remove(ctx context.Context, path string) error {
	key := path[strings.LastIndex(path, "/")+1:]

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Store) List(ctx context.Context) ([]string, error) {
	var paths []string

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucketName),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			paths = append(paths, s.objectURL(aws.ToString(obj.Key)))
		}
	}

	return paths, nil
}

func (s *S3Store) objectURL(key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("https://%s.%s/%s/%s", s.region, s.endpoint, s.bucketName, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucketName, s.region, key)
}
