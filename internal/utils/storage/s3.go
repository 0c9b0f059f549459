package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"nutrilog-backend/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var ErrObjectNotFound = errors.New("object not found")

type (
	// AwsS3 stores small objects in one bucket.
	AwsS3 interface {
		PutObject(ctx context.Context, key string, body []byte, contentType string) error
		GetObject(ctx context.Context, key string) ([]byte, error)
		DeleteObject(ctx context.Context, key string) error
	}

	awsS3 struct {
		client *s3.Client
		bucket string
	}
)

// NewAwsS3 builds a client from AWS_S3_* settings. Static credentials are used
// when both keys are set, otherwise the default AWS credential chain.
func NewAwsS3(ctx context.Context) (AwsS3, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(utils.GetConfig("AWS_S3_REGION")),
	}
	accessKey, secretKey := utils.GetConfig("AWS_ACCESS_KEY"), utils.GetConfig("AWS_SECRET_KEY")
	if accessKey != "" && secretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	bucket := utils.GetConfig("AWS_S3_BUCKET")
	if bucket == "" {
		return nil, errors.New("AWS_S3_BUCKET not set")
	}

	return &awsS3{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

func (a *awsS3) PutObject(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put s3 object %s: %w", key, err)
	}
	return nil
}

func (a *awsS3) GetObject(ctx context.Context, key string) ([]byte, error) {
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("get s3 object %s: %w", key, err)
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func (a *awsS3) DeleteObject(ctx context.Context, key string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete s3 object %s: %w", key, err)
	}
	return nil
}
