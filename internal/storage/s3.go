package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3Config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	configs "assignment_service/config"
	"assignment_service/internal/errdefs"
)

func NewClient(ctx context.Context, cfg configs.S3Config) (*s3.Client, error) {
	opts := []func(*s3Config.LoadOptions) error{
		s3Config.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, s3Config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		))
	}

	awsCfg, err := s3Config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return client, nil
}

type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Gateway streams fetched artifacts into the bucket. Keys are
// deterministic per (assignment, submitter, version), so a redelivered
// event overwrites the same object instead of creating a duplicate.
type Gateway struct {
	client ObjectPutter
	bucket string
}

func NewGateway(client ObjectPutter, bucket string) *Gateway {
	return &Gateway{client: client, bucket: bucket}
}

func ObjectKey(assignment, email string, version int) string {
	return fmt.Sprintf("%s/%s/%d", assignment, email, version)
}

func (g *Gateway) Bucket() string {
	return g.bucket
}

func (g *Gateway) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := g.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("%w: %v", errdefs.ErrTransfer, err)
	}
	return nil
}
