package sitemap

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPutter is the part of the S3 client used for publishing.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// R2Config locates the bucket. Endpoint wins over AccountID.
type R2Config struct {
	Endpoint  string
	AccountID string
	AccessKey string
	SecretKey string
	Bucket    string
}

func (c R2Config) endpoint() (string, error) {
	switch {
	case c.Endpoint != "":
		return c.Endpoint, nil
	case c.AccountID != "":
		return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID), nil
	default:
		return "", errors.New("R2_ENDPOINT or CLOUDFLARE_ACCOUNT_ID must be set")
	}
}

// Publisher uploads the rendered sitemap to an S3-compatible bucket.
type Publisher struct {
	client ObjectPutter
	bucket string
}

// NewR2Publisher builds an S3 client pointed at Cloudflare R2 with static
// credentials.
func NewR2Publisher(ctx context.Context, cfg R2Config) (*Publisher, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("R2 credentials not configured")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("R2 bucket not configured")
	}
	endpoint, err := cfg.endpoint()
	if err != nil {
		return nil, err
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})
	return &Publisher{client: client, bucket: cfg.Bucket}, nil
}

func NewPublisher(client ObjectPutter, bucket string) *Publisher {
	return &Publisher{client: client, bucket: bucket}
}

// Publish writes body under key with the sitemap content type and cache
// headers.
func (p *Publisher) Publish(ctx context.Context, key string, body []byte) error {
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String("application/xml"),
		CacheControl:  aws.String(CacheControl),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to bucket %s: %w", key, p.bucket, err)
	}
	return nil
}
