package images

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/01moynul/inventory-golang/internal/models"
)

const s3KeyPrefix = "uploads/"

// S3 puts uploads into a bucket on AWS S3 or an S3-compatible server
// (MinIO). The stored path is the object URL.
type S3 struct {
	client    *s3.Client
	bucket    string
	region    string
	endpoint  string
	pathStyle bool
}

// S3Options holds explicit construction parameters. Credentials come from
// the default AWS chain.
type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	PathStyle bool
}

// NewS3 builds an S3 image store. Extra client options are applied last.
func NewS3(ctx context.Context, opts S3Options, optFns ...func(*s3.Options)) (*S3, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	if opts.Region == "" {
		opts.Region = "us-east-1"
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(opts.Region))
	if err != nil {
		return nil, err
	}

	fns := []func(*s3.Options){func(o *s3.Options) {
		o.UsePathStyle = opts.PathStyle
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	}}
	client := s3.NewFromConfig(awsCfg, append(fns, optFns...)...)

	return &S3{
		client:    client,
		bucket:    opts.Bucket,
		region:    opts.Region,
		endpoint:  opts.Endpoint,
		pathStyle: opts.PathStyle,
	}, nil
}

func (s *S3) Save(ctx context.Context, u Upload) (models.Image, error) {
	key := s3KeyPrefix + u.Filename
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   u.Body,
	}
	if u.ContentType != "" {
		input.ContentType = aws.String(u.ContentType)
	}
	if u.Size > 0 {
		input.ContentLength = aws.Int64(u.Size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return models.Image{}, fmt.Errorf("put object %s: %w", key, err)
	}

	return models.Image{
		Filename:     u.Filename,
		Path:         s.objectURL(key),
		ContentType:  u.ContentType,
		Size:         u.Size,
		OriginalName: u.OriginalName,
	}, nil
}

func (s *S3) objectURL(key string) string {
	if s.endpoint != "" {
		base, err := url.Parse(s.endpoint)
		if err == nil {
			if s.pathStyle {
				base.Path = path.Join("/", base.Path, s.bucket, key)
			} else {
				base.Host = s.bucket + "." + base.Host
				base.Path = path.Join("/", base.Path, key)
			}
			return base.String()
		}
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, strings.TrimPrefix(key, "/"))
}
