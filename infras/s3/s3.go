package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"

	// Archived documents never change once written.
	immutableCacheControl = "public, max-age=31536000, immutable"
)

var errNoBucket = errors.New("no S3 bucket configured")

// S3 archives generated documents, such as invoice PDFs, in an S3 compatible
// bucket. An empty bucket name means the configured bucket. Object keys are
// derived from document numbers, so re-uploading the same document overwrites
// it in place.
type S3 interface {
	UploadFileBytes(ctx context.Context, bucketName, directory, fileName, contentType string, fileData []byte) (url string, err error)
}

type s3Impl struct {
	Client *s3.Client
	Config *config.Config
	otel   otel.Otel
}

func New(config *config.Config, otel otel.Otel) S3 {
	settings := config.External.S3

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(settings.AccessKeyID, settings.SecretAccessKey, "")),
		awsConfig.WithRegion(settings.Region),
	)
	if err != nil {
		log.Error().Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if settings.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(settings.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return &s3Impl{
		Client: client,
		Config: config,
		otel:   otel,
	}
}

func (svc *s3Impl) target(ctx context.Context, op, bucket, directory, name string) (context.Context, otel.Scope, string, string, error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+"."+op)

	if bucket == "" {
		bucket = svc.Config.External.S3.BucketName
	}

	key := ObjectKey(directory, name)

	scope.SetAttributes(map[string]any{
		otelAttrBucket:    bucket,
		otelAttrObjectKey: key,
	})

	if bucket == "" {
		return ctx, scope, bucket, key, errNoBucket
	}

	return ctx, scope, bucket, key, nil
}

func (svc *s3Impl) UploadFileBytes(ctx context.Context, bucketName, directory, fileName, contentType string, fileData []byte) (string, error) {
	ctx, scope, bucket, key, err := svc.target(ctx, "UploadFileBytes", bucketName, directory, fileName)
	defer scope.End()

	if err != nil {
		scope.TraceError(err)

		return constant.Empty, err
	}

	_, err = svc.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(bucket),
		Key:                aws.String(key),
		Body:               bytes.NewReader(fileData),
		ContentType:        aws.String(contentType),
		ContentLength:      aws.Int64(int64(len(fileData))),
		ContentDisposition: aws.String(fmt.Sprintf("inline; filename=%q", fileName)),
		CacheControl:       aws.String(immutableCacheControl),
	})
	if err != nil {
		scope.TraceError(err)

		return constant.Empty, fmt.Errorf("failed to upload %s to S3: %w", key, err)
	}

	return PublicURL(svc.Config.External.S3.PublicDomain, key), nil
}

// ObjectKey joins directory and name without a leading slash.
func ObjectKey(directory, name string) string {
	return strings.TrimPrefix(path.Join(directory, name), "/")
}

// PublicURL is where an object is served from. Without a public domain the
// bare key is returned.
func PublicURL(domain, key string) string {
	if domain == "" {
		return key
	}

	if !strings.Contains(domain, "://") {
		domain = "https://" + domain
	}

	joined, err := url.JoinPath(domain, strings.Split(key, "/")...)
	if err != nil {
		return strings.TrimSuffix(domain, "/") + "/" + key
	}

	return joined
}
