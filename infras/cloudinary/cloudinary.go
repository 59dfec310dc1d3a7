package cloudinary

//go:generate go run go.uber.org/mock/mockgen -source=./cloudinary.go -destination=./mocks/cloudinary_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog/log"
)

var ErrNotConfigured = errors.New("media host is not configured")

// Asset is a file stored on the media host.
type Asset struct {
	URL      string
	PublicID string
}

// Signature lets a client upload straight to the media host.
type Signature struct {
	Timestamp int64
	Signature string
	APIKey    string
	CloudName string
	Folder    string
}

type Cloudinary interface {
	Upload(ctx context.Context, file io.Reader, folder string) (Asset, error)
	Destroy(ctx context.Context, publicID string) error
	Sign(folder string, timestamp int64) (Signature, error)
}

type cloudinaryImpl struct {
	client *cloudinary.Cloudinary
	cfg    *config.Config
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Cloudinary {
	media := cfg.External.Cloudinary

	impl := &cloudinaryImpl{cfg: cfg, otel: otel}

	if media.CloudName == constant.Empty {
		log.Warn().Msg("Cloudinary is not configured, media uploads are disabled")

		return impl
	}

	client, err := cloudinary.NewFromParams(media.CloudName, media.APIKey, media.APISecret)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize Cloudinary client")

		return impl
	}

	client.Config.URL.Secure = true
	impl.client = client

	log.Info().Msg("Cloudinary client initialized")

	return impl
}

func (c *cloudinaryImpl) Upload(ctx context.Context, file io.Reader, folder string) (asset Asset, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelMediaScopeName, constant.OtelMediaScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(err)

	if c.client == nil {
		return asset, ErrNotConfigured
	}

	scope.SetAttribute(constant.FormFolder, folder)

	resp, err := c.client.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return asset, fmt.Errorf("failed to upload file to media host: %w", err)
	}

	if resp.Error.Message != constant.Empty {
		return asset, fmt.Errorf("media host rejected upload: %s", resp.Error.Message) //nolint:err113
	}

	return Asset{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

func (c *cloudinaryImpl) Destroy(ctx context.Context, publicID string) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelMediaScopeName, constant.OtelMediaScopeName+".Destroy")
	defer scope.End()
	defer scope.TraceIfError(err)

	if c.client == nil {
		return ErrNotConfigured
	}

	resp, err := c.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to delete file from media host: %w", err)
	}

	if resp.Error.Message != constant.Empty {
		return fmt.Errorf("media host rejected delete: %s", resp.Error.Message) //nolint:err113
	}

	return nil
}

// Sign signs folder and timestamp with the API secret using the media host's
// SHA-1 request signing scheme.
func (c *cloudinaryImpl) Sign(folder string, timestamp int64) (Signature, error) {
	media := c.cfg.External.Cloudinary

	if media.APISecret == constant.Empty {
		return Signature{}, ErrNotConfigured
	}

	params := url.Values{}
	params.Set(constant.FormFolder, folder)
	params.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err := api.SignParameters(params, media.APISecret)
	if err != nil {
		return Signature{}, fmt.Errorf("failed to sign upload parameters: %w", err)
	}

	return Signature{
		Timestamp: timestamp,
		Signature: signature,
		APIKey:    media.APIKey,
		CloudName: media.CloudName,
		Folder:    folder,
	}, nil
}
