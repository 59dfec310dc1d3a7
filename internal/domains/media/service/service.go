package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"hotel/config"
	"hotel/infras/cloudinary"
	"hotel/infras/otel"
	"hotel/internal/domains/media/model/dto"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Media interface {
	// Upload stores one image and returns its permanent URL.
	Upload(ctx context.Context, req dto.UploadRequest) (dto.UploadResponse, error)
	// Delete removes an uploaded image, used when a form is abandoned after
	// its images were uploaded.
	Delete(ctx context.Context, req dto.DeleteRequest) error
	// Signature signs a direct upload from the client to the media host.
	Signature(ctx context.Context, req dto.SignatureRequest) (dto.SignatureResponse, error)
}

type serviceImpl struct {
	media cloudinary.Cloudinary
	cfg   *config.Config
	otel  otel.Otel
}

func New(media cloudinary.Cloudinary, cfg *config.Config, otel otel.Otel) Media {
	return &serviceImpl{
		media: media,
		cfg:   cfg,
		otel:  otel,
	}
}

func (s *serviceImpl) Upload(ctx context.Context, req dto.UploadRequest) (res dto.UploadResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".media.Upload")
	defer scope.End()
	defer scope.TraceIfError(err)

	file, err := req.File.Open()
	if err != nil {
		return res, failure.BadRequest(fmt.Errorf("failed to open uploaded file: %w", err)) // nolint:wrapcheck
	}
	defer file.Close()

	asset, err := s.media.Upload(ctx, file, req.Destination(s.cfg.External.Cloudinary.Folder))
	if err != nil {
		log.Error().Err(err).Str("file", req.File.Filename).Msg("failed to upload file")

		return res, mapError(err, "failed to upload file")
	}

	res.FromAsset(asset)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, req dto.DeleteRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".media.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.media.Destroy(ctx, req.PublicID); err != nil {
		log.Error().Err(err).Str("public_id", req.PublicID).Msg("failed to delete file")

		return mapError(err, "failed to delete file")
	}

	return nil
}

func (s *serviceImpl) Signature(ctx context.Context, req dto.SignatureRequest) (res dto.SignatureResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".media.Signature")
	defer scope.End()
	defer scope.TraceIfError(err)

	signature, err := s.media.Sign(dto.Destination(s.cfg.External.Cloudinary.Folder, req.Folder), timezone.Now().Unix())
	if err != nil {
		return res, mapError(err, "failed to sign upload")
	}

	res.FromSignature(signature)

	return res, nil
}

func mapError(err error, msg string) error {
	if errors.Is(err, cloudinary.ErrNotConfigured) {
		return failure.Unimplemented("media uploads are not configured") // nolint:wrapcheck
	}

	return fmt.Errorf("%s: %w", msg, err)
}
