package media

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/media/model/dto"
	"hotel/internal/domains/media/service"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Media
	otel    otel.Otel
}

func New(service service.Media, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/media", func(routerGroup chi.Router) {
		routerGroup.Post("/upload", handler.Upload)
		routerGroup.Get("/signature", handler.Signature)
		routerGroup.Delete("/", handler.Delete)
	})
}

// Upload stores an image on the media host.
// @Summary Upload an image
// @Description Upload one image and receive its permanent URL. Store the URL on the entity unchanged.
// @Tags Media
// @Accept mpfd
// @Produce json
// @Param file formData file true "Image (jpeg, png, webp or gif, max 10 MB)"
// @Param folder formData string false "Folder (rooms, hotels, packages, services, offers, testimonials, blogs, staff, avatars)"
// @Success 201 {object} response.Data[dto.UploadResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/media/upload [post]
// @Security BearerAuth
func (handler *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Upload")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		response.WithError(w, failure.BadRequestFromString("request must be multipart/form-data"))

		return
	}

	file, header, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, failure.BadRequestFromString("file is required"))

		return
	}
	defer file.Close()

	req := dto.UploadRequest{
		File:   *header,
		Folder: r.FormValue(constant.FormFolder),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate upload")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Upload(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload file")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// Signature signs a direct client upload.
// @Summary Sign a direct upload
// @Tags Media
// @Produce json
// @Param folder query string false "Folder"
// @Success 200 {object} response.Data[dto.SignatureResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/media/signature [get]
// @Security BearerAuth
func (handler *Handler) Signature(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Signature")
	defer scope.End()

	req := dto.SignatureRequest{Folder: r.URL.Query().Get(constant.FormFolder)}
	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Signature(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to sign upload")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Delete removes an uploaded image.
// @Summary Delete an uploaded image
// @Tags Media
// @Accept json
// @Produce json
// @Param request body dto.DeleteRequest true "Image"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/media [delete]
// @Security BearerAuth
func (handler *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteMedia")
	defer scope.End()

	var req dto.DeleteRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete file")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "File deleted successfully")
}
