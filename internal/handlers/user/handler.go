package user

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/user/model"
	"hotel/internal/domains/user/model/dto"
	"hotel/internal/domains/user/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/users", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateUser)
		routerGroup.Get("/", handler.GetUsers)
		routerGroup.Patch("/me", handler.UpdateProfile)
		routerGroup.Get("/{id}", handler.GetUserByID)
		routerGroup.Patch("/{id}", handler.UpdateUser)
		routerGroup.Delete("/{id}", handler.DeleteUser)
	})
}

func fail(w http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)
	log.Error().Err(err).Msg(msg)

	response.WithError(w, err)
}

// CreateUser handles the creation of a new user.
// @Summary Create a new user
// @Description Create an account. Roles default to customer.
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "Create User Request"
// @Success 201 {object} response.Data[dto.UserResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users [post]
// @Security BearerAuth
func (handler *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateUser")
	defer scope.End()

	var req dto.CreateUserRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "invalid create user request")

		return
	}

	user, err := handler.service.Create(ctx, req)
	if err != nil {
		fail(w, scope, err, "failed to create user")

		return
	}

	response.WithJSON(w, http.StatusCreated, user)
}

// GetUsers retrieves users based on query parameters.
// @Summary Get all users
// @Tags User
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param email query string false "Filter by email"
// @Param active query boolean false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetUsersResponse]
// @Failure 500 {object} response.Error
// @Router /v1/users [get]
// @Security BearerAuth
func (handler *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsers")
	defer scope.End()

	var params gDto.QueryParams
	params.FromRequest(r, true)
	params.AllowSortBy(constant.FieldCreatedAt, constant.FieldCreatedAt, model.FieldEmail, model.FieldFullName, model.FieldLastLogin)

	users, err := handler.service.GetAll(ctx, params, userFilter(r))
	if err != nil {
		fail(w, scope, err, "failed to get users")

		return
	}

	response.WithJSON(w, http.StatusOK, users)
}

// GetUserByID retrieves a user by ID.
// @Summary Get a user by ID
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Data[dto.UserResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUserByID")
	defer scope.End()

	user, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		fail(w, scope, err, "failed to get user")

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}

// UpdateUser updates a user by ID.
// @Summary Update a user
// @Tags User
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Update User Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateUser")
	defer scope.End()

	var req dto.UpdateUserRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "invalid update user request")

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to update user")

		return
	}

	response.WithMessage(w, http.StatusOK, "User updated successfully")
}

// UpdateProfile updates the signed in user's own profile.
// @Summary Update my profile
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Update Profile Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/me [patch]
// @Security BearerAuth
func (handler *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateProfile")
	defer scope.End()

	var req dto.UpdateProfileRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "invalid profile request")

		return
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err := handler.service.UpdateProfile(ctx, req, userID); err != nil {
		fail(w, scope, err, "failed to update profile")

		return
	}

	response.WithMessage(w, http.StatusOK, "Profile updated successfully")
}

// DeleteUser deletes a user by ID.
// @Summary Delete a user
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteUser")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to delete user")

		return
	}

	response.WithMessage(w, http.StatusOK, "User deleted successfully")
}

// userFilter reads the email substring and active flag filters. An active
// value that is not a boolean is ignored.
func userFilter(r *http.Request) gDto.FilterGroup {
	query := r.URL.Query()
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if email := query.Get(model.FieldEmail); email != "" {
		group.Add(gDto.Filter{Field: model.FieldEmail, Operator: gDto.FilterOperatorLike, Value: email, Table: model.TableName})
	}

	if active := shared.ConvertStringToBool(query.Get(model.FieldActive)); active != nil {
		group.Add(gDto.Filter{Field: model.FieldActive, Operator: gDto.FilterOperatorEq, Value: *active, Table: model.TableName})
	}

	return group
}
