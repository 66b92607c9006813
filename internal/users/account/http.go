// Copyright (c) 2026 Critica. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/critica/internal/platform/middleware"
	requestutil "github.com/taibuivan/critica/internal/platform/request"
	"github.com/taibuivan/critica/internal/platform/respond"
	"github.com/taibuivan/critica/internal/platform/sec"
	"github.com/taibuivan/critica/internal/platform/validate"
	"github.com/taibuivan/critica/internal/users/auth"
	"github.com/taibuivan/critica/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements user directory and profile HTTP endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with user management routes.
//
// # Endpoints
//   - GET    /me          : Own profile (any authenticated user).
//   - PATCH  /me          : Update own profile; role changes are ignored.
//   - GET    /            : List directory (admin).
//   - POST   /            : Provision a user (admin).
//   - GET    /{username}  : Fetch a user (admin).
//   - PATCH  /{username}  : Update a user, including role (admin).
//   - DELETE /{username}  : Remove a user (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Self-service. The static /me segment wins over the {username} wildcard.
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.getOwnProfile)
		r.Patch("/me", handler.updateOwnProfile)
	})

	// Directory administration
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/", handler.list)
		r.Post("/", handler.create)
		r.Get("/{username}", handler.get)
		r.Patch("/{username}", handler.update)
		r.Delete("/{username}", handler.delete)
	})

	return router
}

// # Request Payloads

type createUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

// updateUserRequest uses pointers so an absent field can be told apart from an
// explicitly blanked one.
type updateUserRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

func validateUpdate(validator *validate.Validator, input *updateUserRequest, allowRole bool) {
	if input.Username != nil {
		validator.Required(auth.FieldUsername, *input.Username).
			Username(auth.FieldUsername, *input.Username).
			MaxLen(auth.FieldUsername, *input.Username, auth.MaxUsernameLength)
	}
	if input.Email != nil {
		validator.Required(auth.FieldEmail, *input.Email).
			Email(auth.FieldEmail, *input.Email).
			MaxLen(auth.FieldEmail, *input.Email, auth.MaxEmailLength)
	}
	if input.FirstName != nil {
		validator.MaxLen(auth.FieldFirstName, *input.FirstName, auth.MaxFirstNameLength)
	}
	if input.LastName != nil {
		validator.MaxLen(auth.FieldLastName, *input.LastName, auth.MaxLastNameLength)
	}
	if allowRole && input.Role != nil {
		validator.OneOf(auth.FieldRole, *input.Role,
			string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
	}
}

// # Directory Endpoints

/*
List returns a page of the user directory.

GET /api/v1/users?search=&page=&limit=

Response:
  - 200: Paginated list of users
  - 403: Caller lacks admin capability
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	search := request.URL.Query().Get(fieldSearch)

	users, total, err := handler.accountService.ListUsers(request.Context(), search, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(page.Page, page.Limit, total))
}

/*
Create provisions a new user with an explicit role.

POST /api/v1/users

Response:
  - 201: The created user
  - 400: Validation failure or identity conflict
  - 403: Caller lacks admin capability
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.Role == "" {
		input.Role = string(sec.RoleUser)
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldUsername, input.Username).
		Username(auth.FieldUsername, input.Username).
		MaxLen(auth.FieldUsername, input.Username, auth.MaxUsernameLength).
		Required(auth.FieldEmail, input.Email).
		Email(auth.FieldEmail, input.Email).
		MaxLen(auth.FieldEmail, input.Email, auth.MaxEmailLength).
		MaxLen(auth.FieldFirstName, input.FirstName, auth.MaxFirstNameLength).
		MaxLen(auth.FieldLastName, input.LastName, auth.MaxLastNameLength).
		OneOf(auth.FieldRole, input.Role,
			string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.CreateUser(request.Context(), CreateUserInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      sec.UserRole(input.Role),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Get fetches a single user by username.

GET /api/v1/users/{username}

Response:
  - 200: The user
  - 404: Unknown username
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	user, err := handler.accountService.GetUser(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Update applies a partial change to a user, including role assignment.

PATCH /api/v1/users/{username}

Response:
  - 200: The updated user
  - 400: Validation failure or identity conflict
  - 404: Unknown username
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validateUpdate(validator, &input, true)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	update := UpdateUserInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
	}
	if input.Role != nil {
		role := sec.UserRole(*input.Role)
		update.Role = &role
	}

	user, err := handler.accountService.UpdateUser(request.Context(), username, update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Delete permanently removes a user.

DELETE /api/v1/users/{username}

Response:
  - 204: Removed
  - 404: Unknown username
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	if err := handler.accountService.DeleteUser(request.Context(), username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Self-Service Endpoints

/*
GetOwnProfile returns the calling user's own account.

GET /api/v1/users/me

Response:
  - 200: The caller's profile
  - 401: Missing or invalid token
*/
func (handler *Handler) getOwnProfile(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
UpdateOwnProfile applies a partial change to the caller's own account.

PATCH /api/v1/users/me

Description: A role field in the body is silently ignored; members cannot
raise their own privileges.

Response:
  - 200: The updated profile
  - 400: Validation failure or identity conflict
  - 401: Missing or invalid token
*/
func (handler *Handler) updateOwnProfile(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validateUpdate(validator, &input, false)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), claims.UserID, UpdateProfileInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
