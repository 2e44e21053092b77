// Package api provides the resource handlers executed by the pipeline.
package api

import (
	"context"
	"log/slog"
	"math"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/phrazzld/user-api/internal/api/shared"
	"github.com/phrazzld/user-api/internal/domain"
	"github.com/phrazzld/user-api/internal/pipeline"
	"github.com/phrazzld/user-api/internal/store"
)

// UserHandler implements the user CRUD endpoints.
//
// Handlers return plain data or classified failures and never touch the
// transport; the pipeline formats all output. The only error translation
// done here is turning the store's "absent" results into not-found
// failures.
type UserHandler struct {
	store  store.UserStore
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler backed by the given store.
func NewUserHandler(userStore store.UserStore, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		store:  userStore,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// List handles GET /users.
func (h *UserHandler) List(ctx context.Context, req *pipeline.Request) (any, error) {
	users := h.store.All()
	return shared.Response{
		Success: true,
		Data:    users,
		Message: "user list retrieved successfully",
	}, nil
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(ctx context.Context, req *pipeline.Request) (any, error) {
	id, err := pathID(req)
	if err != nil {
		return nil, err
	}

	user, ok := h.store.Get(id)
	if !ok {
		return nil, pipeline.NotFoundf("user %d does not exist", id)
	}

	return shared.Response{
		Success: true,
		Data:    user,
		Message: "user retrieved successfully",
	}, nil
}

// Create handles POST /users. The body has already been validated and
// coerced against the create schema, so it contains exactly the declared
// fields.
func (h *UserHandler) Create(ctx context.Context, req *pipeline.Request) (any, error) {
	password, _ := stringField(req.Body, "password")
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	data := domain.CreateUser{
		HashedPassword: string(hashed),
	}
	data.Name, _ = stringField(req.Body, "name")
	data.Email, _ = stringField(req.Body, "email")
	data.Bio, _ = stringField(req.Body, "bio")
	if age, ok := intField(req.Body, "age"); ok {
		data.Age = &age
	}

	user, err := h.store.Create(data)
	if err != nil {
		return nil, err
	}

	h.logger.Info("user created", slog.Int("id", user.ID))
	return shared.Response{
		Success: true,
		Data:    user,
		Message: "user created successfully",
	}, nil
}

// Update handles PUT /users/{id}. The body is a free-form partial: only the
// recognized, correctly typed fields are merged, and the ID can never be
// overwritten because the store accepts no ID in its update data.
func (h *UserHandler) Update(ctx context.Context, req *pipeline.Request) (any, error) {
	id, err := pathID(req)
	if err != nil {
		return nil, err
	}

	var data domain.UpdateUser
	if name, ok := stringField(req.Body, "name"); ok {
		data.Name = &name
	}
	if email, ok := stringField(req.Body, "email"); ok {
		data.Email = &email
	}
	if bio, ok := stringField(req.Body, "bio"); ok {
		data.Bio = &bio
	}
	if age, ok := intField(req.Body, "age"); ok {
		data.Age = &age
	}

	user, ok := h.store.Update(id, data)
	if !ok {
		return nil, pipeline.NotFoundf("user %d does not exist", id)
	}

	h.logger.Info("user updated", slog.Int("id", user.ID))
	return shared.Response{
		Success: true,
		Data:    user,
		Message: "user updated successfully",
	}, nil
}

// Delete handles DELETE /users/{id}.
func (h *UserHandler) Delete(ctx context.Context, req *pipeline.Request) (any, error) {
	id, err := pathID(req)
	if err != nil {
		return nil, err
	}

	if !h.store.Delete(id) {
		return nil, pipeline.NotFoundf("user %d does not exist", id)
	}

	h.logger.Info("user deleted", slog.Int("id", id))
	return shared.Response{
		Success: true,
		Message: "user deleted successfully",
	}, nil
}

// pathID parses the {id} path parameter. A non-numeric or non-positive
// value identifies no resource, so it maps to not-found rather than a
// validation failure; the raw value is echoed in the message.
func pathID(req *pipeline.Request) (int, error) {
	raw := req.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, pipeline.NotFoundf("invalid user id: %s", raw)
	}
	return id, nil
}

func stringField(body map[string]any, name string) (string, bool) {
	v, ok := body[name].(string)
	return v, ok
}

func intField(body map[string]any, name string) (int, bool) {
	switch v := body[name].(type) {
	case int:
		return v, true
	case float64:
		if v == math.Trunc(v) {
			return int(v), true
		}
	}
	return 0, false
}
