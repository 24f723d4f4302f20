package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userhub/dashboard-api/internal/api/middleware"
	"github.com/userhub/dashboard-api/internal/core/domain"
	"github.com/userhub/dashboard-api/internal/core/ports"
)

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// updateUserRequest includes email and password only to reject them
// explicitly: email is immutable and passwords change through the auth
// endpoints.
type updateUserRequest struct {
	Name       *string `json:"name"`
	Picture    *string `json:"picture"`
	Role       *string `json:"role"`
	Status     *string `json:"status"`
	IsVerified *bool   `json:"isVerified"`
	Email      *string `json:"email"`
	Password   *string `json:"password"`
}

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewError(domain.KindBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}, requestMeta(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "User registered successfully", user)
}

func (h *UserHandler) List(c echo.Context) error {
	users, meta, err := h.users.List(c.Request().Context(), queryMap(c))
	if err != nil {
		return err
	}
	return respondList(c, "Users retrieved successfully", users, meta)
}

func (h *UserHandler) Me(c echo.Context) error {
	claims, err := middleware.ClaimsFrom(c)
	if err != nil {
		return err
	}
	user, err := h.users.Me(c.Request().Context(), claims)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Profile retrieved successfully", user)
}

func (h *UserHandler) GetByID(c echo.Context) error {
	user, err := h.users.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User retrieved successfully", user)
}

func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewError(domain.KindBadRequest, "invalid request body")
	}
	if req.Email != nil {
		return domain.ErrEmailImmutable
	}
	if req.Password != nil {
		return domain.NewError(domain.KindBadRequest, "password cannot be updated here, use the change-password endpoint")
	}

	claims, err := middleware.ClaimsFrom(c)
	if err != nil {
		return err
	}
	user, err := h.users.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Name:       req.Name,
		Picture:    req.Picture,
		Role:       req.Role,
		Status:     req.Status,
		IsVerified: req.IsVerified,
	}, claims, requestMeta(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User updated successfully", user)
}
