package handler

import (
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler serves registration, login, the caller's own profile and the
// admin user directory.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

type RegisterRequest struct {
	Name     string         `json:"name" validate:"required"`
	Email    string         `json:"email" validate:"required"`
	Password string         `json:"password" validate:"required"`
	Phone    string         `json:"phone"`
	Address  entity.Address `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string        `json:"accessToken"`
	TokenType   string        `json:"tokenType"`
	ExpiresAt   time.Time     `json:"expiresAt"`
	User        *UserResponse `json:"user"`
}

// UpdateProfileRequest has no role or email: neither changes through /me.
type UpdateProfileRequest struct {
	Name         *string         `json:"name" validate:"omitnil,min=1"`
	Phone        *string         `json:"phone"`
	ProfileImage *string         `json:"profileImage" validate:"omitnil,omitempty,url"`
	Address      *entity.Address `json:"address"`
	Password     *string         `json:"password"`
}

type UserListResponse struct {
	Users      []*UserResponse    `json:"users"`
	Pagination PaginationResponse `json:"pagination"`
}

type UserDetailResponse struct {
	*UserResponse
	Wishlist []*ProductResponse `json:"wishlist"`
	Cart     *CartResponse      `json:"cart"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindRequest(c, &req); err != nil {
		return response.AppError(c, err)
	}

	user, err := h.userUC.Register(c.Request().Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toUserResponse(user))
}

func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindRequest(c, &req); err != nil {
		return response.AppError(c, err)
	}

	output, err := h.userUC.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, LoginResponse{
		AccessToken: output.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   output.ExpiresAt,
		User:        toUserResponse(output.User),
	})
}

func (h *UserHandler) Me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.AppError(c, err)
	}

	user, err := h.userUC.Me(c.Request().Context(), userID)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.AppError(c, err)
	}

	var req UpdateProfileRequest
	if err := bindRequest(c, &req); err != nil {
		return response.AppError(c, err)
	}

	user, err := h.userUC.UpdateMe(c.Request().Context(), userID, usecase.UpdateProfileInput{
		Name:         req.Name,
		Phone:        req.Phone,
		ProfileImage: req.ProfileImage,
		Address:      req.Address,
		Password:     req.Password,
	})
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user))
}

// ListUsers serves GET /api/users?page=&limit=.
func (h *UserHandler) ListUsers(c echo.Context) error {
	page, err := queryInt(c, "page")
	if err != nil {
		return response.AppError(c, err)
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return response.AppError(c, err)
	}

	result, err := h.userUC.ListUsers(c.Request().Context(), page, limit)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, UserListResponse{
		Users:      toUserResponses(result.Users),
		Pagination: toPaginationResponse(result.Pagination),
	})
}

func (h *UserHandler) GetUser(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return response.AppError(c, err)
	}

	detail, err := h.userUC.GetUser(c.Request().Context(), userID)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, UserDetailResponse{
		UserResponse: toUserResponse(detail.User),
		Wishlist:     toProductResponses(detail.Wishlist),
		Cart:         toCartResponse(detail.Cart),
	})
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return response.AppError(c, err)
	}

	if err := h.userUC.DeleteUser(c.Request().Context(), userID); err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "User deleted"})
}
