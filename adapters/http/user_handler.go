package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	userUC "github.com/khoahotran/profile-api/internal/application/usecase/user"
	"github.com/khoahotran/profile-api/pkg/apperror"
	"github.com/khoahotran/profile-api/pkg/logger"
)

const UserRemovedMessage = "User Removed"

type UserHandler struct {
	registerUseCase *userUC.RegisterUserUseCase
	listUseCase     *userUC.ListUsersUseCase
	getUseCase      *userUC.GetUserUseCase
	updateUseCase   *userUC.UpdateUserUseCase
	deleteUseCase   *userUC.DeleteUserUseCase
	logger          logger.Logger
}

func NewUserHandler(
	registerUC *userUC.RegisterUserUseCase,
	listUC *userUC.ListUsersUseCase,
	getUC *userUC.GetUserUseCase,
	updateUC *userUC.UpdateUserUseCase,
	deleteUC *userUC.DeleteUserUseCase,
	log logger.Logger,
) *UserHandler {
	return &UserHandler{
		registerUseCase: registerUC,
		listUseCase:     listUC,
		getUseCase:      getUC,
		updateUseCase:   updateUC,
		deleteUseCase:   deleteUC,
		logger:          log,
	}
}

func noProfile(raw string) *apperror.AppError {
	return apperror.NewAppError(apperror.ErrNotFound, userUC.NoProfileMessage, "malformed user id '"+raw+"'", nil)
}

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterUserRequest
	if err := bindJSON(c, &req, registerMessages); err != nil {
		c.Error(err)
		return
	}

	output, err := h.registerUseCase.Execute(c.Request.Context(), userUC.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.logger.Info("User registered", zap.String("user_id", output.User.ID.String()))
	c.JSON(http.StatusCreated, TokenResponse{Token: output.Token})
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.listUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToUserDTOs(users))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		c.Error(noProfile(raw))
		return
	}

	u, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToUserDTO(u))
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := bindJSON(c, &req, updateMessages); err != nil {
		c.Error(err)
		return
	}

	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		c.Error(noProfile(raw))
		return
	}

	u, err := h.updateUseCase.Execute(c.Request.Context(), userUC.UpdateUserInput{
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToUserDTO(u))
}

// DeleteUser reports success for ids that match nothing, including ids that
// are not valid UUIDs and so cannot match anything.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusOK, MessageResponse{Msg: UserRemovedMessage})
		return
	}

	if err := h.deleteUseCase.Execute(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Msg: UserRemovedMessage})
}
