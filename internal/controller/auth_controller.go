package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/itdept/dutyreport/internal/auth"
	"github.com/itdept/dutyreport/internal/dto"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	store *auth.Store
}

func NewAuthController(store *auth.Store) *AuthController {
	return &AuthController{store: store}
}

// Login godoc
// @Summary Authenticate against the static user list
// @Description Plaintext lookup in the configured users file. No sessions or tokens are issued; the client keeps the identity in memory.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Username and password"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed body"
// @Failure 401 {object} dto.ErrorResponse "Unknown user or wrong password"
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return
	}

	user, ok := c.store.Authenticate(req.Username, req.Password)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "اسم المستخدم أو كلمة السر غير صحيحة"})
		return
	}

	var resp dto.LoginResponse
	if err := copier.Copy(&resp, user); err != nil {
		log.Error().Err(err).Msg("Login: failed to copy user to response")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal Server Error", Error: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
