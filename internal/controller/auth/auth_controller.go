package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Procyon/internal/controller"
	"github.com/lshigami/Procyon/internal/dto"
	"github.com/lshigami/Procyon/internal/service"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// LoginAdmin godoc
// @Summary Admin login
// @Description Authenticate an administrator and issue a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.AdminLoginDTO true "Admin credentials"
// @Success 200 {object} dto.LoginResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login/admin [post]
func (ctrl *AuthController) LoginAdmin(c *gin.Context) {
	var req dto.AdminLoginDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := ctrl.authService.LoginAdmin(req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LoginStudent godoc
// @Summary Student login
// @Description Authenticate a student with the permanent password or an unexpired temporary exam password
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.StudentLoginDTO true "Student credentials"
// @Success 200 {object} dto.LoginResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account blocked"
// @Router /auth/login/student [post]
func (ctrl *AuthController) LoginStudent(c *gin.Context) {
	var req dto.StudentLoginDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := ctrl.authService.LoginStudent(req)
	if err != nil {
		log.Warn().Err(err).Str("studentID", req.StudentID).Msg("Student login rejected")
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
