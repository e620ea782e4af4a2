package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Procyon/internal/controller"
	"github.com/lshigami/Procyon/internal/dto"
	"github.com/lshigami/Procyon/internal/middleware"
	"github.com/lshigami/Procyon/internal/service"
)

type ExamController struct {
	examService service.ExamService
}

func NewExamController(examService service.ExamService) *ExamController {
	return &ExamController{examService: examService}
}

// CreateExam godoc
// @Summary Create an exam
// @Description Create an exam with its full question list. Titles are unique per admin.
// @Tags admin-exams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param exam body dto.ExamCreateDTO true "Exam definition"
// @Success 201 {object} dto.ExamResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Validation failure or duplicate title"
// @Failure 401 {object} dto.ErrorResponse
// @Router /exam [post]
func (ctrl *ExamController) CreateExam(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	var req dto.ExamCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := ctrl.examService.CreateExam(principal.UserID, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateExam godoc
// @Summary Update an exam
// @Description Update exam metadata and optionally replace its questions. Only allowed strictly before the exam starts.
// @Tags admin-exams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Exam ID"
// @Param exam body dto.ExamUpdateDTO true "Fields to update"
// @Success 200 {object} dto.ExamResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Exam already started"
// @Failure 404 {object} dto.ErrorResponse
// @Router /exam/{id} [put]
func (ctrl *ExamController) UpdateExam(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)
	examID, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.ExamUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := ctrl.examService.UpdateExam(principal.UserID, examID, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteExam godoc
// @Summary Delete an exam
// @Description Permanently delete an exam together with its questions and all student results.
// @Tags admin-exams
// @Security BearerAuth
// @Produce json
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /exam/{id}/delete [delete]
func (ctrl *ExamController) DeleteExam(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)
	examID, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.examService.DeleteExam(principal.UserID, examID); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Exam deleted"})
}

// ToggleActive godoc
// @Summary Toggle exam visibility
// @Description Flip the is_active flag. Inactive exams are invisible to students.
// @Tags admin-exams
// @Security BearerAuth
// @Produce json
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.ExamResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /exam/{id}/toggle [patch]
func (ctrl *ExamController) ToggleActive(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)
	examID, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}

	resp, err := ctrl.examService.ToggleActive(principal.UserID, examID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetExam godoc
// @Summary Get an exam
// @Description Full exam view including questions with correct options.
// @Tags admin-exams
// @Security BearerAuth
// @Produce json
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.ExamResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /exam/{id} [get]
func (ctrl *ExamController) GetExam(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)
	examID, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}

	resp, err := ctrl.examService.GetExam(principal.UserID, examID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListExams godoc
// @Summary List own exams
// @Tags admin-exams
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.ExamSummaryDTO
// @Router /exam [get]
func (ctrl *ExamController) ListExams(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	resp, err := ctrl.examService.ListExams(principal.UserID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListResults godoc
// @Summary List results for an exam
// @Description All student attempts for the exam, completed and in progress.
// @Tags admin-exams
// @Security BearerAuth
// @Produce json
// @Param id path int true "Exam ID"
// @Success 200 {array} dto.ExamResultRowDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/exams/{id}/results [get]
func (ctrl *ExamController) ListResults(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)
	examID, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}

	resp, err := ctrl.examService.ListResults(principal.UserID, examID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
