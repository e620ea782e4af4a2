package student

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Procyon/internal/controller"
	"github.com/lshigami/Procyon/internal/dto"
	"github.com/lshigami/Procyon/internal/middleware"
	"github.com/lshigami/Procyon/internal/service"
)

type ExamController struct {
	studentExamService service.StudentExamService
	submissionService  service.SubmissionService
	violationService   service.ViolationService
}

func NewExamController(
	studentExamService service.StudentExamService,
	submissionService service.SubmissionService,
	violationService service.ViolationService,
) *ExamController {
	return &ExamController{
		studentExamService: studentExamService,
		submissionService:  submissionService,
		violationService:   violationService,
	}
}

// ListExams godoc
// @Summary List exams grouped by attempt state
// @Description Active exams categorized as upcoming, available, ended or completed for the calling student.
// @Tags student-exams
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.CategorizedExamsDTO
// @Router /student/exams [get]
func (ctrl *ExamController) ListExams(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	resp, err := ctrl.studentExamService.ListExams(principal.UserID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CheckAccess godoc
// @Summary Check exam access
// @Description Non-mutating preview of the timing gate's decision for the calling student.
// @Tags student-exams
// @Security BearerAuth
// @Produce json
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.AccessCheckDTO
// @Failure 403 {object} dto.ErrorResponse "Exam inactive"
// @Failure 404 {object} dto.ErrorResponse
// @Router /exam/{id}/check-access [post]
func (ctrl *ExamController) CheckAccess(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)
	examID, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}

	resp, err := ctrl.studentExamService.CheckAccess(principal.UserID, examID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CheckExam godoc
// @Summary Check exam access by request body
// @Description Same decision as the path-parameter variant, for clients that post the exam id in the body.
// @Tags student-exams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CheckExamDTO true "Exam to check"
// @Success 200 {object} dto.AccessCheckDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /student/check-exam [post]
func (ctrl *ExamController) CheckExam(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	var req dto.CheckExamDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := ctrl.studentExamService.CheckAccess(principal.UserID, req.ExamID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StartExam godoc
// @Summary Start or resume an exam attempt
// @Description Starting is idempotent: a second call returns the same attempt with its original deadline. The question payload never includes correct options.
// @Tags student-exams
// @Security BearerAuth
// @Produce json
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.StartExamDTO
// @Failure 403 {object} dto.AccessCheckDTO "Outside the availability window"
// @Failure 404 {object} dto.ErrorResponse
// @Router /exam/{id}/start [post]
func (ctrl *ExamController) StartExam(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)
	examID, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}

	resp, err := ctrl.studentExamService.StartExam(principal.UserID, examID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitExam godoc
// @Summary Submit an exam attempt
// @Description Scores the submitted answers and finalizes the attempt. Rejected once the attempt deadline has passed beyond a small clock-skew grace.
// @Tags student-exams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Exam ID"
// @Param submission body dto.SubmitExamDTO true "Submitted answers"
// @Success 200 {object} dto.ResultDetailDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Already completed, never started, or past the deadline"
// @Failure 404 {object} dto.ErrorResponse
// @Router /exam/{id}/submit [post]
func (ctrl *ExamController) SubmitExam(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)
	examID, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.SubmitExamDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := ctrl.submissionService.SubmitExam(principal.UserID, examID, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReportViolation godoc
// @Summary Report a proctoring violation
// @Description Records a violation event. Reaching the per-exam threshold escalates the student's lifetime counter and may block the account.
// @Tags student-exams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Exam ID"
// @Param violation body dto.ViolationReportDTO true "Violation event"
// @Success 200 {object} dto.ViolationAckDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /exam/{id}/violation [post]
func (ctrl *ExamController) ReportViolation(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)
	examID, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.ViolationReportDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := ctrl.violationService.ReportViolation(principal.UserID, examID, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetResult godoc
// @Summary Get own result for an exam
// @Description Only available once the attempt is completed. Each read is recorded for auditing.
// @Tags student-exams
// @Security BearerAuth
// @Produce json
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.ResultDetailDTO
// @Failure 403 {object} dto.ErrorResponse "Attempt not completed"
// @Failure 404 {object} dto.ErrorResponse
// @Router /exam/{id}/result [get]
func (ctrl *ExamController) GetResult(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)
	examID, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}

	resp, err := ctrl.studentExamService.GetResult(principal.UserID, examID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
