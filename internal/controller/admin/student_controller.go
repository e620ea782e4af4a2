package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Procyon/internal/controller"
	"github.com/lshigami/Procyon/internal/dto"
	"github.com/lshigami/Procyon/internal/middleware"
	"github.com/lshigami/Procyon/internal/service"
)

type StudentController struct {
	studentService      service.StudentService
	importService       service.ImportService
	notificationService service.NotificationService
}

func NewStudentController(
	studentService service.StudentService,
	importService service.ImportService,
	notificationService service.NotificationService,
) *StudentController {
	return &StudentController{
		studentService:      studentService,
		importService:       importService,
		notificationService: notificationService,
	}
}

// CreateStudent godoc
// @Summary Create a student account
// @Description When password is omitted the student ID is used as the initial password.
// @Tags admin-students
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param student body dto.StudentCreateDTO true "Student account"
// @Success 201 {object} dto.StudentResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Validation failure or duplicate student"
// @Router /admin/students [post]
func (ctrl *StudentController) CreateStudent(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	var req dto.StudentCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := ctrl.studentService.CreateStudent(principal.UserID, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListStudents godoc
// @Summary List own students
// @Tags admin-students
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.StudentResponseDTO
// @Router /admin/students [get]
func (ctrl *StudentController) ListStudents(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	resp, err := ctrl.studentService.ListStudents(principal.UserID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ToggleBlock godoc
// @Summary Block or unblock a student
// @Description Flip the student's blocked state. Unblocking clears the block reason but keeps the lifetime violation counter.
// @Tags admin-students
// @Security BearerAuth
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.StudentResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/students/{id}/toggle-block [patch]
func (ctrl *StudentController) ToggleBlock(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)
	studentID, ok := controller.ParseID(c, "id")
	if !ok {
		return
	}

	resp, err := ctrl.studentService.ToggleBlock(principal.UserID, studentID)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ImportStudents godoc
// @Summary Import students from a spreadsheet
// @Description Accepts an .xlsx, .xls or .csv upload with columns StudentID, Name, Email, Password. Valid rows are imported even when other rows fail.
// @Tags admin-students
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Spreadsheet file"
// @Success 200 {object} dto.ImportSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Missing file, unsupported format or oversized upload"
// @Router /admin/import-students [post]
func (ctrl *StudentController) ImportStudents(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing file upload", Details: []string{err.Error()}})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Could not read uploaded file"})
		return
	}
	defer file.Close()

	summary, err := ctrl.importService.ImportStudents(principal.UserID, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		// Whole-file failures (bad format, oversized) are client errors.
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// SendExamLink godoc
// @Summary Email exam links to students
// @Description Sends each recipient a personalized exam link with a one-time password valid until the exam window closes. Delivery failures are reported per recipient without aborting the batch.
// @Tags admin-students
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SendExamLinkDTO true "Exam and optional recipient list"
// @Success 200 {object} dto.SendExamLinkResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /admin/send-exam-link [post]
func (ctrl *StudentController) SendExamLink(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)

	var req dto.SendExamLinkDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := ctrl.notificationService.SendExamLink(principal.UserID, req)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
