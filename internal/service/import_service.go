package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lshigami/Procyon/internal/dto"
	"github.com/lshigami/Procyon/internal/model"
	"github.com/lshigami/Procyon/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
)

// MaxImportBytes caps the uploaded spreadsheet size.
const MaxImportBytes int64 = 5 * 1024 * 1024

// importRow is one parsed spreadsheet line. Expected column order:
// student id, name, email, optional initial password.
type importRow struct {
	StudentID string `validate:"required"`
	Name      string `validate:"required"`
	Email     string `validate:"required,email"`
	Password  string
}

// ImportService bulk-creates student accounts from an uploaded spreadsheet.
// Validation happens fully in memory first; valid rows are inserted even when
// others are rejected (partial success is the designed behavior).
type ImportService interface {
	ImportStudents(adminID uint, filename string, file io.Reader, size int64) (*dto.ImportSummaryDTO, error)
}

type importService struct {
	studentRepo repository.StudentRepository
	validate    *validator.Validate
}

func NewImportService(studentRepo repository.StudentRepository) ImportService {
	return &importService{studentRepo: studentRepo, validate: validator.New()}
}

func (s *importService) ImportStudents(adminID uint, filename string, file io.Reader, size int64) (*dto.ImportSummaryDTO, error) {
	if size > MaxImportBytes {
		return nil, fmt.Errorf("file exceeds the %d MB upload limit", MaxImportBytes/(1024*1024))
	}

	rows, err := parseRows(filename, file)
	if err != nil {
		return nil, err
	}

	existingEmails, err := s.studentRepo.ExistingEmailsLower()
	if err != nil {
		log.Error().Err(err).Msg("ImportStudents: failed to load existing emails")
		return nil, fmt.Errorf("error loading existing students: %w", err)
	}
	existingIDs, err := s.studentRepo.ExistingStudentIDs()
	if err != nil {
		log.Error().Err(err).Msg("ImportStudents: failed to load existing student ids")
		return nil, fmt.Errorf("error loading existing students: %w", err)
	}

	summary := &dto.ImportSummaryDTO{
		BatchID: uuid.NewString(),
		Total:   len(rows),
	}
	seenEmails := make(map[string]bool, len(rows))
	seenIDs := make(map[string]bool, len(rows))
	var toCreate []model.Student

	for i, row := range rows {
		// +2: 1-based rows plus the header line.
		rowNum := i + 2
		reject := func(reason string) {
			summary.Errors = append(summary.Errors, dto.ImportRowErrorDTO{Row: rowNum, Reason: reason})
		}

		if err := s.validate.Struct(row); err != nil {
			reject(rowValidationReason(err))
			continue
		}

		emailKey := strings.ToLower(row.Email)
		if existingEmails[emailKey] || seenEmails[emailKey] {
			reject("Email already exists")
			continue
		}
		if existingIDs[row.StudentID] || seenIDs[row.StudentID] {
			reject("Student ID already exists")
			continue
		}

		password := row.Password
		if password == "" {
			password = row.StudentID
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			reject("could not hash password")
			continue
		}

		seenEmails[emailKey] = true
		seenIDs[row.StudentID] = true
		toCreate = append(toCreate, model.Student{
			StudentID:   row.StudentID,
			Name:        row.Name,
			Email:       row.Email,
			Password:    string(hash),
			CreatedByID: adminID,
		})
	}

	if err := s.studentRepo.CreateBatch(toCreate); err != nil {
		log.Error().Err(err).Int("rows", len(toCreate)).Msg("ImportStudents: batch insert failed")
		return nil, fmt.Errorf("database error inserting students: %w", err)
	}

	summary.Imported = len(toCreate)
	summary.Rejected = len(summary.Errors)
	log.Info().
		Str("batchID", summary.BatchID).
		Int("total", summary.Total).
		Int("imported", summary.Imported).
		Int("rejected", summary.Rejected).
		Msg("Student import finished")
	return summary, nil
}

// parseRows reads the data rows of the upload, skipping the header line.
func parseRows(filename string, file io.Reader) ([]importRow, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx", ".xls":
		return parseExcelRows(file)
	case ".csv":
		return parseCSVRows(file)
	default:
		return nil, fmt.Errorf("unsupported file type %q: expected .xlsx, .xls or .csv", ext)
	}
}

func parseExcelRows(file io.Reader) ([]importRow, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("could not read spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", sheet, err)
	}
	if len(raw) <= 1 {
		return nil, nil
	}
	rows := make([]importRow, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		rows = append(rows, cellsToRow(cells))
	}
	return rows, nil
}

func parseCSVRows(file io.Reader) ([]importRow, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // password column is optional
	raw, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse csv: %w", err)
	}
	if len(raw) <= 1 {
		return nil, nil
	}
	rows := make([]importRow, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		rows = append(rows, cellsToRow(cells))
	}
	return rows, nil
}

func cellsToRow(cells []string) importRow {
	get := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}
	return importRow{
		StudentID: get(0),
		Name:      get(1),
		Email:     get(2),
		Password:  get(3),
	}
}

func rowValidationReason(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("missing %s", strings.ToLower(fe.Field()))
		case "email":
			return "invalid email address"
		}
	}
	return "invalid row"
}
