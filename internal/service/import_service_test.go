package service

import (
	"strings"
	"testing"

	"github.com/lshigami/Procyon/internal/model"
)

const importHeader = "student_id,name,email,password\n"

func TestImportStudentsCSV(t *testing.T) {
	studentRepo := newFakeStudentRepo()
	svc := NewImportService(studentRepo)

	body := importHeader +
		"S-100,Alice,alice@example.com,secret\n" +
		"S-101,Bob,bob@example.com,\n"
	summary, err := svc.ImportStudents(1, "students.csv", strings.NewReader(body), int64(len(body)))
	if err != nil {
		t.Fatalf("ImportStudents: %v", err)
	}
	if summary.Total != 2 || summary.Imported != 2 || summary.Rejected != 0 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.BatchID == "" {
		t.Fatal("expected a batch id")
	}
	if len(studentRepo.students) != 2 {
		t.Fatalf("stored %d students, want 2", len(studentRepo.students))
	}
}

func TestImportStudentsPartialSuccess(t *testing.T) {
	studentRepo := newFakeStudentRepo()
	svc := NewImportService(studentRepo)

	body := importHeader +
		"S-100,Alice,alice@example.com,\n" +
		"S-101,,bob@example.com,\n" + // missing name
		"S-102,Carol,not-an-email,\n" // invalid email
	summary, err := svc.ImportStudents(1, "students.csv", strings.NewReader(body), int64(len(body)))
	if err != nil {
		t.Fatalf("ImportStudents: %v", err)
	}
	if summary.Imported != 1 || summary.Rejected != 2 {
		t.Fatalf("summary = %+v", summary)
	}
	// Row numbers match the spreadsheet view, header included.
	if summary.Errors[0].Row != 3 || summary.Errors[1].Row != 4 {
		t.Fatalf("errors = %+v", summary.Errors)
	}
}

func TestImportStudentsDuplicateEmailCaseInsensitive(t *testing.T) {
	studentRepo := newFakeStudentRepo()
	studentRepo.add(&model.Student{StudentID: "S-001", Name: "Ada", Email: "Ada@Example.com", CreatedByID: 1})
	svc := NewImportService(studentRepo)

	body := importHeader +
		"S-100,Clone,ada@example.com,\n" + // clashes with the DB, different case
		"S-101,First,new@example.com,\n" +
		"S-102,Second,NEW@example.com,\n" // clashes within the file
	summary, err := svc.ImportStudents(1, "students.csv", strings.NewReader(body), int64(len(body)))
	if err != nil {
		t.Fatalf("ImportStudents: %v", err)
	}
	if summary.Imported != 1 || summary.Rejected != 2 {
		t.Fatalf("summary = %+v", summary)
	}
	for _, rowErr := range summary.Errors {
		if rowErr.Reason != "Email already exists" {
			t.Fatalf("reason = %q, want %q", rowErr.Reason, "Email already exists")
		}
	}
}

func TestImportStudentsDuplicateStudentID(t *testing.T) {
	studentRepo := newFakeStudentRepo()
	studentRepo.add(&model.Student{StudentID: "S-001", Name: "Ada", Email: "ada@example.com", CreatedByID: 1})
	svc := NewImportService(studentRepo)

	body := importHeader + "S-001,Clone,clone@example.com,\n"
	summary, err := svc.ImportStudents(1, "students.csv", strings.NewReader(body), int64(len(body)))
	if err != nil {
		t.Fatalf("ImportStudents: %v", err)
	}
	if summary.Rejected != 1 || summary.Errors[0].Reason != "Student ID already exists" {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestImportStudentsUnsupportedFormat(t *testing.T) {
	svc := NewImportService(newFakeStudentRepo())
	if _, err := svc.ImportStudents(1, "students.pdf", strings.NewReader("x"), 1); err == nil {
		t.Fatal("expected an error for an unsupported file type")
	}
}

func TestImportStudentsOversizedUpload(t *testing.T) {
	svc := NewImportService(newFakeStudentRepo())
	if _, err := svc.ImportStudents(1, "students.csv", strings.NewReader(""), MaxImportBytes+1); err == nil {
		t.Fatal("expected an error for an oversized upload")
	}
}
