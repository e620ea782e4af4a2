package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lshigami/Procyon/config"
	"github.com/lshigami/Procyon/internal/dto"
	"github.com/lshigami/Procyon/internal/model"
	"github.com/lshigami/Procyon/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// NotificationService sends exam links to students. Each recipient gets a
// freshly generated temporary exam password, valid until the exam's
// availability window closes.
type NotificationService interface {
	SendExamLink(adminID uint, req dto.SendExamLinkDTO) (*dto.SendExamLinkResponseDTO, error)
}

type notificationService struct {
	examRepo    repository.ExamRepository
	studentRepo repository.StudentRepository
	mailer      MailerService
	cfg         *config.Config
}

func NewNotificationService(
	examRepo repository.ExamRepository,
	studentRepo repository.StudentRepository,
	mailer MailerService,
	cfg *config.Config,
) NotificationService {
	return &notificationService{examRepo: examRepo, studentRepo: studentRepo, mailer: mailer, cfg: cfg}
}

func (s *notificationService) SendExamLink(adminID uint, req dto.SendExamLinkDTO) (*dto.SendExamLinkResponseDTO, error) {
	exam, err := s.examRepo.FindByID(req.ExamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching exam: %w", err)
	}
	if exam.CreatedByID != adminID {
		return nil, ErrNotFound
	}

	var students []model.Student
	if len(req.StudentIDs) > 0 {
		students, err = s.studentRepo.FindByIDs(req.StudentIDs)
	} else {
		students, err = s.studentRepo.FindAllByOwner(adminID)
	}
	if err != nil {
		log.Error().Err(err).Msg("SendExamLink: failed to load recipients")
		return nil, fmt.Errorf("error fetching students: %w", err)
	}

	resp := &dto.SendExamLinkResponseDTO{}
	var mails []OutboundMail
	for i := range students {
		student := &students[i]
		if student.CreatedByID != adminID {
			continue
		}

		tempPassword, err := s.assignTempPassword(student, exam)
		if err != nil {
			resp.Failed++
			resp.Failures = append(resp.Failures, dto.MailFailureDTO{Email: student.Email, Reason: err.Error()})
			continue
		}
		mails = append(mails, s.renderExamLinkMail(student, exam, tempPassword))
	}

	report := s.mailer.SendBulk(mails)
	resp.Sent = report.Sent
	for _, f := range report.Failures {
		resp.Failed++
		resp.Failures = append(resp.Failures, dto.MailFailureDTO{Email: f.Email, Reason: f.Reason})
	}

	log.Info().
		Uint("examID", exam.ID).
		Int("sent", resp.Sent).
		Int("failed", resp.Failed).
		Msg("Exam link dispatch finished")
	return resp, nil
}

// assignTempPassword stores a hashed temporary credential on the student and
// returns the plaintext for the outgoing mail.
func (s *notificationService) assignTempPassword(student *model.Student, exam *model.Exam) (string, error) {
	tempPassword := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("could not hash temporary password: %w", err)
	}
	hashed := string(hash)
	expiry := exam.AvailabilityEnd()
	student.TempExamPassword = &hashed
	student.TempPasswordExpiry = &expiry
	if err := s.studentRepo.Update(student); err != nil {
		return "", fmt.Errorf("could not store temporary password: %w", err)
	}
	return tempPassword, nil
}

func (s *notificationService) renderExamLinkMail(student *model.Student, exam *model.Exam, tempPassword string) OutboundMail {
	link := fmt.Sprintf("%s/exam/%d", s.cfg.Mail.PortalURL, exam.ID)
	body := fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>You have been invited to the exam <b>%s</b>.</p>
		<ul>
			<li>Starts: %s</li>
			<li>Time allowed: %d minutes</li>
		</ul>
		<p>Log in with your student ID <b>%s</b> and the one-time password <b>%s</b>:</p>
		<p><a href="%s">%s</a></p>
		<p>The one-time password expires when the exam window closes.</p>`,
		student.Name,
		exam.Title,
		exam.StartTime.Format("Mon, 02 Jan 2006 15:04 MST"),
		exam.Duration,
		student.StudentID,
		tempPassword,
		link, link,
	)
	return OutboundMail{
		ToName:   student.Name,
		ToEmail:  student.Email,
		Subject:  fmt.Sprintf("Exam invitation: %s", exam.Title),
		HTMLBody: body,
	}
}
