package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/lshigami/Procyon/config"
	"github.com/rs/zerolog/log"
	gomail "gopkg.in/gomail.v2"
)

// OutboundMail is one rendered message ready for delivery.
type OutboundMail struct {
	ToName   string
	ToEmail  string
	Subject  string
	HTMLBody string
}

// MailFailure is one undeliverable recipient within a bulk send.
type MailFailure struct {
	Email  string
	Reason string
}

// BulkSendReport summarizes a sequential bulk dispatch.
type BulkSendReport struct {
	Sent     int
	Failures []MailFailure
}

// MailerService delivers mail through the transactional API first and falls
// back to direct SMTP. Bulk sends are sequential with a fixed inter-message
// delay (the third-party API is rate-limited); one failed recipient never
// aborts the batch.
type MailerService interface {
	SendBulk(mails []OutboundMail) BulkSendReport
}

// mailSender is the single-message delivery seam; the bulk loop is tested
// against a fake implementation.
type mailSender interface {
	Send(mail OutboundMail) error
}

type mailerService struct {
	sender mailSender
	delay  time.Duration
}

func NewMailerService(cfg *config.Config) MailerService {
	return &mailerService{
		sender: &fallbackSender{
			cfg:    cfg.Mail,
			client: &http.Client{Timeout: 10 * time.Second},
		},
		delay: time.Duration(cfg.Mail.SendDelayMS) * time.Millisecond,
	}
}

func (s *mailerService) SendBulk(mails []OutboundMail) BulkSendReport {
	var report BulkSendReport
	for i, mail := range mails {
		if i > 0 && s.delay > 0 {
			time.Sleep(s.delay)
		}
		if err := s.sender.Send(mail); err != nil {
			log.Warn().Err(err).Str("to", mail.ToEmail).Msg("Mail delivery failed")
			report.Failures = append(report.Failures, MailFailure{Email: mail.ToEmail, Reason: err.Error()})
			continue
		}
		report.Sent++
	}
	return report
}

// fallbackSender tries the HTTP transactional-mail API, then SMTP.
type fallbackSender struct {
	cfg    config.Mail
	client *http.Client
}

func (f *fallbackSender) Send(mail OutboundMail) error {
	if f.cfg.APIKey != "" && f.cfg.APIURL != "" {
		if err := f.sendViaAPI(mail); err == nil {
			return nil
		} else {
			log.Warn().Err(err).Str("to", mail.ToEmail).Msg("Transactional API send failed, falling back to SMTP")
		}
	}
	return f.sendViaSMTP(mail)
}

func (f *fallbackSender) sendViaAPI(mail OutboundMail) error {
	payload := map[string]interface{}{
		"sender": map[string]string{"name": f.cfg.SenderName, "email": f.cfg.SenderEmail},
		"to": []map[string]string{
			{"name": mail.ToName, "email": mail.ToEmail},
		},
		"subject":     mail.Subject,
		"htmlContent": mail.HTMLBody,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, f.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", f.cfg.APIKey)

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("transactional API returned status %d", resp.StatusCode)
	}
	return nil
}

func (f *fallbackSender) sendViaSMTP(mail OutboundMail) error {
	if f.cfg.SMTPHost == "" {
		return fmt.Errorf("no SMTP host configured")
	}
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", f.cfg.SenderEmail, f.cfg.SenderName)
	msg.SetAddressHeader("To", mail.ToEmail, mail.ToName)
	msg.SetHeader("Subject", mail.Subject)
	msg.SetBody("text/html", mail.HTMLBody)

	dialer := gomail.NewDialer(f.cfg.SMTPHost, f.cfg.SMTPPort, f.cfg.SMTPUser, f.cfg.SMTPPass)
	return dialer.DialAndSend(msg)
}
