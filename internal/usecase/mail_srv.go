package usecase

import (
	"context"
	"fmt"
	"strings"

	"mailgate/internal/dto/request"
	"mailgate/internal/dto/response"
	"mailgate/pkg/mail"
	"mailgate/pkg/utils"

	"go.uber.org/zap"
)

// MailService mengirim email atas nama account atau alias terdaftar.
// Hasil kirim dipulangkan sebagai envelope; error hanya untuk request rusak.
type MailService interface {
	Send(ctx context.Context, req *request.SendEmailRequest) (*response.Envelope, error)
}

type mailService struct {
	sender SenderService
	mailer mail.Sender
	log    *zap.Logger
}

func NewMailService(sender SenderService, mailer mail.Sender, log *zap.Logger) MailService {
	return &mailService{
		sender: sender,
		mailer: mailer,
		log:    log,
	}
}

func (s *mailService) Send(ctx context.Context, req *request.SendEmailRequest) (*response.Envelope, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Send email validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	from := strings.TrimSpace(req.From)
	if from == "" {
		return nil, fmt.Errorf("validation failed: from address is required")
	}

	// Alamat "from" harus resolve ke account/alias aktif; kalau tidak,
	// hasilnya envelope error, bukan status HTTP
	resolved, err := s.sender.ResolveByEmail(ctx, from)
	if err != nil {
		s.log.Warn("Sender resolution failed", zap.String("from", from), zap.Error(err))
		return &response.Envelope{
			Status:  "error",
			Message: "Sender account or alias not found or inactive",
		}, nil
	}

	err = s.mailer.Send(ctx, mail.Message{
		HeaderFrom:   from,
		AuthEmail:    resolved.AuthEmail,
		AuthPassword: resolved.AuthPassword,
		To:           req.To,
		CC:           req.CC,
		BCC:          req.BCC,
		Subject:      req.Subject,
		Body:         req.Body,
		HTML:         false,
	})
	if err != nil {
		// Detail kegagalan SMTP cukup di log, jangan bocor ke klien
		s.log.Error("Failed to send email", zap.Error(err), zap.String("from", from))
		return &response.Envelope{
			Status:  "error",
			Message: "Failed to send email",
		}, nil
	}

	s.log.Info("Email sent", zap.String("from", from), zap.String("to", req.To))

	return &response.Envelope{
		Status:  "sent",
		Message: "Email sent successfully",
	}, nil
}
