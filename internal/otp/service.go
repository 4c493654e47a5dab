package otp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/neocodenexus/vendorx-backend/pkg/config"
	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
	"github.com/neocodenexus/vendorx-backend/pkg/mail"
	"github.com/neocodenexus/vendorx-backend/pkg/otp"
)

const (
	otpEmailSubject        = "Your One-Time Password (OTP)"
	invitationEmailSubject = "Your Vendor Onboarding Invitation"
)

// Service issues and verifies one-time passwords and sends vendor-facing
// mail. OTPs and invitations only go to addresses registered as vendors.
type Service interface {
	IssueOTP(ctx context.Context, input IssueRequest) (*DetailResponse, error)
	VerifyOTP(ctx context.Context, input VerifyRequest) (*DetailResponse, error)
	SendMail(ctx context.Context, input SendMailRequest) (*DetailResponse, error)
	SendInvitation(ctx context.Context, input InvitationRequest) (*DetailResponse, error)
}

type vendorEmails interface {
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
}

type service struct {
	store   otp.Store
	mailer  mail.Sender
	vendors vendorEmails
	cfg     config.OTPConfig
}

func NewService(store otp.Store, mailer mail.Sender, vendors vendorEmails, cfg config.OTPConfig) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("otp store is required")
	}
	if mailer == nil {
		return nil, fmt.Errorf("mail sender is required")
	}
	if vendors == nil {
		return nil, fmt.Errorf("vendor email source is required")
	}
	return &service{store: store, mailer: mailer, vendors: vendors, cfg: cfg}, nil
}

func (s *service) IssueOTP(ctx context.Context, input IssueRequest) (*DetailResponse, error) {
	email := normalizeEmail(input.Email)
	if err := s.requireVendorEmail(ctx, email, "email is not registered as a vendor; OTP not sent"); err != nil {
		return nil, err
	}

	code, err := otp.GenerateCode(s.cfg.CodeLength)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate otp")
	}
	if err := s.store.Put(ctx, email, code, s.cfg.TTL); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store otp")
	}

	msg := mail.Message{
		To:      email,
		Subject: otpEmailSubject,
		Body:    otpEmailBody(code),
		HTML:    true,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send otp email")
	}
	return &DetailResponse{Detail: "OTP sent to recipient email."}, nil
}

func (s *service) VerifyOTP(ctx context.Context, input VerifyRequest) (*DetailResponse, error) {
	email := normalizeEmail(input.Email)

	ok, err := s.store.Verify(ctx, email, input.Code)
	if err != nil {
		if errors.Is(err, otp.ErrExpired) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "OTP has expired")
		}
		if errors.Is(err, otp.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "OTP not found or already used")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verify otp")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid OTP")
	}
	return &DetailResponse{Detail: "OTP verified successfully."}, nil
}

func (s *service) SendMail(ctx context.Context, input SendMailRequest) (*DetailResponse, error) {
	msg := mail.Message{
		To:      normalizeEmail(input.Email),
		Subject: input.Subject,
		Body:    input.Body,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send email")
	}
	return &DetailResponse{Detail: "Email sent."}, nil
}

func (s *service) SendInvitation(ctx context.Context, input InvitationRequest) (*DetailResponse, error) {
	email := normalizeEmail(input.Email)
	if err := s.requireVendorEmail(ctx, email, "email is not registered as a vendor; invitation not sent"); err != nil {
		return nil, err
	}

	msg := mail.Message{
		To:      email,
		Subject: invitationEmailSubject,
		Body:    invitationEmailBody(input.Link),
		HTML:    true,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send invitation email")
	}
	return &DetailResponse{Detail: "Invitation email sent."}, nil
}

func (s *service) requireVendorEmail(ctx context.Context, email, message string) error {
	exists, err := s.vendors.ExistsByEmail(ctx, email, 0)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup vendor email")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeValidation, message)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func otpEmailBody(code string) string {
	return fmt.Sprintf(`<html>
  <body>
    <p>Your verification code is: <strong>%s</strong></p>
    <p>This code will expire shortly. If you did not request this, you can ignore this email.</p>
  </body>
</html>`, code)
}

func invitationEmailBody(link string) string {
	return fmt.Sprintf(`<html>
  <body>
    <p>You have been invited to complete your vendor onboarding.</p>
    <p>
      Please click the link below to continue:<br/>
      <a href="%s" rel="noopener noreferrer">Continue to Vendor Onboarding</a>
    </p>
    <p>If you did not expect this invitation, you can ignore this email.</p>
  </body>
</html>`, link)
}
