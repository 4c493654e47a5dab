package otp

type IssueRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"otp" validate:"required"`
}

type SendMailRequest struct {
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
}

type InvitationRequest struct {
	Email string `json:"email" validate:"required,email"`
	Link  string `json:"link" validate:"required,url"`
}

// DetailResponse is the human-readable outcome envelope shared by the OTP
// and mail endpoints.
type DetailResponse struct {
	Detail string `json:"detail"`
}
