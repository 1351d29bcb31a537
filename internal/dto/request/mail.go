package request

type SendEmailRequest struct {
	From    string  `json:"from" validate:"required"`
	To      string  `json:"to" validate:"required"`
	Subject string  `json:"subject"`
	Body    string  `json:"body"`
	CC      *string `json:"cc,omitempty"`
	BCC     *string `json:"bcc,omitempty"`
}
