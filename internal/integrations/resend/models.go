package resend

// Email письмо для отправки через Resend
type Email struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendResponse ответ Resend на отправку письма
type SendResponse struct {
	ID string `json:"id"`
}

// ErrorResponse модель ошибки Resend
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}
