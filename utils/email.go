package utils

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer sends transactional email through SendGrid
type SendGridMailer struct {
	APIKey   string
	FromName string
	From     string
}

// NewSendGridMailer returns a mailer, or an error when no API key is configured.
func NewSendGridMailer(apiKey, from string) (*SendGridMailer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("SENDGRID_API_KEY is not set in environment variables")
	}
	return &SendGridMailer{APIKey: apiKey, FromName: "DecorDream", From: from}, nil
}

// SendEmail sends an email using SendGrid
func (m *SendGridMailer) SendEmail(toName, toEmail, subject, textContent, htmlContent string) error {
	from := mail.NewEmail(m.FromName, m.From)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, textContent, htmlContent)
	client := sendgrid.NewSendClient(m.APIKey)

	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}

	if response.StatusCode >= 400 {
		log.Printf("SendGrid API Error: Status Code %d, Body: %s", response.StatusCode, response.Body)
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	log.Printf("Email sent successfully to %s. Status Code: %d", toEmail, response.StatusCode)
	return nil
}
