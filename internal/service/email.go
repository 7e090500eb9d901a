package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendReviewDecisionNotification(ctx context.Context, email, name string, requestID int32, approved bool, note string) error {
	subject := fmt.Sprintf("Your Funding Request #%d Was Rejected", requestID)
	body := fmt.Sprintf(`Dear %s,

Your funding request #%d was reviewed and could not be approved.`, name, requestID)
	if note != "" {
		body += fmt.Sprintf("\n\nReviewer note: %s", note)
	}
	if approved {
		subject = fmt.Sprintf("Your Funding Request #%d Was Approved", requestID)
		body = fmt.Sprintf(`Dear %s,

Good news: your funding request #%d was approved and is now open for sponsorship by donors.`, name, requestID)
	}
	body += "\n\nBest regards,\nThe CourseFund Team"
	return s.send(email, name, subject, body)
}

func (s *emailService) SendRequestFundedNotification(ctx context.Context, email, name string, requestID int32, fundedCents int64) error {
	subject := fmt.Sprintf("Your Funding Request #%d Is Fully Funded", requestID)
	body := fmt.Sprintf(`Dear %s,

Your funding request #%d has reached its goal of $%.2f. We will be in touch about next steps for enrolling in your course.

Best regards,
The CourseFund Team`, name, requestID, float64(fundedCents)/100.0)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendSponsorshipReceipt(ctx context.Context, email, name string, requestID int32, amountCents int64) error {
	subject := "Thank You for Your Sponsorship"
	body := fmt.Sprintf(`Dear %s,

Thank you for contributing $%.2f toward funding request #%d. Your generosity helps a student access education they could not otherwise afford.

Best regards,
The CourseFund Team`, name, float64(amountCents)/100.0, requestID)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendAdminNotification(ctx context.Context, adminEmail, subject, message string) error {
	return s.send(adminEmail, "Admin", subject, message)
}
