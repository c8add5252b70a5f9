package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"carrental-portal/internal/domain"
	"carrental-portal/internal/logger"
)

// Mail is a rendered decision email
type Mail struct {
	ToName    string
	ToEmail   string
	Subject   string
	PlainText string
	HTML      string
}

// mailSender delivers a rendered mail
type mailSender func(ctx context.Context, m Mail) error

type emailService struct {
	fromEmail string
	fromName  string
	send      mailSender
}

// NewEmailService returns a SendGrid-backed EmailService. With an empty API
// key mails are rendered and logged but not sent.
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	s := &emailService{fromEmail: fromEmail, fromName: fromName}
	if apiKey == "" {
		s.send = logOnlySender
	} else {
		s.send = s.sendGridSender(apiKey)
	}
	return s
}

func (s *emailService) SendRentalDecision(ctx context.Context, req *domain.RentalRequest) error {
	return s.deliver(ctx, "SendRentalDecision", RentalDecisionMail(req))
}

func (s *emailService) SendListingDecision(ctx context.Context, req *domain.CarListingRequest) error {
	return s.deliver(ctx, "SendListingDecision", ListingDecisionMail(req))
}

func (s *emailService) deliver(ctx context.Context, op string, m Mail) error {
	if m.ToEmail == "" {
		return fmt.Errorf("%w: no recipient address", domain.ErrValidation)
	}
	logger.ExternalServiceCall("SendGrid", op, "to", m.ToEmail, "subject", m.Subject)
	err := s.send(ctx, m)
	logger.ExternalServiceResult("SendGrid", op, err, "to", m.ToEmail)
	return err
}

func (s *emailService) sendGridSender(apiKey string) mailSender {
	client := sendgrid.NewSendClient(apiKey)
	return func(ctx context.Context, m Mail) error {
		from := mail.NewEmail(s.fromName, s.fromEmail)
		to := mail.NewEmail(m.ToName, m.ToEmail)
		message := mail.NewSingleEmail(from, m.Subject, to, m.PlainText, m.HTML)

		response, err := client.SendWithContext(ctx, message)
		if err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		if response.StatusCode >= 400 {
			return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		}
		return nil
	}
}

func logOnlySender(_ context.Context, m Mail) error {
	logger.Info("Email delivery disabled, skipping send", "to", m.ToEmail, "subject", m.Subject)
	return nil
}

// RentalDecisionMail renders the mail sent to a renter once their request is decided
func RentalDecisionMail(req *domain.RentalRequest) Mail {
	car := fmt.Sprintf("%d %s %s", req.Vehicle.Year, req.Vehicle.Make, req.Vehicle.Model)
	subject := fmt.Sprintf("Your rental request for %s was %s", car, req.Status)

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", req.RenterName)
	fmt.Fprintf(&b, "Your request to rent the %s from %s to %s (%d days, total %s) has been %s.",
		car, req.StartDate, req.EndDate, req.TotalDays, formatAmount(req.TotalAmount), req.Status)
	if req.AdminMessage != "" {
		fmt.Fprintf(&b, "\n\nMessage from our team: %s", req.AdminMessage)
	}
	b.WriteString("\n\nBest regards,\nThe Car Rental Team")

	return Mail{
		ToName:    req.RenterName,
		ToEmail:   req.RenterEmail,
		Subject:   subject,
		PlainText: b.String(),
		HTML:      toHTML(b.String()),
	}
}

// ListingDecisionMail renders the mail sent to an owner once their listing is decided
func ListingDecisionMail(req *domain.CarListingRequest) Mail {
	car := fmt.Sprintf("%d %s %s", req.Vehicle.Year, req.Vehicle.Make, req.Vehicle.Model)
	subject := fmt.Sprintf("Your listing for %s was %s", car, req.Status)

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", req.Owner.Name)
	fmt.Fprintf(&b, "Your request to list the %s (plate %s) has been %s.", car, req.Vehicle.Plate, req.Status)
	if req.Status == domain.StatusApproved {
		fmt.Fprintf(&b, " It is now part of our fleet at %s per day.", formatAmount(req.Pricing.Daily))
	}
	if req.AdminMessage != "" {
		fmt.Fprintf(&b, "\n\nMessage from our team: %s", req.AdminMessage)
	}
	b.WriteString("\n\nBest regards,\nThe Car Rental Team")

	return Mail{
		ToName:    req.Owner.Name,
		ToEmail:   req.Owner.Email,
		Subject:   subject,
		PlainText: b.String(),
		HTML:      toHTML(b.String()),
	}
}

// formatAmount renders minor currency units as 150.00
func formatAmount(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}

func toHTML(text string) string {
	paragraphs := strings.Split(text, "\n\n")
	var b strings.Builder
	b.WriteString("<html><body>")
	for _, p := range paragraphs {
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(html.EscapeString(p), "\n", "<br>"))
		b.WriteString("</p>")
	}
	b.WriteString("</body></html>")
	return b.String()
}

