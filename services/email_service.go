// File: /services/email_service.go
package services

import (
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
	"milestone-api/config"
	"milestone-api/logger"
	"milestone-api/models"
)

type EmailService struct {
	config *config.Config
	log    *logger.Logger
	send   func(m *gomail.Message) error
}

func NewEmailService(cfg *config.Config, log *logger.Logger) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailService{
		config: cfg,
		log:    log.WithComponent(logger.ComponentEmail),
		send: func(m *gomail.Message) error {
			return dialer.DialAndSend(m)
		},
	}
}

func (es *EmailService) newMessage(to, subject string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", es.config.FromEmail, es.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	return m
}

// Send welcome email
func (es *EmailService) SendWelcomeEmail(email, name string) error {
	m := es.newMessage(email, fmt.Sprintf("Welcome to %s!", es.config.FromName))
	m.SetBody("text/plain", welcomeText(es.config.FromName, name))
	m.AddAlternative("text/html", welcomeHTML(es.config.FromName, name))

	if err := es.send(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	es.log.Info("welcome email sent", "to", email)
	return nil
}

// SendSummaryReport mails the profit/loss statement for the current period.
func (es *EmailService) SendSummaryReport(email, name string, summary *models.PeriodSummary) error {
	subject := fmt.Sprintf("%s - your %s summary", es.config.FromName, summary.Period)
	m := es.newMessage(email, subject)
	m.SetBody("text/plain", summaryText(name, es.config.CurrencySymbol, summary))
	m.AddAlternative("text/html", summaryHTML(name, es.config.CurrencySymbol, summary))

	if err := es.send(m); err != nil {
		return fmt.Errorf("failed to send summary report: %w", err)
	}

	es.log.Info("summary report sent", "to", email, logger.FieldPeriod, summary.Period)
	return nil
}

func welcomeText(app, name string) string {
	return fmt.Sprintf(`Hi %s!

Welcome to %s. Your account is ready.

You can now log trips, mileage and expenses for your vehicles and follow
your monthly and yearly profit and loss.

The %s Team
This is an automated message, please do not reply.
`, name, app, app)
}

func welcomeHTML(app, name string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #007bff; color: white; padding: 20px; text-align: center; border-radius: 10px 10px 0 0; }
        .content { background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px; }
        .footer { text-align: center; color: #666; font-size: 12px; margin-top: 20px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>%s</h1></div>
        <div class="content">
            <h2>Hi %s!</h2>
            <p>Your account is ready. You can now log trips, mileage and expenses for your vehicles and follow your monthly and yearly profit and loss.</p>
        </div>
        <div class="footer"><p>This is an automated message, please do not reply.</p></div>
    </div>
</body>
</html>
`, html.EscapeString(app), html.EscapeString(name))
}

func summaryText(name, currency string, s *models.PeriodSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", name)
	fmt.Fprintf(&b, "Here is your %s summary since %s.\n\n", s.Period, s.StartDate.Format("2 Jan 2006"))
	fmt.Fprintf(&b, "Total income:  %s%s\n", currency, s.Summary.TotalIncome)
	fmt.Fprintf(&b, "Total expense: %s%s\n", currency, s.Summary.TotalExpense)
	fmt.Fprintf(&b, "Profit/Loss:   %s%s\n", currency, s.Summary.ProfitLoss)

	if len(s.Logs) == 0 {
		b.WriteString("\nNo activity was recorded in this period.\n")
		return b.String()
	}

	b.WriteString("\nActivity:\n")
	for _, entry := range s.Logs {
		fmt.Fprintf(&b, "  [%s] %s\n", entry.Type, entry.Details)
	}
	return b.String()
}

func summaryHTML(name, currency string, s *models.PeriodSummary) string {
	var rows strings.Builder
	for _, entry := range s.Logs {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%s</td></tr>\n",
			html.EscapeString(entry.Type), html.EscapeString(entry.Details))
	}
	if len(s.Logs) == 0 {
		rows.WriteString(`<tr><td colspan="2">No activity was recorded in this period.</td></tr>`)
	}

	profitClass := "profit"
	if s.Summary.ProfitLoss.Cents < 0 {
		profitClass = "loss"
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        table { width: 100%%; border-collapse: collapse; }
        td { padding: 6px; border-bottom: 1px solid #eee; }
        .profit { color: #28a745; }
        .loss { color: #dc3545; }
    </style>
</head>
<body>
    <div class="container">
        <p>Hi %s,</p>
        <p>Here is your %s summary since %s.</p>
        <ul>
            <li>Total income: %s%s</li>
            <li>Total expense: %s%s</li>
            <li class="%s">Profit/Loss: %s%s</li>
        </ul>
        <table>
%s        </table>
    </div>
</body>
</html>
`,
		html.EscapeString(name), s.Period, s.StartDate.Format("2 Jan 2006"),
		currency, s.Summary.TotalIncome,
		currency, s.Summary.TotalExpense,
		profitClass, currency, s.Summary.ProfitLoss,
		rows.String())
}
