package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"Rentex/Models"
)

// SendEmail sends an email using the provided configuration and message details
func SendEmail(config Models.EmailConfig, message Models.EmailMessage) error {
	// Build email headers
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", config.FromName, config.FromEmail)
	headers["To"] = strings.Join(message.To, ", ")
	headers["Subject"] = message.Subject

	if len(message.CC) > 0 {
		headers["Cc"] = strings.Join(message.CC, ", ")
	}

	if message.IsHTML {
		headers["MIME-Version"] = "1.0"
		headers["Content-Type"] = "text/html; charset=UTF-8"
	} else {
		headers["Content-Type"] = "text/plain; charset=UTF-8"
	}

	// Build the message
	var messageBody strings.Builder
	for key, value := range headers {
		messageBody.WriteString(fmt.Sprintf("%s: %s\r\n", key, value))
	}

	messageBody.WriteString("\r\n")
	messageBody.WriteString(message.Body)

	auth := smtp.PlainAuth("", config.Username, config.Password, config.SMTPServer)

	var recipients []string
	recipients = append(recipients, message.To...)
	recipients = append(recipients, message.CC...)

	serverAddr := fmt.Sprintf("%s:%s", config.SMTPServer, config.SMTPPort)

	return smtp.SendMail(
		serverAddr,
		auth,
		config.FromEmail,
		recipients,
		[]byte(messageBody.String()),
	)
}

// SendAlertDigest mails an agency a plain-text summary of its open alerts.
func SendAlertDigest(config Models.EmailConfig, agency Models.Agency, alerts []Models.Alert) error {
	if agency.Email == "" || len(alerts) == 0 {
		return nil
	}

	var body strings.Builder
	body.WriteString(fmt.Sprintf("Open alerts for %s:\r\n\r\n", agency.Name))
	for _, alert := range alerts {
		body.WriteString(fmt.Sprintf("- [%s] %s\r\n", alert.Type, alert.Message))
	}

	return SendEmail(config, Models.EmailMessage{
		To:      []string{agency.Email},
		Subject: fmt.Sprintf("Rentex: %d open alerts", len(alerts)),
		Body:    body.String(),
	})
}
