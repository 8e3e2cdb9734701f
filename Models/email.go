package Models

import "os"

// EmailConfig holds SMTP settings for outgoing mail.
type EmailConfig struct {
	SMTPServer string
	SMTPPort   string
	Username   string
	Password   string
	FromEmail  string
	FromName   string
}

// EmailMessage represents an email to be sent.
type EmailMessage struct {
	To      []string
	CC      []string
	Subject string
	Body    string
	IsHTML  bool
}

// EmailConfigFromEnv reads SMTP settings. Returns ok=false when no
// server is configured, in which case mail sending is skipped.
func EmailConfigFromEnv() (EmailConfig, bool) {
	server := os.Getenv("SMTP_SERVER")
	if server == "" {
		return EmailConfig{}, false
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	return EmailConfig{
		SMTPServer: server,
		SMTPPort:   port,
		Username:   os.Getenv("SMTP_USERNAME"),
		Password:   os.Getenv("SMTP_PASSWORD"),
		FromEmail:  os.Getenv("SMTP_FROM_EMAIL"),
		FromName:   os.Getenv("SMTP_FROM_NAME"),
	}, true
}
