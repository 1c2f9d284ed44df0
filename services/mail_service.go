package services

import (
	"fmt"
	"log"
	"net"
	"net/smtp"
	"os"
	"strings"
)

// Mailer sends plain-text notification mail. InquiryService only needs Send;
// tests swap in a stub.
type Mailer interface {
	Send(to []string, subject, body string) error
}

type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Enabled  bool
}

func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")

	enabled := host != "" && port != "" && user != "" && pass != "" && from != ""
	if !enabled {
		log.Println("MailService disabled: missing SMTP environment variables")
	}

	return &MailService{
		Host:     host,
		Port:     port,
		Username: user,
		Password: pass,
		From:     from,
		Enabled:  enabled,
	}
}

func (s *MailService) Send(to []string, subject, body string) error {
	if !s.Enabled {
		return nil
	}

	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	addr := net.JoinHostPort(s.Host, s.Port)

	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: HandsLive <%s>\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/plain; charset=\"UTF-8\"\r\n"+
		"\r\n%s", strings.Join(to, ","), s.From, subject, body))

	return smtp.SendMail(addr, auth, s.From, to, msg)
}
