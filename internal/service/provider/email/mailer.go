package email

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// Mail 一封纯文本或者 HTML 邮件
type Mail struct {
	To      string
	Subject string
	Body    string
	HTML    bool
}

// Mailer 邮件投递
//
//go:generate mockgen -source=./mailer.go -destination=./mocks/mailer.mock.go -package=emailmocks Mailer
type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// SMTPMailer net/smtp 不支持 context，只能在发送前检查一次
type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(ctx context.Context, mail Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.cfg.Host == "" {
		return errors.New("smtp host 没有配置")
	}
	from := m.cfg.From
	if from == "" {
		from = m.cfg.Username
	}
	contentType := "text/plain; charset=UTF-8"
	if mail.HTML {
		contentType = "text/html; charset=UTF-8"
	}
	headers := []string{
		"From: " + from,
		"To: " + mail.To,
		"Subject: " + mail.Subject,
		"MIME-Version: 1.0",
		"Content-Type: " + contentType,
	}
	data := strings.Join(headers, "\r\n") + "\r\n\r\n" + mail.Body

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	addr := net.JoinHostPort(m.cfg.Host, fmt.Sprint(m.cfg.Port))
	return smtp.SendMail(addr, auth, from, []string{mail.To}, []byte(data))
}
