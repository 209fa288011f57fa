// Package sender 通知投递通道实现
package sender

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPConfig SMTP 通道配置
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender 通过 SMTP 投递邮件通知
type SMTPSender struct {
	cfg  SMTPConfig
	addr string
}

// NewSMTPSender 创建 SMTP 发送器
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{
		cfg:  cfg,
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
	}
}

// Send 投递单封邮件
func (s *SMTPSender) Send(ctx context.Context, target, subject, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	msg.WriteString("From: " + s.cfg.From + "\r\n")
	msg.WriteString("To: " + target + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(content)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	if err := smtp.SendMail(s.addr, auth, s.cfg.From, []string{target}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", target, err)
	}
	return nil
}
