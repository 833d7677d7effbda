package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Brevo (原 Sendinblue) 事务邮件 API
const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

var errSendFailed = errors.New("邮件发送失败")

// BrevoConfig Brevo 配置
type BrevoConfig struct {
	APIKey      string
	SenderName  string
	SenderEmail string
}

// BrevoMailer 基于 Brevo HTTP API 的邮件发送器
type BrevoMailer struct {
	client *resty.Client
	cfg    *BrevoConfig
}

// NewBrevoMailer 工厂方法
func NewBrevoMailer(cfg *BrevoConfig) *BrevoMailer {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &BrevoMailer{client: client, cfg: cfg}
}

// brevoPayload 请求体，字段结构与 Brevo 官方文档一致
type brevoPayload struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

type brevoAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Send 发送一封 HTML 邮件
func (m *BrevoMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.cfg.APIKey == "" {
		return fmt.Errorf("未配置 BREVO_API_KEY，无法发送邮件")
	}

	payload := brevoPayload{
		Sender:      brevoAddress{Name: m.cfg.SenderName, Email: m.cfg.SenderEmail},
		To:          []brevoAddress{{Email: to, Name: "User"}},
		Subject:     subject,
		HTMLContent: htmlBody,
	}

	resp, err := m.client.R().
		SetContext(ctx).
		SetHeader("api-key", m.cfg.APIKey).
		SetBody(payload).
		Post(brevoEndpoint)
	if err != nil {
		return err
	}

	if resp.IsError() {
		return fmt.Errorf("Brevo 响应异常: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
