package mail

import (
	"Inkwell/internal/api/config"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

var client *resty.Client

// Init 初始化邮件网关客户端
func Init() {
	client = resty.New().
		SetBaseURL(config.Cfg.Mail.URL).
		SetTimeout(10*time.Second).
		SetHeader("Authorization", "Bearer "+config.Cfg.Mail.ApiKey)
}

type sendReq struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendOtpMail 发送验证码邮件
func SendOtpMail(ctx context.Context, to string, code string) error {
	if client == nil {
		return fmt.Errorf("mail client is not initialized")
	}

	body := fmt.Sprintf("【Inkwell】您的验证码为 %s ，10 分钟内有效。", code)
	resp, err := client.R().
		SetContext(ctx).
		SetBody(sendReq{
			From:    config.Cfg.Mail.Sender,
			To:      to,
			Subject: "Inkwell 密码重置验证码",
			Body:    body,
		}).
		Post("/v1/send")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("mail send failed: %s", resp.Status())
	}

	log.InfoContext(ctx, "验证码邮件已发送", "to", to)
	return nil
}
