// Package email, uygulama genelinde email gönderimi için soyutlama katmanı sağlar.
//
// EmailSender interface'i ile gönderim detayları soyutlanır; şu anki
// implementasyon Resend API kullanır. Service katmanı interface'e bağımlıdır —
// sağlayıcı değişikliği sadece yeni bir implementasyon + constructor değişimidir.
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// EmailSender, email gönderimi için interface.
type EmailSender interface {
	// SendWorkspaceInvite, davet edilen kişiye workspace davet email'i gönderir.
	SendWorkspaceInvite(ctx context.Context, toEmail, inviterName, workspaceName string) error
}

// resendSender, Resend API ile email gönderen EmailSender implementasyonu.
type resendSender struct {
	client    *resend.Client
	fromEmail string // Resend'de doğrulanmış domain altında olmalı
	appURL    string
}

// NewResendSender, Resend client'ı ile yeni bir EmailSender oluşturur.
func NewResendSender(apiKey, fromEmail, appURL string) EmailSender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		appURL:    appURL,
	}
}

// SendWorkspaceInvite, davet email'i gönderir.
// Davet edilen kişi kayıtlı olmasa bile üyelik email üzerinden tutulduğu
// için link'ten kayıt olduğunda workspace'i hazır bulur.
func (s *resendSender) SendWorkspaceInvite(ctx context.Context, toEmail, inviterName, workspaceName string) error {
	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f5f3ef;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color:#f5f3ef;padding:40px 0;">
    <tr>
      <td align="center">
        <table width="480" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;padding:40px;">
          <tr>
            <td>
              <h1 style="color:#1f2937;font-size:24px;margin:0 0 8px 0;">Tasky</h1>
              <h2 style="color:#1f2937;font-size:18px;margin:0 0 24px 0;">You've been invited to %s</h2>
              <p style="color:#6b7280;font-size:15px;line-height:1.6;margin:0 0 24px 0;">
                %s invited you to join the workspace <strong>%s</strong>.
                Open Tasky to see shared tasks, the board and the conversation.
              </p>
              <table cellpadding="0" cellspacing="0" style="margin:0 0 24px 0;">
                <tr>
                  <td style="background-color:#4f46e5;border-radius:6px;padding:12px 32px;">
                    <a href="%s" style="color:#ffffff;font-size:15px;text-decoration:none;">Open Tasky</a>
                  </td>
                </tr>
              </table>
              <p style="color:#9ca3af;font-size:13px;line-height:1.5;margin:0;">
                If you weren't expecting this invitation you can ignore this email.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, workspaceName, inviterName, workspaceName, s.appURL)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Tasky <%s>", s.fromEmail),
		To:      []string{toEmail},
		Subject: fmt.Sprintf("%s invited you to %s — Tasky", inviterName, workspaceName),
		Html:    html,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send invite email: %w", err)
	}
	return nil
}
