package notification

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"
)

type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Email) error
}

func OTPEmail(to, fullName, otp string, ttl time.Duration) Email {
	name := displayName(fullName)
	minutes := int(ttl.Minutes())

	text := fmt.Sprintf(
		"Hi %s,\n\nYour verification code is %s.\nIt expires in %d minutes.\n\nIf you did not sign up, you can ignore this email.\n",
		name, otp, minutes,
	)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your verification code is <strong>%s</strong>.</p><p>It expires in %d minutes.</p><p>If you did not sign up, you can ignore this email.</p>",
		html.EscapeString(name), html.EscapeString(otp), minutes,
	)

	return Email{To: to, Subject: "Verify your email", Text: text, HTML: body}
}

func ResetPasswordEmail(to, fullName, frontendURL, token string, ttl time.Duration) Email {
	name := displayName(fullName)
	link := ResetLink(frontendURL, token)
	minutes := int(ttl.Minutes())

	text := fmt.Sprintf(
		"Hi %s,\n\nUse the link below to reset your password:\n%s\n\nThe link expires in %d minutes.\n",
		name, link, minutes,
	)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p><a href=\"%s\">Reset your password</a></p><p>The link expires in %d minutes.</p>",
		html.EscapeString(name), html.EscapeString(link), minutes,
	)

	return Email{To: to, Subject: "Reset your password", Text: text, HTML: body}
}

func ResetLink(frontendURL, token string) string {
	base := strings.TrimRight(strings.TrimSpace(frontendURL), "/")
	return base + "/reset-password?token=" + url.QueryEscape(token)
}

func displayName(fullName string) string {
	if n := strings.TrimSpace(fullName); n != "" {
		return n
	}
	return "there"
}
