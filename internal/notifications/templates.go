package notifications

import "fmt"

// ActivationEmail renders the account confirmation message. The link
// embeds a signed token carrying the recipient's email.
func ActivationEmail(baseURL, token string) (subject, htmlBody string) {
	link := fmt.Sprintf("%s/auth/confirm-email/%s", baseURL, token)
	body := fmt.Sprintf(`<div style="font-family: sans-serif">
<h2>Welcome to JobHive</h2>
<p>Click the button below to confirm your email address and activate your account.</p>
<p><a href="%s" style="background:#2563eb;color:#fff;padding:10px 18px;border-radius:6px;text-decoration:none">Confirm Email</a></p>
<p>If the button does not work, open this link: %s</p>
</div>`, link, link)
	return "Email Confirmation", body
}

// ResetCodeEmail renders the password reset message carrying the
// short-lived numeric code.
func ResetCodeEmail(code string) (subject, htmlBody string) {
	body := fmt.Sprintf(`<div style="font-family: sans-serif">
<h2>Password Reset</h2>
<p>Use the code below to reset your password. It expires in 10 minutes.</p>
<p style="font-size:28px;letter-spacing:6px;font-weight:bold">%s</p>
<p>If you did not request a reset, you can ignore this email.</p>
</div>`, code)
	return "Reset Password", body
}
