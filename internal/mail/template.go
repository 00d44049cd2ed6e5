package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"
)

// ResetSubject is the subject line of the password reset email.
const ResetSubject = "Your Password Reset Token"

var layout = template.Must(template.New("layout").Parse(`<div class="email" style="
	border: 1px solid black;
	padding: 20px;
	font-family: sans-serif;
	line-height: 2;
	font-size: 20px;
">
	<h2>Hello There!</h2>
	<p>Your Password Reset Token is here!</p>
	<p><a href="{{.Link}}">Click Here to Reset</a></p>
	<p>This link expires in {{.ExpiresIn}}.</p>
</div>`))

// ResetLink builds <frontendURL>/reset?resetToken=<token>.
func ResetLink(frontendURL, token string) string {
	return strings.TrimRight(frontendURL, "/") + "/reset?" + url.Values{"resetToken": {token}}.Encode()
}

// ExpiresIn renders ttl for the email body, e.g. "1 hour" or "90 minutes".
func ExpiresIn(ttl time.Duration) string {
	unit, n := "minute", int64(ttl/time.Minute)
	if ttl%time.Hour == 0 {
		unit, n = "hour", int64(ttl/time.Hour)
	}
	if n < 1 {
		return ttl.String()
	}
	if n != 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s", n, unit)
}

// ResetEmail renders the HTML body of the password reset email.  ttl is
// the lifetime of the token the link carries.
func ResetEmail(frontendURL, token string, ttl time.Duration) (string, error) {
	var buf bytes.Buffer
	data := struct{ Link, ExpiresIn string }{Link: ResetLink(frontendURL, token), ExpiresIn: ExpiresIn(ttl)}
	if err := layout.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
