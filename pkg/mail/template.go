package mail

import (
	"fmt"
	"strings"
)

// escapeHTML untuk konten yang masuk ke body email. Cuma tiga karakter
// struktural; atribut selalu kita tulis sendiri, bukan dari input.
func escapeHTML(input string) string {
	escaped := strings.ReplaceAll(input, "&", "&amp;")
	escaped = strings.ReplaceAll(escaped, "<", "&lt;")
	escaped = strings.ReplaceAll(escaped, ">", "&gt;")
	return escaped
}

// BuildSystemEmailHTML renders the monochrome system mail layout used for
// verification and reset links. Semua nilai dinamis di-escape dulu.
func BuildSystemEmailHTML(title string, bodyLines []string, buttonText, buttonURL string) string {
	var paragraphs strings.Builder
	for _, line := range bodyLines {
		paragraphs.WriteString(fmt.Sprintf(
			"<p style=\"margin:0 0 16px;color:#ffffff;font-size:14px;line-height:1.5;font-family:'Courier New',Courier,monospace;\">%s</p>",
			escapeHTML(line),
		))
	}

	safeTitle := escapeHTML(title)
	safeButtonText := escapeHTML(buttonText)
	safeButtonURL := escapeHTML(buttonURL)

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>%[1]s</title>
</head>
<body style="background:#000;padding:32px;font-family:'Courier New',Courier,monospace;">
  <table role="presentation" cellpadding="0" cellspacing="0" width="100%%">
    <tr>
      <td align="center">
        <table role="presentation" cellpadding="0" cellspacing="0" width="100%%" style="max-width:640px;border:2px solid #ffffff;padding:28px;background:#000;">
          <tr><td style="text-align:center;">
            <h1 style="margin:0 0 20px;font-size:20px;letter-spacing:0.05em;text-transform:uppercase;color:#ffffff;font-family:'Courier New',Courier,monospace;">%[1]s</h1>
            %[2]s
            <div style="margin:32px 0;text-align:center;">
              <a href="%[4]s" style="text-decoration:none;display:inline-block;border:2px solid #ffffff;padding:12px 24px;color:#ffffff;background:#000;text-transform:uppercase;font-weight:bold;font-family:'Courier New',Courier,monospace;">%[3]s</a>
            </div>
            <p style="margin:0 0 12px;color:#ffffff;font-size:12px;line-height:1.4;font-family:'Courier New',Courier,monospace;word-break:break-word;">If the button doesn't work, copy and paste this link:<br />%[4]s</p>
            <hr style="border:none;border-top:2px solid #ffffff;margin:32px 0;" />
            <p style="margin:0;color:#ffffff;font-size:11px;opacity:0.7;font-family:'Courier New',Courier,monospace;line-height:1.4;">Automated message from Mailgate. Replies are not monitored.</p>
          </td></tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>
`, safeTitle, paragraphs.String(), safeButtonText, safeButtonURL)
}
