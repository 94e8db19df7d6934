package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

const subjectPrefix = "Yeni ING Bülteni: "

// HTMLEmailRenderer renders notifications as HTML emails with a plain text fallback.
type HTMLEmailRenderer struct {
	tmpl *template.Template
}

// NewHTMLEmailRenderer creates a renderer with the default email template.
func NewHTMLEmailRenderer() *HTMLEmailRenderer {
	t := template.Must(template.New("email").Parse(emailHTMLTemplate))
	return &HTMLEmailRenderer{tmpl: t}
}

// Render produces an HTML email with plain text alternative.
func (r *HTMLEmailRenderer) Render(data NotificationData) (*RenderedMessage, error) {
	var htmlBuf bytes.Buffer
	if err := r.tmpl.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}

	return &RenderedMessage{
		Subject: subjectPrefix + data.Bulletin.Title,
		Text:    renderPlainText(data),
		HTML:    htmlBuf.String(),
	}, nil
}

// renderPlainText produces a readable plain text version for email clients that don't support HTML.
func renderPlainText(data NotificationData) string {
	var sb strings.Builder

	sb.WriteString("Yeni ING Ekonomi Bülteni\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	sb.WriteString(fmt.Sprintf("%s yayınlandı ve Dropbox'a yüklendi.\n\n", data.Bulletin.Title))
	sb.WriteString(fmt.Sprintf("PDF URL: %s\n", data.Bulletin.URL))
	sb.WriteString(fmt.Sprintf("İndirilen dosya: %s\n", data.FileName))
	if data.RemotePath != "" {
		sb.WriteString(fmt.Sprintf("Dropbox: %s\n", data.RemotePath))
	}

	if len(data.Summary) > 0 {
		sb.WriteString("\nÖZET\n")
		sb.WriteString(strings.Repeat("-", 20) + "\n")
		for _, s := range data.Summary {
			sb.WriteString(fmt.Sprintf("• %s\n", s))
		}
	}

	return sb.String()
}
