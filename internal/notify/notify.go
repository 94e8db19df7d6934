/*
Package notify renders and sends new-bulletin notification emails.
*/
package notify

import (
	"errors"
	"fmt"

	"github.com/shanehull/bultentakip/internal/types"
)

// ErrDisabled is returned when the notification settings are incomplete.
var ErrDisabled = errors.New("email notification disabled: incomplete SMTP configuration")

// NotificationData is everything the email templates can reference.
type NotificationData struct {
	Bulletin   types.Bulletin
	FileName   string
	RemotePath string
	Summary    []string
}

// RenderedMessage is a ready-to-send email.
type RenderedMessage struct {
	Subject string
	Text    string
	HTML    string
}

type Renderer interface {
	Render(data NotificationData) (*RenderedMessage, error)
}

type Sender interface {
	Send(msg *RenderedMessage) error
}

// Notifier renders a bulletin notification and hands it to a sender.
type Notifier struct {
	renderer Renderer
	sender   Sender
	enabled  bool
}

func NewNotifier(renderer Renderer, sender Sender, enabled bool) *Notifier {
	return &Notifier{renderer: renderer, sender: sender, enabled: enabled}
}

func (n *Notifier) Enabled() bool {
	return n.enabled
}

func (n *Notifier) Notify(data NotificationData) error {
	if !n.enabled {
		return ErrDisabled
	}

	msg, err := n.renderer.Render(data)
	if err != nil {
		return err
	}

	if err := n.sender.Send(msg); err != nil {
		return fmt.Errorf("failed to send notification for %s: %w", data.Bulletin.Title, err)
	}
	return nil
}
