package fakes

import (
	"sync"

	"github.com/m04kA/SMC-IDCardBooking/internal/integrations/notificationservice"
)

// Notifier запоминает уведомления вместо отправки
type Notifier struct {
	mu   sync.Mutex
	sent []notificationservice.Notification
}

func (n *Notifier) NotifyAsync(notification notificationservice.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification)
}

// Sent возвращает копию отправленных уведомлений
func (n *Notifier) Sent() []notificationservice.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]notificationservice.Notification, len(n.sent))
	copy(out, n.sent)
	return out
}
