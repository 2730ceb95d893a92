package mailgun

import (
	"context"
	"fmt"
	"strings"

	"assignment_service/internal/domain"
)

type MessageSender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// Notifier formats the submission outcome email. It is attempted exactly
// once per fulfillment branch; its own failure never suppresses the
// ledger write.
type Notifier struct {
	sender MessageSender
}

func NewNotifier(sender MessageSender) *Notifier {
	return &Notifier{sender: sender}
}

func (n *Notifier) NotifyOutcome(ctx context.Context, recipient string, status domain.DeliveryStatus, message string) error {
	subject := fmt.Sprintf("Download Status - %s", status)
	return n.sender.Send(ctx, recipient, subject, outcomeBody(recipient, status, message))
}

func outcomeBody(recipient string, status domain.DeliveryStatus, message string) string {
	name := recipient
	if idx := strings.Index(recipient, "@"); idx > 0 {
		name = recipient[:idx]
	}

	verdict := "failed"
	if status == domain.DeliverySuccess {
		verdict = "succeeded"
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<body>
    <div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto;">
        <p>Hi %s,</p>
        <p>Here is the latest update on your recent submission:</p>
        <p>The download process has %s.</p>
        <p>%s</p>
        <p>If you have any questions or need further assistance, feel free to reach out.</p>
        <p>Thank you for your submission!</p>
    </div>
</body>
</html>`, name, verdict, message)
}
