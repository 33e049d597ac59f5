package mailer

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const sendTimeout = 5 * time.Second

// SendAsync delivers the code on a background goroutine so registration does
// not block on the SMTP relay. Delivery errors are logged and dropped; the
// user can request a resend.
func SendAsync(sender Sender, log *zap.Logger, to, code string) {
	if log == nil {
		log = zap.NewNop()
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		if err := sender.SendVerificationCode(ctx, to, code); err != nil {
			log.Warn("verification mail delivery failed",
				zap.String("to", to),
				zap.Error(err))
		}
	}()
}
