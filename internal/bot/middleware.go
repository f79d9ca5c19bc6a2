package bot

import (
	"context"
	"strings"

	tele "gopkg.in/telebot.v3"

	"focusbot/internal/session"
)

// registrationGate blocks every update from an unregistered user except
// /start and updates belonging to an in-flight registration dialogue.
func (b *Bot) registrationGate(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		sender := c.Sender()
		if sender == nil {
			return nil
		}

		if sess := b.sessions.Get(sender.ID); sess != nil && sess.Phase != session.PhaseIdle {
			return next(c)
		}
		if strings.HasPrefix(c.Text(), "/start") {
			return next(c)
		}

		exists, err := b.users.Exists(context.Background(), sender.ID)
		if err != nil {
			b.log.Errorw("registration check failed", "user_id", sender.ID, "error", err)
			return c.Send(msgInternal)
		}
		if !exists {
			return c.Send(msgPleaseRegister)
		}
		return next(c)
	}
}
