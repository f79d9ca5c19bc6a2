// Package bot is the Telegram surface: registration, menus, the training
// dialogue and reminder delivery.
package bot

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"

	"focusbot/internal/reminder"
	"focusbot/internal/session"
	"focusbot/internal/store"
	"focusbot/internal/trainer"
)

// Bot wires telebot handlers to the trainer and reminder services.
type Bot struct {
	tele      *tele.Bot
	trainer   *trainer.Service
	reminders *reminder.Service
	sessions  *session.Manager
	users     store.UserRepo
	ratings   store.RatingRepo
	remRepo   store.ReminderRepo
	log       *zap.SugaredLogger
}

// New creates the bot and registers its routes. AttachReminders must be
// called before Start; the reminder service needs the bot as its notifier.
func New(
	token string,
	trainerSvc *trainer.Service,
	sessions *session.Manager,
	users store.UserRepo,
	ratings store.RatingRepo,
	remRepo store.ReminderRepo,
	log *zap.SugaredLogger,
) (*Bot, error) {
	b := &Bot{
		trainer:  trainerSvc,
		sessions: sessions,
		users:    users,
		ratings:  ratings,
		remRepo:  remRepo,
		log:      log,
	}

	teleBot, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			if c != nil && c.Sender() != nil {
				log.Errorw("handler failed", "user_id", c.Sender().ID, "error", err)
				_ = c.Send(msgInternal)
				return
			}
			log.Errorw("handler failed", "error", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	b.tele = teleBot

	teleBot.Use(middleware.Recover())
	teleBot.Use(b.registrationGate)
	b.registerRoutes()

	return b, nil
}

// AttachReminders closes the construction cycle between the bot and the
// reminder service.
func (b *Bot) AttachReminders(svc *reminder.Service) {
	b.reminders = svc
}

func (b *Bot) registerRoutes() {
	b.tele.Handle("/start", b.onStart)
	b.tele.Handle("/menu", b.onMenu)
	b.tele.Handle("/help", b.onHelp)
	b.tele.Handle("/stats", b.onStats)

	b.tele.Handle(&btnCategory, b.onCategory)
	b.tele.Handle(&btnStop, b.onStopButton)
	b.tele.Handle(&btnGoal, b.onGoal)
	b.tele.Handle(&btnRemOn, b.onReminderOn)
	b.tele.Handle(&btnRemOff, b.onReminderOff)
	b.tele.Handle(&btnRemChange, b.onReminderChange)

	b.tele.Handle(tele.OnText, b.onText)
}

// Start runs the long poller until Stop is called.
func (b *Bot) Start() {
	b.log.Infow("bot started", "bot", b.tele.Me.Username)
	b.tele.Start()
}

// Stop terminates the long poller.
func (b *Bot) Stop() {
	b.tele.Stop()
}

// SendReminder delivers the daily training nudge.
func (b *Bot) SendReminder(userID int64) error {
	_, err := b.tele.Send(&tele.User{ID: userID}, msgReminder)
	return err
}

// SendSurvey delivers the day-two feedback notice.
func (b *Bot) SendSurvey(userID int64) error {
	_, err := b.tele.Send(&tele.User{ID: userID}, msgSurvey)
	return err
}
