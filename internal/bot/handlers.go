package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"focusbot/internal/reminder"
	"focusbot/internal/session"
	"focusbot/internal/store"
	"focusbot/internal/taskgen"
	"focusbot/internal/trainer"
)

func (b *Bot) onStart(c tele.Context) error {
	ctx := context.Background()
	sender := c.Sender()

	user, err := b.users.Get(ctx, sender.ID)
	if err == nil {
		return c.Send(fmt.Sprintf(msgAlreadyHere, user.FirstName), mainMenu())
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return err
	}

	sess := b.sessions.GetOrCreate(sender.ID)
	sess.Lock()
	sess.Phase = session.PhaseAwaitingName
	sess.Unlock()

	return c.Send(msgAskName)
}

func (b *Bot) onMenu(c tele.Context) error {
	return c.Send("Menu:", mainMenu())
}

func (b *Bot) onHelp(c tele.Context) error {
	return c.Send(msgHelp, mainMenu())
}

// onText routes free-form input by the session phase, falling back to the
// reply-keyboard labels for idle users.
func (b *Bot) onText(c tele.Context) error {
	sess := b.sessions.Get(c.Sender().ID)
	phase := session.PhaseIdle
	if sess != nil {
		sess.Lock()
		phase = sess.Phase
		sess.Unlock()
	}

	switch phase {
	case session.PhaseAwaitingName:
		return b.handleName(c, sess)
	case session.PhaseAwaitingAge:
		return b.handleAge(c, sess)
	case session.PhaseAwaitingTime:
		return b.handleReminderTime(c, sess)
	case session.PhaseAwaitingAnswer:
		return b.handleAnswer(c)
	}

	switch c.Text() {
	case btnTasks:
		return c.Send(msgChooseCategory, categoryMenu())
	case btnReminders:
		return b.showReminderMenu(c)
	case btnLevel:
		return b.showLevel(c)
	case btnRating:
		return b.showRating(c)
	case btnHelp:
		return b.onHelp(c)
	}

	return b.onMenu(c)
}

// Registration.

func (b *Bot) handleName(c tele.Context, sess *session.Session) error {
	name := strings.TrimSpace(c.Text())
	if len(strings.Fields(name)) != 1 {
		return c.Send(msgNameOneWord)
	}

	sess.Lock()
	sess.FirstName = name
	sess.Phase = session.PhaseAwaitingAge
	sess.Unlock()

	return c.Send(fmt.Sprintf(msgAskAge, name))
}

func (b *Bot) handleAge(c tele.Context, sess *session.Session) error {
	age, err := strconv.Atoi(strings.TrimSpace(c.Text()))
	if err != nil || age < 1 || age > 119 {
		return c.Send(msgAgeNumeric)
	}

	sess.Lock()
	sess.Age = age
	sess.Phase = session.PhaseAwaitingGoal
	sess.Unlock()

	return c.Send(msgAskGoal, goalMenu())
}

func (b *Bot) onGoal(c tele.Context) error {
	defer c.Respond()
	sender := c.Sender()

	sess := b.sessions.Get(sender.ID)
	if sess == nil {
		return nil
	}
	sess.Lock()
	if sess.Phase != session.PhaseAwaitingGoal {
		sess.Unlock()
		return nil
	}
	firstName, age := sess.FirstName, sess.Age
	sess.Phase = session.PhaseIdle
	sess.Unlock()

	ctx := context.Background()
	now := time.Now()
	if err := b.users.Create(ctx, &store.User{
		ID:        sender.ID,
		Username:  sender.Username,
		FirstName: firstName,
		Age:       age,
		Target:    c.Data(),
		Level:     1,
		CreatedAt: now,
	}); err != nil {
		return err
	}

	if err := b.reminders.ScheduleSurvey(sender.ID, now); err != nil {
		b.log.Warnw("survey scheduling failed", "user_id", sender.ID, "error", err)
	}

	b.log.Infow("user registered", "user_id", sender.ID)
	return c.Send(fmt.Sprintf(msgRegistered, firstName), mainMenu())
}

// Training.

func (b *Bot) onCategory(c tele.Context) error {
	defer c.Respond()
	userID := c.Sender().ID
	ctx := context.Background()

	category := taskgen.Category(c.Data())
	if category != "" && !category.Valid() {
		return nil
	}

	task, err := b.trainer.Start(ctx, userID, category)
	if err != nil {
		return c.Send(msgGenFailed)
	}

	level, err := b.users.Level(ctx, userID)
	if err != nil {
		level = 1
	}
	return b.sendTask(c, userID, task, level)
}

func (b *Bot) sendTask(c tele.Context, userID int64, task *taskgen.Task, level int) error {
	text := fmt.Sprintf(msgTaskHeader, level, task.Category.Title(), task.Points, task.Text) +
		"\n\n" + msgTaskFooter

	msg, err := b.tele.Send(c.Recipient(), text, stopMenu())
	if err != nil {
		return err
	}

	if sess := b.sessions.Get(userID); sess != nil {
		sess.Lock()
		sess.TaskMessageIDs = append(sess.TaskMessageIDs, msg.ID)
		sess.Unlock()
	}
	return nil
}

// deleteTaskMessages clears previous exercise prompts from the chat.
func (b *Bot) deleteTaskMessages(userID int64, chatID int64) {
	sess := b.sessions.Get(userID)
	if sess == nil {
		return
	}
	sess.Lock()
	ids := sess.TaskMessageIDs
	sess.TaskMessageIDs = nil
	sess.Unlock()

	for _, id := range ids {
		stored := tele.StoredMessage{MessageID: strconv.Itoa(id), ChatID: chatID}
		if err := b.tele.Delete(stored); err != nil {
			b.log.Debugw("deleting old task message failed", "user_id", userID, "error", err)
		}
	}
}

func (b *Bot) handleAnswer(c tele.Context) error {
	userID := c.Sender().ID
	chatID := c.Chat().ID

	result, err := b.trainer.Submit(context.Background(), userID, c.Text())
	if errors.Is(err, trainer.ErrNoActiveTask) {
		return c.Send(msgNoActiveTask, mainMenu())
	}
	if err != nil {
		b.log.Errorw("answer handling failed", "user_id", userID, "error", err)
		return c.Send(msgInternal)
	}

	switch result.Outcome {
	case trainer.OutcomeStopped:
		b.deleteTaskMessages(userID, chatID)
		s := result.Summary
		if err := c.Send(fmt.Sprintf(msgRunSummary, s.Served, s.Correct, s.Points)); err != nil {
			return err
		}
		return c.Send(msgChooseCategory, categoryMenu())

	case trainer.OutcomeUnverified:
		return c.Send(msgUnverified)

	case trainer.OutcomeCorrect:
		b.deleteTaskMessages(userID, chatID)
		if err := c.Send(fmt.Sprintf(msgCorrect, result.Points, result.NewLevel, result.Feedback)); err != nil {
			return err
		}

	case trainer.OutcomeIncorrect:
		b.deleteTaskMessages(userID, chatID)
		if err := c.Send(fmt.Sprintf(msgIncorrect, result.NewLevel, result.Feedback)); err != nil {
			return err
		}
	}

	if result.Next == nil {
		return c.Send(msgNextFailed, categoryMenu())
	}
	return b.sendTask(c, userID, result.Next, result.NewLevel)
}

func (b *Bot) onStopButton(c tele.Context) error {
	defer c.Respond()
	userID := c.Sender().ID

	summary := b.trainer.Stop(userID)
	if summary == nil {
		return c.Send(msgNoActiveTask, mainMenu())
	}

	b.deleteTaskMessages(userID, c.Chat().ID)
	if err := c.Send(fmt.Sprintf(msgRunSummary, summary.Served, summary.Correct, summary.Points)); err != nil {
		return err
	}
	return c.Send(msgChooseCategory, categoryMenu())
}

// Reminders.

func (b *Bot) showReminderMenu(c tele.Context) error {
	rem, err := b.remRepo.Get(context.Background(), c.Sender().ID)
	if errors.Is(err, store.ErrReminderNotFound) {
		return c.Send(msgReminderMenuNone, reminderMenu(false))
	}
	if err != nil {
		return err
	}

	status := "off"
	if rem.Enabled {
		status = "on"
	}
	return c.Send(fmt.Sprintf(msgReminderMenu, status, rem.RemindTime), reminderMenu(rem.Enabled))
}

func (b *Bot) onReminderOn(c tele.Context) error {
	defer c.Respond()
	return b.askReminderTime(c, "enable")
}

func (b *Bot) onReminderChange(c tele.Context) error {
	defer c.Respond()
	return b.askReminderTime(c, "change")
}

func (b *Bot) askReminderTime(c tele.Context, action string) error {
	sess := b.sessions.GetOrCreate(c.Sender().ID)
	sess.Lock()
	sess.Phase = session.PhaseAwaitingTime
	sess.ReminderAction = action
	sess.Unlock()
	return c.Send(msgAskReminderTime)
}

func (b *Bot) onReminderOff(c tele.Context) error {
	defer c.Respond()

	err := b.reminders.Disable(context.Background(), c.Sender().ID)
	if errors.Is(err, reminder.ErrAlreadyDisabled) {
		return c.Send(msgAlreadyDisabled)
	}
	if err != nil {
		return err
	}
	return c.Send(msgReminderDisabled, mainMenu())
}

func (b *Bot) handleReminderTime(c tele.Context, sess *session.Session) error {
	userID := c.Sender().ID
	input := strings.TrimSpace(c.Text())
	ctx := context.Background()

	if _, err := reminder.ParseTimeOfDay(input); err != nil {
		return c.Send(msgBadTime)
	}

	sess.Lock()
	action := sess.ReminderAction
	sess.Phase = session.PhaseIdle
	sess.ReminderAction = ""
	sess.Unlock()

	if action == "change" {
		err := b.reminders.Reschedule(ctx, userID, input)
		if errors.Is(err, store.ErrReminderNotFound) {
			action = "enable"
		} else if err != nil {
			return err
		} else {
			return c.Send(fmt.Sprintf(msgReminderChanged, input), mainMenu())
		}
	}

	err := b.reminders.Enable(ctx, userID, input)
	if errors.Is(err, reminder.ErrAlreadyEnabled) {
		return c.Send(msgAlreadyEnabled, mainMenu())
	}
	if err != nil {
		return err
	}
	return c.Send(fmt.Sprintf(msgReminderEnabled, input), mainMenu())
}

// Info.

func (b *Bot) showLevel(c tele.Context) error {
	level, err := b.users.Level(context.Background(), c.Sender().ID)
	if err != nil {
		return err
	}
	return c.Send(fmt.Sprintf(msgLevel, level))
}

func (b *Bot) showRating(c tele.Context) error {
	ctx := context.Background()

	top, err := b.ratings.Top(ctx, 5)
	if err != nil {
		return err
	}
	if len(top) == 0 {
		return c.Send(msgRatingEmpty)
	}

	var sb strings.Builder
	sb.WriteString("🏆 Top players:\n")
	medals := []string{"🥇", "🥈", "🥉"}
	for i, entry := range top {
		mark := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			mark = medals[i]
		}
		fmt.Fprintf(&sb, "%s %s — %d points\n", mark, entry.FirstName, entry.Points)
	}

	standing, err := b.ratings.Standing(ctx, c.Sender().ID)
	if err != nil {
		return err
	}
	if standing.Rank > 0 {
		fmt.Fprintf(&sb, "\nYou are #%d with %d points.", standing.Rank, standing.Points)
	} else {
		sb.WriteString("\nYou have no points yet. Solve an exercise!")
	}
	return c.Send(sb.String())
}

func (b *Bot) onStats(c tele.Context) error {
	ctx := context.Background()

	user, err := b.users.Get(ctx, c.Sender().ID)
	if err != nil || !user.IsAdmin {
		return c.Send(msgNotAdmin)
	}

	count, err := b.users.Count(ctx)
	if err != nil {
		return err
	}
	return c.Send(fmt.Sprintf(msgUserCount, count))
}
