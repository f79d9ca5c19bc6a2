package bot

import (
	tele "gopkg.in/telebot.v3"

	"focusbot/internal/taskgen"
)

// Reply keyboard labels double as the OnText routes for menu taps.
const (
	btnTasks     = "🧠 Tasks"
	btnReminders = "⏰ Reminders"
	btnLevel     = "📊 Level"
	btnRating    = "🏆 Rating"
	btnHelp      = "ℹ️ Help"
)

// Callback uniques. Payload carries the category, goal or action.
var (
	btnCategory  = tele.Btn{Unique: "category"}
	btnStop      = tele.Btn{Unique: "task_stop", Text: "Stop training"}
	btnGoal      = tele.Btn{Unique: "goal"}
	btnRemOn     = tele.Btn{Unique: "rem_on", Text: "Turn on"}
	btnRemOff    = tele.Btn{Unique: "rem_off", Text: "Turn off"}
	btnRemChange = tele.Btn{Unique: "rem_change", Text: "Change time"}
)

// goals offered during registration.
var goals = []string{
	"Improve concentration",
	"Reduce distractions",
	"Train memory",
	"Keep the brain in shape",
}

func mainMenu() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(btnTasks), menu.Text(btnReminders)),
		menu.Row(menu.Text(btnLevel), menu.Text(btnRating)),
		menu.Row(menu.Text(btnHelp)),
	)
	return menu
}

func categoryMenu() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(taskgen.Categories())+1)
	for _, cat := range taskgen.Categories() {
		rows = append(rows, markup.Row(
			markup.Data(cat.Title(), btnCategory.Unique, string(cat)),
		))
	}
	rows = append(rows, markup.Row(
		markup.Data("Surprise me", btnCategory.Unique, ""),
	))
	markup.Inline(rows...)
	return markup
}

func stopMenu() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data(btnStop.Text, btnStop.Unique)))
	return markup
}

func goalMenu() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, markup.Row(markup.Data(g, btnGoal.Unique, g)))
	}
	markup.Inline(rows...)
	return markup
}

func reminderMenu(enabled bool) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	toggle := markup.Data(btnRemOn.Text, btnRemOn.Unique)
	if enabled {
		toggle = markup.Data(btnRemOff.Text, btnRemOff.Unique)
	}
	markup.Inline(
		markup.Row(toggle),
		markup.Row(markup.Data(btnRemChange.Text, btnRemChange.Unique)),
	)
	return markup
}
