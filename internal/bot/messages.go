package bot

const (
	msgPleaseRegister = "Please register first: send /start."
	msgInternal       = "Something went wrong, please try again."

	msgAskName     = "Welcome! Let's get you set up.\n\nWhat's your first name? One word, please."
	msgNameOneWord = "Just your first name, one word please."
	msgAskAge      = "Nice to meet you, %s! How old are you?"
	msgAgeNumeric  = "Please send your age as a number."
	msgAskGoal     = "And what do you want to train?"
	msgRegistered  = "You're all set, %s! Pick an item from the menu below."
	msgAlreadyHere = "Welcome back, %s!"

	msgChooseCategory = "Pick an exercise category, or let the model choose:"
	msgTaskHeader     = "Level %d · %s · %d points\n\n%s"
	msgTaskFooter     = "Send your answer, or send \"stop\" to finish."
	msgGenFailed      = "Couldn't prepare an exercise right now, please try again later."
	msgNoActiveTask   = "No exercise is waiting for an answer. Start one from the menu."
	msgUnverified     = "I couldn't check that answer, please send it again."
	msgCorrect        = "✅ Correct! +%d points, level is now %d.\n\n%s"
	msgIncorrect      = "❌ Not this time. Level is now %d.\n\n%s"
	msgNextFailed     = "Couldn't prepare the next exercise, pick a category to continue."
	msgRunSummary     = "Training finished. Exercises: %d, correct: %d, points earned: %d."

	msgReminderMenu     = "Reminder is %s, time %s."
	msgReminderMenuNone = "No reminder set yet."
	msgAskReminderTime  = "What time should I remind you? Send HH:MM, for example 09:30."
	msgBadTime          = "That doesn't look like HH:MM, try again."
	msgReminderEnabled  = "Reminder enabled for %s every day."
	msgReminderChanged  = "Reminder moved to %s."
	msgReminderDisabled = "Reminder disabled."
	msgAlreadyEnabled   = "The reminder is already on."
	msgAlreadyDisabled  = "The reminder is already off."

	msgLevel       = "Your current difficulty level: %d."
	msgRatingEmpty = "Nobody has scored yet. Be the first!"
	msgNotAdmin    = "This command is for administrators."
	msgUserCount   = "Registered users: %d."

	msgReminder = "Time to train your attention! Open the menu and pick a category. 🧠"
	msgSurvey   = "You've been with us for two days. How is it going? Reply with any feedback, it helps a lot!"

	msgHelp = `This bot trains attention with short LLM-generated exercises.

Menu:
• Tasks — pick a category and solve exercises. Correct answers raise your difficulty level and earn rating points; wrong ones lower the level (never below 1). Send "stop" to finish a run.
• Reminders — a daily nudge at a time you choose.
• Level — your current difficulty level.
• Rating — top players and your own standing.

Commands: /start, /menu, /help.`
)
