// Package session tracks per-user conversational state. Telegram gives no
// ordering or exclusivity guarantees across updates, so each session carries
// its own mutex and handlers hold it for the whole update.
package session

import (
	"sync"

	"github.com/google/uuid"

	"focusbot/internal/taskgen"
)

// Phase represents what the bot is currently waiting for from the user.
type Phase int

const (
	PhaseIdle             Phase = iota // No dialogue in progress
	PhaseAwaitingName                  // Registration: first name
	PhaseAwaitingAge                   // Registration: age
	PhaseAwaitingGoal                  // Registration: training goal pick
	PhaseAwaitingAnswer                // Training: answer to the active exercise
	PhaseAwaitingTime                  // Reminders: HH:MM entry
)

// Session is the runtime state of one user's dialogue.
type Session struct {
	// ID identifies this session in logs.
	ID string

	// UserID is the Telegram user the session belongs to.
	UserID int64

	// Phase is what the bot expects next.
	Phase Phase

	// FirstName and Age buffer registration input until the flow completes.
	FirstName string
	Age       int

	// ReminderAction notes what a pending HH:MM entry is for:
	// "enable" or "change".
	ReminderAction string

	// Category is the category picked at the start of the training run.
	// Empty means the model chooses per exercise.
	Category taskgen.Category

	// Task is the active exercise (nil outside training).
	Task *taskgen.Task

	// PriorTasks lists exercise texts already served in this run, for
	// repetition avoidance in the generation prompt.
	PriorTasks []string

	// Served and Correct count exercises in this training run.
	Served  int
	Correct int

	// PointsEarned accumulates rating points across this run.
	PointsEarned int

	// TaskMessageIDs are bot messages to delete before the next exercise
	// so the chat stays readable.
	TaskMessageIDs []int

	mu sync.Mutex
}

// Lock serializes updates for this user. Handlers hold it for the whole
// update so a double-tap cannot evaluate the same exercise twice.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the per-session lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// RecordTask notes a served exercise for dedup and stats.
func (s *Session) RecordTask(task *taskgen.Task) {
	s.Task = task
	s.PriorTasks = append(s.PriorTasks, task.Text)
	s.Served++
}

// EndTraining drops training state but keeps the session alive for the
// next dialogue.
func (s *Session) EndTraining() {
	s.Phase = PhaseIdle
	s.Category = ""
	s.Task = nil
	s.PriorTasks = nil
	s.TaskMessageIDs = nil
	s.Served = 0
	s.Correct = 0
	s.PointsEarned = 0
}

// Manager holds sessions keyed by Telegram user ID.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*Session)}
}

// Get returns the user's session, or nil when none exists.
func (m *Manager) Get(userID int64) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[userID]
}

// GetOrCreate returns the user's session, creating an idle one on first use.
func (m *Manager) GetOrCreate(userID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userID]; ok {
		return s
	}

	s := &Session{
		ID:     uuid.NewString(),
		UserID: userID,
		Phase:  PhaseIdle,
	}
	m.sessions[userID] = s
	return s
}

// Clear drops the user's session entirely.
func (m *Manager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
