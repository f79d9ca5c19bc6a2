package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUserRepo_CreateIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	users := s.Users()
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &User{ID: 1, FirstName: "Anna", Age: 30, Target: "focus", Level: 1}))
	require.NoError(t, users.Create(ctx, &User{ID: 1, FirstName: "Other", Age: 99, Target: "x", Level: 1}))

	got, err := users.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Anna", got.FirstName, "second create must not overwrite")

	count, err := users.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestUserRepo_LevelRoundTrip(t *testing.T) {
	s := openTestStore(t)
	users := s.Users()
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &User{ID: 2, FirstName: "Boris", Level: 1}))

	require.NoError(t, users.SetLevel(ctx, 2, 4))
	level, err := users.Level(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, 4, level)

	err = users.SetLevel(ctx, 999, 2)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepo_GetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Users().Get(context.Background(), 404)
	require.ErrorIs(t, err, ErrUserNotFound)

	exists, err := s.Users().Exists(context.Background(), 404)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestUserRepo_DueForSurvey(t *testing.T) {
	s := openTestStore(t)
	users := s.Users()
	ctx := context.Background()
	now := time.Now()

	old := &User{ID: 10, FirstName: "Old", CreatedAt: now.Add(-72 * time.Hour)}
	fresh := &User{ID: 11, FirstName: "Fresh", CreatedAt: now.Add(-time.Hour)}
	done := &User{ID: 12, FirstName: "Done", CreatedAt: now.Add(-72 * time.Hour), SurveySent: true}
	for _, u := range []*User{old, fresh, done} {
		require.NoError(t, users.Create(ctx, u))
	}

	due, err := users.DueForSurvey(ctx, now, 48*time.Hour)
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.EqualValues(t, 10, due[0].ID)

	require.NoError(t, users.MarkSurveySent(ctx, 10))
	due, err = users.DueForSurvey(ctx, now, 48*time.Hour)
	require.NoError(t, err)
	require.Empty(t, due)
}

func TestRatingRepo_AddPointsAccumulates(t *testing.T) {
	s := openTestStore(t)
	ratings := s.Ratings()
	ctx := context.Background()

	require.NoError(t, s.Users().Create(ctx, &User{ID: 1, FirstName: "Anna"}))

	require.NoError(t, ratings.AddPoints(ctx, 1, 3))
	require.NoError(t, ratings.AddPoints(ctx, 1, 5))

	standing, err := ratings.Standing(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 8, standing.Points)
	require.Equal(t, 1, standing.Rank)
}

func TestRatingRepo_TopAndStanding(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	names := map[int64]string{1: "Anna", 2: "Boris", 3: "Clara", 4: "Dan"}
	points := map[int64]int{1: 10, 2: 30, 3: 20, 4: 5}
	for id, name := range names {
		require.NoError(t, s.Users().Create(ctx, &User{ID: id, FirstName: name}))
		require.NoError(t, s.Ratings().AddPoints(ctx, id, points[id]))
	}

	top, err := s.Ratings().Top(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	require.Equal(t, "Boris", top[0].FirstName)
	require.Equal(t, 30, top[0].Points)
	require.Equal(t, "Clara", top[1].FirstName)
	require.Equal(t, "Anna", top[2].FirstName)

	standing, err := s.Ratings().Standing(ctx, 4)
	require.NoError(t, err)
	require.Equal(t, 4, standing.Rank)
	require.Equal(t, 5, standing.Points)
}

func TestRatingRepo_StandingWithoutRow(t *testing.T) {
	s := openTestStore(t)

	standing, err := s.Ratings().Standing(context.Background(), 77)
	require.NoError(t, err)
	require.Zero(t, standing.Rank)
	require.Zero(t, standing.Points)
}

func TestReminderRepo_Lifecycle(t *testing.T) {
	s := openTestStore(t)
	rems := s.Reminders()
	ctx := context.Background()

	_, err := rems.Get(ctx, 1)
	require.ErrorIs(t, err, ErrReminderNotFound)

	require.NoError(t, rems.Upsert(ctx, &Reminder{UserID: 1, JobID: "reminder:1", RemindTime: "09:30", Enabled: true}))

	rem, err := rems.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "09:30", rem.RemindTime)
	require.True(t, rem.Enabled)

	require.NoError(t, rems.SetEnabled(ctx, 1, false))
	rem, err = rems.Get(ctx, 1)
	require.NoError(t, err)
	require.False(t, rem.Enabled)

	require.NoError(t, rems.SetTime(ctx, 1, "18:00", "reminder:1"))
	rem, err = rems.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "18:00", rem.RemindTime)

	require.NoError(t, rems.Delete(ctx, 1))
	_, err = rems.Get(ctx, 1)
	require.ErrorIs(t, err, ErrReminderNotFound)
}

func TestReminderRepo_UpsertKeepsDisabled(t *testing.T) {
	s := openTestStore(t)
	rems := s.Reminders()
	ctx := context.Background()

	require.NoError(t, rems.Upsert(ctx, &Reminder{UserID: 7, RemindTime: "09:00", Enabled: false}))

	rem, err := rems.Get(ctx, 7)
	require.NoError(t, err)
	require.False(t, rem.Enabled, "a freshly inserted disabled reminder must stay disabled")
}

func TestReminderRepo_AllEnabled(t *testing.T) {
	s := openTestStore(t)
	rems := s.Reminders()
	ctx := context.Background()

	require.NoError(t, rems.Upsert(ctx, &Reminder{UserID: 1, RemindTime: "08:00", Enabled: true}))
	require.NoError(t, rems.Upsert(ctx, &Reminder{UserID: 2, RemindTime: "09:00", Enabled: false}))
	require.NoError(t, rems.Upsert(ctx, &Reminder{UserID: 3, RemindTime: "10:00", Enabled: true}))

	enabled, err := rems.AllEnabled(ctx)
	require.NoError(t, err)
	require.Len(t, enabled, 2)
}

func TestReminderRepo_SetOnMissingRow(t *testing.T) {
	s := openTestStore(t)

	err := s.Reminders().SetEnabled(context.Background(), 5, true)
	require.True(t, errors.Is(err, ErrReminderNotFound))
}
