package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/challengely/challengely/internal/catalog"
	"github.com/challengely/challengely/internal/logger"
	"github.com/challengely/challengely/internal/profile"
)

func openTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), opts...)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestProfileAbsentIsNil(t *testing.T) {
	s := openTestStore(t)
	p, err := s.LoadProfile(context.Background())
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProfileSaveLoad(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	last := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)
	want := profile.UserProfile{
		Interests:           []catalog.Category{catalog.CategorySocial, catalog.CategoryFitness},
		Difficulty:          catalog.DifficultyHard,
		StreakCount:         3,
		CompletedChallenges: []string{"hiit-workout", "hiit-workout"},
		LastCompletionDate:  &last,
	}
	require.NoError(t, s.SaveProfile(ctx, want))

	got, err := s.LoadProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)

	// Interests come back in catalog order.
	assert.Equal(t, []catalog.Category{catalog.CategoryFitness, catalog.CategorySocial}, got.Interests)
	assert.Equal(t, want.Difficulty, got.Difficulty)
	assert.Equal(t, want.StreakCount, got.StreakCount)
	if diff := cmp.Diff(want.CompletedChallenges, got.CompletedChallenges); diff != "" {
		t.Errorf("completed challenges mismatch (-want +got):\n%s", diff)
	}
	require.NotNil(t, got.LastCompletionDate)
	assert.True(t, got.LastCompletionDate.Equal(last))
}

func TestMalformedRecordsTreatedAsAbsent(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := openTestStore(t, WithLogger(logger.FromZap(zap.New(core))))
	ctx := context.Background()

	tests := []struct {
		key string
		raw string
	}{
		{KeyProfile, `{"interests": ["cooking"], "difficulty": "medium", "streakCount": 1, "completedChallenges": []}`},
		{KeyMessages, `not json`},
		{KeySettings, `{"enabled": true, "hour": 25, "minute": 0, "frequency": "daily"}`},
	}
	for _, tt := range tests {
		require.NoError(t, s.put(ctx, tt.key, []byte(tt.raw)))
	}

	p, err := s.LoadProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, p)

	msgs, err := s.LoadMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	ns, err := s.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Nil(t, ns)

	assert.Equal(t, 3, logs.FilterMessageSnippet("malformed").Len())
}

func TestMessagesRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	msgs, err := s.LoadMessages(ctx)
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)

	ts := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	want := []Message{
		{ID: "1", Text: "Hi!", FromUser: false, Timestamp: ts},
		{ID: "2", Text: "Any tips?", FromUser: true, Timestamp: ts.Add(time.Second)},
	}
	require.NoError(t, s.SaveMessages(ctx, want))

	got, err := s.LoadMessages(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ns, err := s.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Nil(t, ns)

	want := profile.NotificationSettings{Enabled: false, Hour: 19, Minute: 45, Frequency: profile.FrequencyWeekly, Weekday: time.Friday}
	require.NoError(t, s.SaveSettings(ctx, want))

	ns, err = s.LoadSettings(ctx)
	require.NoError(t, err)
	require.NotNil(t, ns)
	assert.Equal(t, want, *ns)
}

func TestOnboardingFlag(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	done, err := s.OnboardingComplete(ctx)
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, s.SetOnboardingComplete(ctx, true))
	done, err = s.OnboardingComplete(ctx)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestCompareAndSwap(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.compareAndSwap(ctx, "k", []byte(`1`), 0))
	err := s.compareAndSwap(ctx, "k", []byte(`2`), 0)
	assert.ErrorIs(t, err, ErrVersionConflict)

	v, err := s.Version(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	require.NoError(t, s.compareAndSwap(ctx, "k", []byte(`2`), 1))
	assert.ErrorIs(t, s.compareAndSwap(ctx, "k", []byte(`3`), 1), ErrVersionConflict)

	require.NoError(t, s.put(ctx, "k", []byte(`4`)))
	v, err = s.Version(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)
}

func TestUpdateProfileDefaultsWhenAbsent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	got, wrote, err := s.UpdateProfile(ctx, func(p *profile.UserProfile) bool {
		p.StreakCount = 1
		return true
	})
	require.NoError(t, err)
	assert.True(t, wrote)
	assert.Equal(t, catalog.DifficultyMedium, got.Difficulty)

	stored, err := s.LoadProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 1, stored.StreakCount)
}

func TestUpdateProfileSkipsWrite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, wrote, err := s.UpdateProfile(ctx, func(*profile.UserProfile) bool { return false })
	require.NoError(t, err)
	assert.False(t, wrote)

	v, err := s.Version(ctx, KeyProfile)
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestUpdateProfileRetriesOnConflict(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveProfile(ctx, profile.New()))

	calls := 0
	got, wrote, err := s.UpdateProfile(ctx, func(p *profile.UserProfile) bool {
		calls++
		if calls == 1 {
			// A competing writer lands between our read and our write.
			other := profile.New()
			other.StreakCount = 10
			require.NoError(t, s.SaveProfile(ctx, other))
		}
		p.StreakCount++
		return true
	})
	require.NoError(t, err)
	assert.True(t, wrote)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 11, got.StreakCount)
}

func TestUpdateProfileGivesUp(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, _, err := s.UpdateProfile(ctx, func(p *profile.UserProfile) bool {
		require.NoError(t, s.SaveProfile(ctx, profile.New()))
		return true
	})
	assert.True(t, errors.Is(err, ErrVersionConflict))
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveProfile(ctx, profile.New()))
	require.NoError(t, s.SetOnboardingComplete(ctx, true))
	require.NoError(t, s.Reset(ctx))

	p, err := s.LoadProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, p)
	done, err := s.OnboardingComplete(ctx)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestDefaultDBPathHonoursEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "x.db")
	t.Setenv("CHALLENGELY_DB", p)
	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.DirExists(t, filepath.Dir(p))
}
