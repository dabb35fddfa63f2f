package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/challengely/challengely/internal/catalog"
)

func TestNewDefaults(t *testing.T) {
	p := New()
	assert.Empty(t, p.Interests)
	assert.Equal(t, catalog.DifficultyMedium, p.Difficulty)
	assert.Zero(t, p.StreakCount)
	assert.Empty(t, p.CompletedChallenges)
	assert.Nil(t, p.LastCompletionDate)
}

func TestNormalizeInterests(t *testing.T) {
	got := NormalizeInterests([]catalog.Category{
		catalog.CategorySocial,
		catalog.CategoryFitness,
		catalog.CategorySocial,
		catalog.Category("cooking"),
	})
	assert.Equal(t, []catalog.Category{catalog.CategoryFitness, catalog.CategorySocial}, got)
}

func TestCloneIsDeep(t *testing.T) {
	p := New()
	p.SetInterests([]catalog.Category{catalog.CategoryLearning})
	p.CompletedChallenges = []string{"a"}
	now := time.Now()
	p.LastCompletionDate = &now

	c := p.Clone()
	c.Interests[0] = catalog.CategorySocial
	c.CompletedChallenges[0] = "b"
	*c.LastCompletionDate = now.Add(time.Hour)

	assert.Equal(t, catalog.CategoryLearning, p.Interests[0])
	assert.Equal(t, "a", p.CompletedChallenges[0])
	assert.True(t, p.LastCompletionDate.Equal(now))
}

func TestNextNotificationDisplay(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, "Daily at 8:00 AM", s.NextNotificationDisplay())

	s.Frequency = FrequencyWeekly
	s.Hour, s.Minute = 18, 30
	assert.Equal(t, "Weekly at 6:30 PM", s.NextNotificationDisplay())
}

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		in      string
		want    Frequency
		wantErr bool
	}{
		{"daily", FrequencyDaily, false},
		{"weekly", FrequencyWeekly, false},
		{"Weekly", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFrequency(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestSettingsNormalize(t *testing.T) {
	s := NotificationSettings{Enabled: false, Hour: 99, Minute: -1, Frequency: "hourly", Weekday: 12}
	got := s.Normalize()
	assert.False(t, got.Enabled)
	assert.Equal(t, 8, got.Hour)
	assert.Equal(t, 0, got.Minute)
	assert.Equal(t, FrequencyDaily, got.Frequency)
	assert.Equal(t, time.Monday, got.Weekday)
}
