package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/challengely/challengely/internal/analytics"
	"github.com/challengely/challengely/internal/catalog"
	"github.com/challengely/challengely/internal/config"
	"github.com/challengely/challengely/internal/profile"
	"github.com/challengely/challengely/internal/share"
	"github.com/challengely/challengely/internal/store/storetest"
)

func TestPrintStats(t *testing.T) {
	p := profile.New()
	p.StreakCount = 2
	p.CompletedChallenges = []string{catalog.All()[0].ID}

	var buf bytes.Buffer
	printStats(&buf, analytics.Compute(p, time.Date(2026, 2, 3, 8, 0, 0, 0, time.UTC)))

	out := buf.String()
	assert.Contains(t, out, "Current streak:  2 day(s)")
	assert.Contains(t, out, "Completed:       1 challenge(s)")
	assert.Contains(t, out, "Tue    2  ██")
	assert.Contains(t, out, catalog.All()[0].Category.DisplayName())
}

func TestShareTodayRequiresCompletion(t *testing.T) {
	st := storetest.Open(t)
	r, err := share.NewRenderer(t.TempDir(), nil)
	require.NoError(t, err)

	_, err = shareToday(context.Background(), st, r)
	assert.ErrorIs(t, err, errNotCompleted)
}

func TestShareTodayWritesCard(t *testing.T) {
	st := storetest.Open(t)
	now := time.Now()
	p := profile.New()
	p.SetInterests([]catalog.Category{catalog.CategoryMindfulness})
	p.RecordCompletion(catalog.ForDay(p.Interests, now).ID, now)
	require.NoError(t, st.SaveProfile(context.Background(), p))

	r, err := share.NewRenderer(t.TempDir(), nil)
	require.NoError(t, err)

	path, err := shareToday(context.Background(), st, r)
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestCatalogListFilters(t *testing.T) {
	var buf bytes.Buffer
	catalogListCmd.SetOut(&buf)
	t.Cleanup(func() {
		catalogListCmd.SetOut(nil)
		catalogListCmd.Flags().Set("category", "")
	})

	require.NoError(t, catalogListCmd.Flags().Set("category", "mindfulness"))
	require.NoError(t, catalogListCmd.RunE(catalogListCmd, nil))
	assert.Contains(t, buf.String(), "Morning Meditation")
	assert.NotContains(t, buf.String(), "Fitness ")

	require.NoError(t, catalogListCmd.Flags().Set("category", "cooking"))
	assert.Error(t, catalogListCmd.RunE(catalogListCmd, nil))
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, writeDefaultConfig(path, false))
	assert.ErrorIs(t, writeDefaultConfig(path, false), errConfigExists)
	require.NoError(t, writeDefaultConfig(path, true))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Chat, cfg.Chat)
}

func TestConfirmReset(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"yes\n", true},
		{" YES \n", true},
		{"y\n", false},
		{"", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		assert.Equal(t, tt.want, confirmReset(strings.NewReader(tt.input), &out), "%q", tt.input)
		assert.Contains(t, out.String(), "Type 'yes' to continue")
	}
}

func TestResetAbortsWithoutConfirmation(t *testing.T) {
	var out bytes.Buffer
	resetCmd.SetIn(strings.NewReader("no\n"))
	resetCmd.SetOut(&out)
	t.Cleanup(func() {
		resetCmd.SetIn(nil)
		resetCmd.SetOut(nil)
	})

	require.NoError(t, resetCmd.RunE(resetCmd, nil))
	assert.Contains(t, out.String(), "Aborted.")
	assert.NotContains(t, out.String(), "All data deleted")
}
