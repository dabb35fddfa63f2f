package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/challengely/challengely/internal/profile"
)

// maxUpdateAttempts bounds the compare-and-swap retry loop.
const maxUpdateAttempts = 5

// Message is one chat log entry.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	FromUser  bool      `json:"fromUser"`
	Timestamp time.Time `json:"timestamp"`
}

// decode loads key into v. It reports found=false for absent records and for
// records that fail to decode or validate; the latter are logged.
func (s *Store) decode(ctx context.Context, key string, v any) (version int64, found bool, err error) {
	raw, version, ok, err := s.get(ctx, key)
	if err != nil || !ok {
		return version, false, err
	}
	if err := validateRecord(key, raw); err != nil {
		s.log.Warn("ignoring malformed record", "key", key, "error", err)
		return version, false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		s.log.Warn("ignoring undecodable record", "key", key, "error", err)
		return version, false, nil
	}
	return version, true, nil
}

func (s *Store) encodePut(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.put(ctx, key, raw)
}

// LoadProfile returns the stored profile, or nil when none is stored.
func (s *Store) LoadProfile(ctx context.Context) (*profile.UserProfile, error) {
	var p profile.UserProfile
	_, found, err := s.decode(ctx, KeyProfile, &p)
	if err != nil || !found {
		return nil, err
	}
	p = normalizeProfile(p)
	return &p, nil
}

// SaveProfile overwrites the stored profile.
func (s *Store) SaveProfile(ctx context.Context, p profile.UserProfile) error {
	return s.encodePut(ctx, KeyProfile, normalizeProfile(p))
}

// UpdateProfile applies fn to the stored profile (defaults when absent) and
// writes the result with compare-and-swap, retrying on version conflicts.
// fn returns false to skip the write. It may run more than once.
func (s *Store) UpdateProfile(ctx context.Context, fn func(*profile.UserProfile) bool) (profile.UserProfile, bool, error) {
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		p := profile.New()
		version, _, err := s.decode(ctx, KeyProfile, &p)
		if err != nil {
			return profile.UserProfile{}, false, err
		}
		p = normalizeProfile(p)

		if !fn(&p) {
			return p, false, nil
		}

		raw, err := json.Marshal(normalizeProfile(p))
		if err != nil {
			return profile.UserProfile{}, false, fmt.Errorf("marshal profile: %w", err)
		}
		err = s.compareAndSwap(ctx, KeyProfile, raw, version)
		if errors.Is(err, ErrVersionConflict) {
			s.log.Debug("profile changed underneath update, retrying", "attempt", attempt+1)
			continue
		}
		if err != nil {
			return profile.UserProfile{}, false, err
		}
		return p, true, nil
	}
	return profile.UserProfile{}, false, fmt.Errorf("update profile after %d attempts: %w", maxUpdateAttempts, ErrVersionConflict)
}

// normalizeProfile makes slices non-nil so the stored JSON matches the schema.
func normalizeProfile(p profile.UserProfile) profile.UserProfile {
	p = p.Clone()
	p.Interests = profile.NormalizeInterests(p.Interests)
	if p.CompletedChallenges == nil {
		p.CompletedChallenges = []string{}
	}
	if p.StreakCount < 0 {
		p.StreakCount = 0
	}
	return p
}

// LoadMessages returns the chat log, empty when none is stored.
func (s *Store) LoadMessages(ctx context.Context) ([]Message, error) {
	var msgs []Message
	_, found, err := s.decode(ctx, KeyMessages, &msgs)
	if err != nil {
		return nil, err
	}
	if !found || msgs == nil {
		return []Message{}, nil
	}
	return msgs, nil
}

// SaveMessages overwrites the chat log.
func (s *Store) SaveMessages(ctx context.Context, msgs []Message) error {
	if msgs == nil {
		msgs = []Message{}
	}
	return s.encodePut(ctx, KeyMessages, msgs)
}

// LoadSettings returns the notification settings, or nil when none are stored.
func (s *Store) LoadSettings(ctx context.Context) (*profile.NotificationSettings, error) {
	var ns profile.NotificationSettings
	_, found, err := s.decode(ctx, KeySettings, &ns)
	if err != nil || !found {
		return nil, err
	}
	ns = ns.Normalize()
	return &ns, nil
}

// SaveSettings overwrites the notification settings.
func (s *Store) SaveSettings(ctx context.Context, ns profile.NotificationSettings) error {
	return s.encodePut(ctx, KeySettings, ns.Normalize())
}

// OnboardingComplete reports whether onboarding has been finished.
func (s *Store) OnboardingComplete(ctx context.Context) (bool, error) {
	var done bool
	_, _, err := s.decode(ctx, KeyOnboardingComplete, &done)
	return done, err
}

// SetOnboardingComplete persists the onboarding flag.
func (s *Store) SetOnboardingComplete(ctx context.Context, done bool) error {
	return s.encodePut(ctx, KeyOnboardingComplete, done)
}
