package furigo

import "context"

// PreferenceStore persists the user's display preference.
type PreferenceStore interface {
	// LoadPreference returns the stored preference, or DefaultPreference when
	// nothing has been stored.
	LoadPreference(ctx context.Context) (UserPreference, error)

	// SavePreference stores the preference.
	SavePreference(ctx context.Context, pref UserPreference) error
}
