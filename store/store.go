// Package store provides persistence for the user's display preference.
package store

import "github.com/ZaguanLabs/furigo"

// PreferenceStore is the interface for preference persistence.
// This is an alias to the main package interface for convenience.
type PreferenceStore = furigo.PreferenceStore
