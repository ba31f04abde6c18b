// Package provider defines the remote generation backends.
package provider

import "github.com/ZaguanLabs/furigo"

// AIProvider is the interface for remote generation backends.
// This is an alias to the main package interface for convenience.
type AIProvider = furigo.AIProvider
