package models

import (
	"sync"
	"time"

	"unused-image-finder/internal/folder"
	"unused-image-finder/internal/matcher"
)

// Session holds the presentation layer's current folder, prefix and last result.
// The matcher never sees it; values are copied out and passed in explicitly.
type Session struct {
	mu             sync.RWMutex
	listing        *folder.Listing
	prefixOverride *string
	lastResult     *matcher.Result
	lastRun        time.Time
	runs           int
	generation     uint64
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{}
}

// SetListing replaces the current folder listing and drops state derived from the old one
func (s *Session) SetListing(listing folder.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := listing
	l.Images = append([]string(nil), listing.Images...)
	s.listing = &l
	s.prefixOverride = nil
	s.lastResult = nil
	s.generation++
}

// Generation counts listing replacements; a result computed under an older
// generation belongs to a folder that is no longer current.
func (s *Session) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Listing returns a copy of the current listing and whether a folder is selected
func (s *Session) Listing() (folder.Listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.listing == nil {
		return folder.Listing{}, false
	}
	l := *s.listing
	l.Images = append([]string(nil), s.listing.Images...)
	return l, true
}

// SetProjectFolder overrides the derived reference prefix for the current folder
func (s *Session) SetProjectFolder(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefixOverride = &name
}

// ProjectFolder returns the override when set, else the listing's derived name
func (s *Session) ProjectFolder() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.prefixOverride != nil {
		return *s.prefixOverride
	}
	if s.listing != nil {
		return s.listing.ProjectFolder
	}
	return ""
}

// RecordResult keeps the most recent match result for copy and export.
// It reports false, and keeps nothing, when the listing changed since generation.
func (s *Session) RecordResult(generation uint64, result matcher.Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		return false
	}
	r := result
	r.Unused = append([]string(nil), result.Unused...)
	s.lastResult = &r
	s.lastRun = time.Now()
	s.runs++
	return true
}

// LastResult returns the most recent result, if any
func (s *Session) LastResult() (matcher.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastResult == nil {
		return matcher.Result{}, false
	}
	return *s.lastResult, true
}

// Stats summarises session activity for logging
func (s *Session) Stats() SessionStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := SessionStats{Runs: s.runs, LastRun: s.lastRun}
	if s.listing != nil {
		stats.Folder = s.listing.Path
		stats.Images = len(s.listing.Images)
	}
	if s.lastResult != nil {
		stats.Unused = len(s.lastResult.Unused)
	}
	return stats
}

// SessionStats is a snapshot of session counters
type SessionStats struct {
	Folder  string
	Images  int
	Unused  int
	Runs    int
	LastRun time.Time
}
