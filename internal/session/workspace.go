// Package session keeps per-client workspaces that hold an optional
// reference dataset so several analyses can reuse one upload.
package session

import (
	"bytes"
	"sync"
	"time"

	"github.com/donaldgifford/network-link-manager/internal/ingest"
	"github.com/donaldgifford/network-link-manager/internal/metrics"
)

// Workspace is an explicit analysis context. It holds at most one named
// reference upload. Safe for concurrent use.
type Workspace struct {
	id        string
	createdAt time.Time

	mu       sync.RWMutex
	ref      *ingest.Upload
	refSetAt time.Time
	lastUsed time.Time
}

// NewWorkspace returns an empty workspace.
func NewWorkspace(id string, now time.Time) *Workspace {
	return &Workspace{id: id, createdAt: now, lastUsed: now}
}

// ID returns the workspace id.
func (w *Workspace) ID() string {
	return w.id
}

// CreatedAt returns the creation time.
func (w *Workspace) CreatedAt() time.Time {
	return w.createdAt
}

// SetReference stores a copy of u, replacing any previous reference.
func (w *Workspace) SetReference(u *ingest.Upload, now time.Time) {
	cp := *u
	cp.Content = bytes.Clone(u.Content)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.ref != nil {
		metrics.ReferenceBytes.Sub(float64(w.ref.Size()))
	}
	w.ref = &cp
	w.refSetAt = now
	metrics.ReferenceBytes.Add(float64(cp.Size()))
}

// Reference returns the stored reference upload and when it was set. The
// returned upload shares its content with the workspace and must not be
// modified.
func (w *Workspace) Reference() (ingest.Upload, time.Time, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.ref == nil {
		return ingest.Upload{}, time.Time{}, false
	}
	return *w.ref, w.refSetAt, true
}

// ClearReference drops the stored reference. It reports whether one was set.
func (w *Workspace) ClearReference() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.ref == nil {
		return false
	}
	metrics.ReferenceBytes.Sub(float64(w.ref.Size()))
	w.ref = nil
	w.refSetAt = time.Time{}
	return true
}

// Touch records activity at now.
func (w *Workspace) Touch(now time.Time) {
	w.mu.Lock()
	w.lastUsed = now
	w.mu.Unlock()
}

// LastUsed returns the time of the most recent activity.
func (w *Workspace) LastUsed() time.Time {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastUsed
}
