package revx

import (
	"context"
	"sync"
)

// RefreshController holds one project's client-side view state and
// re-fetches it on demand. Concurrent refreshes are allowed; whichever
// request resolves last wins, with no generation tracking, matching the
// way the UI treats the project as a single replaceable value.
type RefreshController struct {
	mu      sync.RWMutex
	client  *Client
	session *Session

	projectID uint64
	project   *Project
	inFlight  int
	lastErr   error

	// refreshCount increments on every triggered refresh, including
	// ones that fail.
	refreshCount uint64

	// editing and managing are view-mode flags. Callers keep them
	// mutually exclusive; the controller only stores them.
	editing  bool
	managing bool
}

// NewRefreshController builds a controller for one project.
func NewRefreshController(client *Client, session *Session, projectID uint64) *RefreshController {
	return &RefreshController{
		client:    client,
		session:   session,
		projectID: projectID,
	}
}

// TriggerRefresh bumps the refresh counter and re-fetches the project.
// On success the held project is replaced wholesale; on failure the stale
// project is kept and the error recorded.
func (rc *RefreshController) TriggerRefresh(ctx context.Context) error {
	rc.mu.Lock()
	rc.refreshCount++
	rc.inFlight++
	rc.mu.Unlock()

	return rc.fetch(ctx)
}

// RefreshProjectData re-fetches the project without bumping the refresh
// counter. Used after mutations where the caller already knows the data
// changed.
func (rc *RefreshController) RefreshProjectData(ctx context.Context) error {
	rc.mu.Lock()
	rc.inFlight++
	rc.mu.Unlock()

	return rc.fetch(ctx)
}

func (rc *RefreshController) fetch(ctx context.Context) error {
	project, err := rc.client.GetProject(ctx, rc.projectID)

	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.inFlight--
	if err != nil {
		rc.lastErr = err
		return err
	}
	rc.project = project
	rc.lastErr = nil
	return nil
}

// Project returns the currently held project, possibly stale or nil.
func (rc *RefreshController) Project() *Project {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.project
}

// Loading reports whether a refresh is in flight.
func (rc *RefreshController) Loading() bool {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.inFlight > 0
}

// LastError returns the error from the most recent failed refresh, or nil
// after a successful one.
func (rc *RefreshController) LastError() error {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.lastErr
}

// RefreshCount returns how many times TriggerRefresh has run.
func (rc *RefreshController) RefreshCount() uint64 {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.refreshCount
}

// IsOwner reports whether the session's user owns the held project. It is
// recomputed from current state on every call, so login, logout, and
// refresh are all reflected immediately.
func (rc *RefreshController) IsOwner() bool {
	rc.mu.RLock()
	project := rc.project
	rc.mu.RUnlock()

	if project == nil {
		return false
	}
	user := rc.session.User()
	if user == nil {
		return false
	}
	return project.OwnerID == user.ID
}

// SetEditing toggles edit mode. Entering edit mode leaves manage mode.
func (rc *RefreshController) SetEditing(on bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.editing = on
	if on {
		rc.managing = false
	}
}

// SetManaging toggles contributor-management mode. Entering it leaves
// edit mode.
func (rc *RefreshController) SetManaging(on bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.managing = on
	if on {
		rc.editing = false
	}
}

// Editing reports whether edit mode is on.
func (rc *RefreshController) Editing() bool {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.editing
}

// Managing reports whether contributor-management mode is on.
func (rc *RefreshController) Managing() bool {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.managing
}
