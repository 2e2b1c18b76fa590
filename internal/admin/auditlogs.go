package admin

import (
	"context"
	"sync"

	"github.com/timesheet-offline/timeclock-client-go/internal/domain/audit"
)

// AuditLogsView browses the audit trail one zero-based page at a time.
// Changing the page always fetches that page; nothing is cached.
type AuditLogsView struct {
	ws *Workspace

	mu     sync.Mutex
	page   int
	data   audit.LogPage
	errMsg string
}

func newAuditLogsView(ws *Workspace) *AuditLogsView {
	return &AuditLogsView{ws: ws}
}

// Page returns the current zero-based page index.
func (v *AuditLogsView) Page() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

// Entries returns the current page and any inline fetch error.
func (v *AuditLogsView) Entries() (audit.LogPage, string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.data, v.errMsg
}

// CanPrev reports whether a previous page exists.
func (v *AuditLogsView) CanPrev() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page > 0
}

// CanNext reports whether a next page exists.
func (v *AuditLogsView) CanNext() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page < v.data.TotalPages-1
}

// Prev fetches the previous page; a no-op on the first page.
func (v *AuditLogsView) Prev(ctx context.Context) {
	if !v.CanPrev() {
		return
	}
	v.mu.Lock()
	v.page--
	v.mu.Unlock()
	v.fetch(ctx)
}

// Next fetches the next page; a no-op on the last page.
func (v *AuditLogsView) Next(ctx context.Context) {
	if !v.CanNext() {
		return
	}
	v.mu.Lock()
	v.page++
	v.mu.Unlock()
	v.fetch(ctx)
}

func (v *AuditLogsView) fetch(ctx context.Context) {
	v.mu.Lock()
	page := v.page
	v.mu.Unlock()

	data, err := v.ws.client.AuditLogs(ctx, v.ws.session.Token(), page, AuditPageSize)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.errMsg = err.Error()
		return
	}
	v.data = data
	v.errMsg = ""
}
