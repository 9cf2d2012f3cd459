// Package cache holds the station's local view of today's invitations.
// The invitation service owns the data; this is a read-through copy the
// dashboard renders from, refreshed by the scheduler and updated after
// each confirmed transition.
package cache

import (
	"sort"
	"sync"
	"time"

	"visitdesk-station/internal/domain"
)

type ActiveInvitations struct {
	mu        sync.RWMutex
	byNumber  map[string]domain.InvitationRecord
	lateGrace time.Duration
}

func New(lateGrace time.Duration) *ActiveInvitations {
	return &ActiveInvitations{
		byNumber:  make(map[string]domain.InvitationRecord),
		lateGrace: lateGrace,
	}
}

// ReplaceAll swaps the whole cache for a fresh snapshot.
func (c *ActiveInvitations) ReplaceAll(recs []domain.InvitationRecord) {
	next := make(map[string]domain.InvitationRecord, len(recs))
	for _, rec := range recs {
		if rec.InvitationNumber == "" {
			continue
		}
		next[rec.InvitationNumber] = rec
	}
	c.mu.Lock()
	c.byNumber = next
	c.mu.Unlock()
}

// Put upserts a single refreshed record.
func (c *ActiveInvitations) Put(rec domain.InvitationRecord) {
	if rec.InvitationNumber == "" {
		return
	}
	c.mu.Lock()
	c.byNumber[rec.InvitationNumber] = rec
	c.mu.Unlock()
}

// Get returns the cached record for an invitation number, if any.
func (c *ActiveInvitations) Get(number string) (domain.InvitationRecord, bool) {
	c.mu.RLock()
	rec, ok := c.byNumber[number]
	c.mu.RUnlock()
	return rec, ok
}

// Active lists records whose check-in window has not closed at the
// given instant, ordered by scheduled start time.
func (c *ActiveInvitations) Active(now time.Time) []domain.InvitationRecord {
	c.mu.RLock()
	out := make([]domain.InvitationRecord, 0, len(c.byNumber))
	for _, rec := range c.byNumber {
		if now.After(rec.ScheduledEndTime.Add(c.lateGrace)) {
			continue
		}
		out = append(out, rec)
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduledStartTime.Equal(out[j].ScheduledStartTime) {
			return out[i].InvitationNumber < out[j].InvitationNumber
		}
		return out[i].ScheduledStartTime.Before(out[j].ScheduledStartTime)
	})
	return out
}

// Sweep evicts records past their late window and reports how many were
// dropped.
func (c *ActiveInvitations) Sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for number, rec := range c.byNumber {
		if now.After(rec.ScheduledEndTime.Add(c.lateGrace)) {
			delete(c.byNumber, number)
			dropped++
		}
	}
	return dropped
}

// Len reports the cache size.
func (c *ActiveInvitations) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byNumber)
}
