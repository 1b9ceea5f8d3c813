package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mahabubulhasibshawon/library-borrow/internal/domain"
)

func TestComputeAlerts(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour
	returnedAt := now.Add(-day)

	borrowings := []domain.Borrowing{
		{ID: 1, Status: domain.BorrowingBorrowed, DueDate: now.Add(-day)},                          // past due, not yet promoted
		{ID: 2, Status: domain.BorrowingOverdue, DueDate: now.Add(-3 * day)},                       // promoted
		{ID: 3, Status: domain.BorrowingBorrowed, DueDate: now.Add(day)},                           // due soon
		{ID: 4, Status: domain.BorrowingBorrowed, DueDate: now.Add(2 * day)},                       // edge of window
		{ID: 5, Status: domain.BorrowingBorrowed, DueDate: now.Add(2*day + time.Hour)},             // outside window
		{ID: 6, Status: domain.BorrowingReturned, DueDate: now.Add(-day), ReturnDate: &returnedAt}, // ignored
		{ID: 7, Status: domain.BorrowingBorrowed},                                                  // no due date
	}

	got := ComputeAlerts(borrowings, now)
	assert.Equal(t, DueAlerts{Overdue: 2, DueSoon: 2}, got)
	assert.Equal(t, domain.BorrowingBorrowed, borrowings[0].Status, "alerts never rewrite status")
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name     string
		statuses []domain.BorrowingStatus
		want     BorrowingStats
	}{
		{
			name: "No history",
			want: BorrowingStats{OnTimePercent: 100},
		},
		{
			name:     "Only active loans",
			statuses: []domain.BorrowingStatus{domain.BorrowingBorrowed, domain.BorrowingBorrowed},
			want:     BorrowingStats{Total: 2, Borrowing: 2, OnTimePercent: 100},
		},
		{
			name: "Mixed",
			statuses: []domain.BorrowingStatus{
				domain.BorrowingReturned, domain.BorrowingReturned, domain.BorrowingOverdue, domain.BorrowingBorrowed,
			},
			want: BorrowingStats{Total: 4, Borrowing: 1, Returned: 2, Overdue: 1, OnTimePercent: 67},
		},
		{
			name:     "All overdue",
			statuses: []domain.BorrowingStatus{domain.BorrowingOverdue},
			want:     BorrowingStats{Total: 1, Overdue: 1, OnTimePercent: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var borrowings []domain.Borrowing
			for i, s := range tt.statuses {
				borrowings = append(borrowings, domain.Borrowing{ID: int64(i + 1), Status: s})
			}
			assert.Equal(t, tt.want, ComputeStats(borrowings))
		})
	}
}

func TestRecentRequests(t *testing.T) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	requests := []domain.BorrowRequest{
		{ID: 1, CreatedAt: base},
		{ID: 2, CreatedAt: base.Add(3 * time.Hour)},
		{ID: 3, CreatedAt: base.Add(time.Hour)},
		{ID: 4, CreatedAt: base.Add(2 * time.Hour)},
	}

	got := RecentRequests(requests, 3)
	var gotIDs []int64
	for _, r := range got {
		gotIDs = append(gotIDs, r.ID)
	}
	assert.Equal(t, []int64{2, 4, 3}, gotIDs)
	assert.Equal(t, int64(1), requests[0].ID, "input order is preserved")

	assert.Len(t, RecentRequests(requests[:2], 3), 2)
	assert.Empty(t, RecentRequests(nil, 3))
}
