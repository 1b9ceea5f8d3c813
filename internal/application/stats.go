package application

import (
	"math"
	"sort"
	"time"

	"github.com/mahabubulhasibshawon/library-borrow/internal/domain"
)

// DueSoonWindowDays is how close to the due date a loan starts counting as due soon.
const DueSoonWindowDays = 2

// DueAlerts are advisory counts derived from wall-clock time. They never feed
// back into a borrowing's status.
type DueAlerts struct {
	Overdue int
	DueSoon int
}

// BorrowingStats summarises a user's borrowing history.
type BorrowingStats struct {
	Total         int
	Borrowing     int
	Returned      int
	Overdue       int
	OnTimePercent int
}

func ComputeAlerts(borrowings []domain.Borrowing, now time.Time) DueAlerts {
	var a DueAlerts
	for _, b := range borrowings {
		if b.Status == domain.BorrowingReturned || b.DueDate.IsZero() {
			continue
		}
		diffDays := float64(b.DueDate.Sub(now)) / float64(24*time.Hour)
		switch {
		case b.Status == domain.BorrowingOverdue || diffDays < 0:
			a.Overdue++
		case diffDays <= DueSoonWindowDays:
			a.DueSoon++
		}
	}
	return a
}

func ComputeStats(borrowings []domain.Borrowing) BorrowingStats {
	s := BorrowingStats{Total: len(borrowings)}
	for _, b := range borrowings {
		switch b.Status {
		case domain.BorrowingBorrowed:
			s.Borrowing++
		case domain.BorrowingReturned:
			s.Returned++
		case domain.BorrowingOverdue:
			s.Overdue++
		}
	}
	s.OnTimePercent = OnTimePercent(s.Returned, s.Overdue)
	return s
}

// OnTimePercent is returned / (returned + overdue) as a rounded percentage.
// With no history it is 100.
func OnTimePercent(returned, overdue int) int {
	base := returned + overdue
	if base == 0 {
		return 100
	}
	return int(math.Round(float64(returned) / float64(base) * 100))
}

// RecentRequests returns up to n requests, newest first.
func RecentRequests(requests []domain.BorrowRequest, n int) []domain.BorrowRequest {
	sorted := append([]domain.BorrowRequest(nil), requests...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
