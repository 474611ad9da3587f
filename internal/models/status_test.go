package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobStatusTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    JobStatus
		to      JobStatus
		allowed bool
	}{
		{"pending to approved", JobStatusPending, JobStatusApproved, true},
		{"pending to rejected", JobStatusPending, JobStatusRejected, true},
		{"pending to closed", JobStatusPending, JobStatusClosed, false},
		{"approved to closed", JobStatusApproved, JobStatusClosed, true},
		{"approved to rejected", JobStatusApproved, JobStatusRejected, true},
		{"approved to approved is idempotent", JobStatusApproved, JobStatusApproved, true},
		{"rejected to approved", JobStatusRejected, JobStatusApproved, true},
		{"rejected to closed", JobStatusRejected, JobStatusClosed, false},
		{"closed is terminal", JobStatusClosed, JobStatusApproved, false},
		{"closed to closed no-op", JobStatusClosed, JobStatusClosed, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransition(tc.to))
		})
	}
}

func TestApplicationStatusTransitions(t *testing.T) {
	cases := []struct {
		name    string
		from    ApplicationStatus
		to      ApplicationStatus
		allowed bool
	}{
		{"pending to reviewed", ApplicationStatusPending, ApplicationStatusReviewed, true},
		{"pending to shortlisted", ApplicationStatusPending, ApplicationStatusShortlisted, true},
		{"pending to hired", ApplicationStatusPending, ApplicationStatusHired, true},
		{"reviewed to shortlisted", ApplicationStatusReviewed, ApplicationStatusShortlisted, true},
		{"shortlisted back to reviewed", ApplicationStatusShortlisted, ApplicationStatusReviewed, true},
		{"shortlisted to hired", ApplicationStatusShortlisted, ApplicationStatusHired, true},
		{"rejected is terminal", ApplicationStatusRejected, ApplicationStatusReviewed, false},
		{"hired is terminal", ApplicationStatusHired, ApplicationStatusShortlisted, false},
		{"rejected to rejected no-op", ApplicationStatusRejected, ApplicationStatusRejected, true},
		{"hired to hired no-op", ApplicationStatusHired, ApplicationStatusHired, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransition(tc.to))
		})
	}
}

func TestNotifiesSeeker(t *testing.T) {
	assert.True(t, ApplicationStatusRejected.NotifiesSeeker())
	assert.True(t, ApplicationStatusShortlisted.NotifiesSeeker())
	assert.False(t, ApplicationStatusReviewed.NotifiesSeeker())
	assert.False(t, ApplicationStatusHired.NotifiesSeeker())
	assert.False(t, ApplicationStatusPending.NotifiesSeeker())
}

func TestJobPostingListable(t *testing.T) {
	p := JobPosting{IsActive: true, Status: JobStatusApproved}
	assert.True(t, p.Listable())

	p.IsActive = false
	assert.False(t, p.Listable())

	p.IsActive = true
	p.Status = JobStatusPending
	assert.False(t, p.Listable())
}
