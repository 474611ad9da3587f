package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix       = "user:%d"
	JobKeyPrefix        = "job:%d"
	JobListingsKey      = "jobs:listings"
	CategoriesKey       = "jobs:categories"
	DashboardStatsKey   = "admin:dashboard"
)

const (
	UserTTL        = 5 * time.Minute
	JobTTL         = 10 * time.Minute
	JobListingsTTL = 2 * time.Minute
	CategoriesTTL  = 30 * time.Minute
	DashboardTTL   = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func JobKey(jobID uint) string {
	return fmt.Sprintf(JobKeyPrefix, jobID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateJob drops both the posting entry and the public listings,
// since any posting mutation can change what the listing shows.
func InvalidateJob(ctx context.Context, jobID uint) {
	Invalidate(ctx, JobKey(jobID))
	Invalidate(ctx, JobListingsKey)
}

func InvalidateCategories(ctx context.Context) {
	Invalidate(ctx, CategoriesKey)
	Invalidate(ctx, JobListingsKey)
}
