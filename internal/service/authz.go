// Package service contains the business logic of the job board: posting and
// application lifecycles, profiles, and admin aggregates.
package service

// canModify reports whether the actor may mutate a resource owned by
// ownerID. Admins may modify anything; everyone else only their own.
func canModify(actorID, ownerID uint, isAdmin bool) bool {
	return isAdmin || actorID == ownerID
}
