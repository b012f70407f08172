package authz

// Caller is the authenticated identity performing a request. It is threaded
// explicitly into every service and policy call; there is no ambient
// "current user".
type Caller struct {
	ID   uint
	Role Role
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// CanAccessUser decides whether the caller may read or mutate the user record
// identified by targetID/targetTrainerID. Pure predicate, no side effects.
//
// Admins see everything. Trainers see themselves and their own trainees.
// Trainees see only themselves.
func CanAccessUser(caller Caller, targetID uint, targetTrainerID *uint) bool {
	switch caller.Role {
	case RoleAdmin:
		return true
	case RoleTrainer:
		if targetID == caller.ID {
			return true
		}
		return targetTrainerID != nil && *targetTrainerID == caller.ID
	case RoleTrainee:
		return targetID == caller.ID
	}
	return false
}

// CanWritePlanFor decides whether the caller may create or update a plan owned
// by the given trainee. Trainees may only write their own plans; trainers may
// write for trainees that are unassigned or already theirs; admins always may.
// Rejection here must happen before any mutation.
func CanWritePlanFor(caller Caller, traineeID uint, traineeTrainerID *uint) bool {
	switch caller.Role {
	case RoleAdmin:
		return true
	case RoleTrainer:
		return traineeTrainerID == nil || *traineeTrainerID == caller.ID
	case RoleTrainee:
		return traineeID == caller.ID
	}
	return false
}
