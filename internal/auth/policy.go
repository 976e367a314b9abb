// FilePath: internal/auth/policy.go
package auth

import "github.com/projectwellness/wellness-hub/internal/models"

// Action is what the caller wants to do with a resource
type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
)

// Scope is the visibility granted for a (role, resource, action) triple
type Scope int

const (
	// ScopeNone denies the request
	ScopeNone Scope = iota
	// ScopeOwned restricts queries to ranches reachable through the
	// caller's user_ranches associations
	ScopeOwned
	// ScopeAll bypasses the ownership filter
	ScopeAll
)

// Resource names used by the policy table
const (
	ResourceUsers         = "users"
	ResourceRanches       = "ranches"
	ResourceAnimals       = "animals"
	ResourceHealthRecords = "healthrecords"
	ResourceStations      = "stations"
	ResourceStationData   = "stationdata"
	ResourceCollars       = "collars"
	ResourceCollarData    = "collardata"
	ResourceMilk          = "milk"
	ResourceWellIndex     = "wellindex"
)

type permission struct {
	read  Scope
	write Scope
}

func allScopes() map[string]permission {
	perms := make(map[string]permission)
	for _, resource := range allResources {
		perms[resource] = permission{read: ScopeAll, write: ScopeAll}
	}
	return perms
}

func ownedScopes(resources ...string) map[string]permission {
	perms := make(map[string]permission)
	for _, resource := range resources {
		perms[resource] = permission{read: ScopeOwned, write: ScopeOwned}
	}
	return perms
}

var allResources = []string{
	ResourceUsers, ResourceRanches, ResourceAnimals, ResourceHealthRecords,
	ResourceStations, ResourceStationData, ResourceCollars,
	ResourceCollarData, ResourceMilk, ResourceWellIndex,
}

var herdResources = []string{
	ResourceRanches, ResourceAnimals, ResourceHealthRecords,
	ResourceStations, ResourceStationData, ResourceCollars,
	ResourceCollarData, ResourceMilk, ResourceWellIndex,
}

// policy is the single authorization table for the whole API. Every
// handler resolves its (role, resource, action) triple here instead of
// branching on role strings locally.
var policy = map[string]map[string]permission{
	models.RoleAdmin:       allScopes(),
	models.RoleRancher:     ownedScopes(herdResources...),
	models.RoleVet:         ownedScopes(herdResources...),
	models.RoleCheesemaker: ownedScopes(ResourceMilk, ResourceWellIndex),
}

// Evaluate returns the scope granted to the role for the resource and
// action. Unknown roles and unlisted resources get ScopeNone.
func Evaluate(role, resource string, action Action) Scope {
	perms, ok := policy[role]
	if !ok {
		return ScopeNone
	}
	perm, ok := perms[resource]
	if !ok {
		return ScopeNone
	}
	if action == ActionWrite {
		return perm.write
	}
	return perm.read
}
