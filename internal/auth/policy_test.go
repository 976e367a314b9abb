package auth

import (
	"testing"

	"github.com/projectwellness/wellness-hub/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestEvaluateAdminGetsAllEverywhere(t *testing.T) {
	for _, resource := range allResources {
		assert.Equal(t, ScopeAll, Evaluate(models.RoleAdmin, resource, ActionRead), resource)
		assert.Equal(t, ScopeAll, Evaluate(models.RoleAdmin, resource, ActionWrite), resource)
	}
}

func TestEvaluateRancherAndVet(t *testing.T) {
	for _, role := range []string{models.RoleRancher, models.RoleVet} {
		for _, resource := range herdResources {
			assert.Equal(t, ScopeOwned, Evaluate(role, resource, ActionRead), resource)
			assert.Equal(t, ScopeOwned, Evaluate(role, resource, ActionWrite), resource)
		}
		assert.Equal(t, ScopeNone, Evaluate(role, ResourceUsers, ActionRead))
		assert.Equal(t, ScopeNone, Evaluate(role, ResourceUsers, ActionWrite))
	}
}

func TestEvaluateCheesemaker(t *testing.T) {
	assert.Equal(t, ScopeOwned, Evaluate(models.RoleCheesemaker, ResourceMilk, ActionRead))
	assert.Equal(t, ScopeOwned, Evaluate(models.RoleCheesemaker, ResourceMilk, ActionWrite))
	assert.Equal(t, ScopeOwned, Evaluate(models.RoleCheesemaker, ResourceWellIndex, ActionRead))

	assert.Equal(t, ScopeNone, Evaluate(models.RoleCheesemaker, ResourceRanches, ActionRead))
	assert.Equal(t, ScopeNone, Evaluate(models.RoleCheesemaker, ResourceAnimals, ActionRead))
	assert.Equal(t, ScopeNone, Evaluate(models.RoleCheesemaker, ResourceCollars, ActionWrite))
}

func TestEvaluateUnknownRoleAndResource(t *testing.T) {
	assert.Equal(t, ScopeNone, Evaluate("superuser", ResourceRanches, ActionRead))
	assert.Equal(t, ScopeNone, Evaluate("", ResourceRanches, ActionRead))
	assert.Equal(t, ScopeNone, Evaluate(models.RoleAdmin, "unknown", ActionRead))

	// Role strings are case-sensitive
	assert.Equal(t, ScopeNone, Evaluate("Admin", ResourceRanches, ActionRead))
}
