package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input       string
		expected    Role
		expectError bool
	}{
		{input: "admin", expected: RoleAdmin},
		{input: "trainer", expected: RoleTrainer},
		{input: "trainee", expected: RoleTrainee},
		{input: "coach", expectError: true},
		{input: "", expectError: true},
		{input: "Admin", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			role, err := ParseRole(tt.input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, role)
			}
		})
	}
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleTrainer.Valid())
	assert.True(t, RoleTrainee.Valid())
	assert.False(t, Role("coach").Valid())
	assert.False(t, Role("").Valid())
}

func TestCanAccessUser(t *testing.T) {
	trainer7 := uint(7)
	trainer8 := uint(8)

	tests := []struct {
		name            string
		caller          Caller
		targetID        uint
		targetTrainerID *uint
		allowed         bool
	}{
		{name: "admin sees anyone", caller: Caller{ID: 1, Role: RoleAdmin}, targetID: 99, allowed: true},
		{name: "trainer sees self", caller: Caller{ID: 7, Role: RoleTrainer}, targetID: 7, allowed: true},
		{name: "trainer sees own trainee", caller: Caller{ID: 7, Role: RoleTrainer}, targetID: 30, targetTrainerID: &trainer7, allowed: true},
		{name: "trainer blocked from other trainer's trainee", caller: Caller{ID: 7, Role: RoleTrainer}, targetID: 30, targetTrainerID: &trainer8, allowed: false},
		{name: "trainer blocked from unassigned user", caller: Caller{ID: 7, Role: RoleTrainer}, targetID: 30, allowed: false},
		{name: "trainee sees self", caller: Caller{ID: 30, Role: RoleTrainee}, targetID: 30, allowed: true},
		{name: "trainee blocked from others", caller: Caller{ID: 30, Role: RoleTrainee}, targetID: 31, allowed: false},
		{name: "unknown role blocked", caller: Caller{ID: 5, Role: Role("coach")}, targetID: 5, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanAccessUser(tt.caller, tt.targetID, tt.targetTrainerID))
		})
	}
}

func TestCanWritePlanFor(t *testing.T) {
	trainer7 := uint(7)
	trainer8 := uint(8)

	tests := []struct {
		name             string
		caller           Caller
		traineeID        uint
		traineeTrainerID *uint
		allowed          bool
	}{
		{name: "admin writes for anyone", caller: Caller{ID: 1, Role: RoleAdmin}, traineeID: 30, traineeTrainerID: &trainer8, allowed: true},
		{name: "trainer writes for unassigned trainee", caller: Caller{ID: 7, Role: RoleTrainer}, traineeID: 30, allowed: true},
		{name: "trainer writes for own trainee", caller: Caller{ID: 7, Role: RoleTrainer}, traineeID: 30, traineeTrainerID: &trainer7, allowed: true},
		{name: "trainer blocked when assigned elsewhere", caller: Caller{ID: 7, Role: RoleTrainer}, traineeID: 30, traineeTrainerID: &trainer8, allowed: false},
		{name: "trainee writes own plan", caller: Caller{ID: 30, Role: RoleTrainee}, traineeID: 30, allowed: true},
		{name: "trainee blocked from others", caller: Caller{ID: 30, Role: RoleTrainee}, traineeID: 31, allowed: false},
		{name: "unknown role blocked", caller: Caller{ID: 5, Role: Role("coach")}, traineeID: 5, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanWritePlanFor(tt.caller, tt.traineeID, tt.traineeTrainerID))
		})
	}
}
