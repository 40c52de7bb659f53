package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoleKind(t *testing.T) {
	tests := map[string]RoleKind{
		"werewolf":   RoleEliminator,
		" Wolf ":     RoleEliminator,
		"seer":       RoleSeer,
		"WITCH":      RoleCurer,
		"marksman":   RoleMarksman,
		"villager":   RolePlain,
		"eliminator": RoleEliminator,
	}
	for in, want := range tests {
		got, err := ParseRoleKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseRoleKind("guard")
	assert.Error(t, err)
}

func TestRoleTable(t *testing.T) {
	tests := []struct {
		kind     RoleKind
		camp     Camp
		priority int
		night    bool
	}{
		{RoleEliminator, CampHostile, 1, true},
		{RoleSeer, CampAllied, 2, true},
		{RoleCurer, CampAllied, 3, true},
		{RoleMarksman, CampAllied, NoPriority, false},
		{RolePlain, CampAllied, NoPriority, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			r := MustRole(tt.kind)
			assert.Equal(t, tt.camp, r.Camp())
			assert.Equal(t, tt.priority, r.Priority())
			assert.Equal(t, tt.night, r.HasNightAction())
			assert.NotEmpty(t, r.Description())
		})
	}

	_, err := NewRole("guard")
	assert.Error(t, err)
}

func TestStartingResources(t *testing.T) {
	curer := MustRole(RoleCurer)
	assert.True(t, curer.HasCure)
	assert.True(t, curer.HasPoison)
	assert.Equal(t, 2, curer.Resources())

	assert.True(t, MustRole(RoleMarksman).CanShoot)
	assert.False(t, MustRole(RolePlain).CanShoot)
}

func TestCanAct(t *testing.T) {
	rec := newTestRecord(t, RoleEliminator, RoleSeer, RoleCurer, RolePlain)
	wolf, _ := rec.Participant(1)
	seer, _ := rec.Participant(2)
	curer, _ := rec.Participant(3)
	plain, _ := rec.Participant(4)

	assert.True(t, wolf.Role.CanAct(rec, wolf))
	assert.True(t, seer.Role.CanAct(rec, seer))
	assert.True(t, curer.Role.CanAct(rec, curer))
	assert.False(t, plain.Role.CanAct(rec, plain))

	curer.Role.HasCure = false
	assert.True(t, curer.Role.CanAct(rec, curer), "poison still held")
	curer.Role.HasPoison = false
	assert.False(t, curer.Role.CanAct(rec, curer), "no resources left")

	rec.MarkDead(2)
	assert.False(t, seer.Role.CanAct(rec, seer))

	rec.MarkDead(1)
	assert.False(t, wolf.Role.CanAct(rec, wolf), "no hostile alive")
}

func TestCurerAvailableActions(t *testing.T) {
	rec := newTestRecord(t, RoleEliminator, RoleCurer)
	curer, _ := rec.Participant(2)

	assert.ElementsMatch(t, []ActionKind{ActionSkip, ActionPoison}, curer.Role.AvailableActions(rec),
		"cure needs a pending victim")

	rec.PendingVictim = 2
	assert.ElementsMatch(t, []ActionKind{ActionSkip, ActionCure, ActionPoison}, curer.Role.AvailableActions(rec))

	curer.Role.HasPoison = false
	assert.ElementsMatch(t, []ActionKind{ActionSkip, ActionCure}, curer.Role.AvailableActions(rec))
	assert.Equal(t, 1, curer.Role.Resources())

	rec.MarkDead(2)
	assert.ElementsMatch(t, []ActionKind{ActionSkip}, curer.Role.AvailableActions(rec),
		"a dead victim cannot be cured")
}
