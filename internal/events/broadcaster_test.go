package events

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/aaronzipp/werewolf/internal/models"
)

func TestAudienceVisible(t *testing.T) {
	wolf := Viewer{ID: 1, Camp: models.CampHostile}
	seer := Viewer{ID: 7, Camp: models.CampAllied}

	tests := []struct {
		name     string
		audience Audience
		viewer   Viewer
		want     bool
	}{
		{"public to anyone", Public, seer, true},
		{"faction to member", Faction(models.CampHostile), wolf, true},
		{"faction to outsider", Faction(models.CampHostile), seer, false},
		{"private to owner", Only(7), seer, true},
		{"private to other", Only(7), wolf, false},
		{"spectator sees all", Only(7), Spectator, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.audience.Visible(tt.viewer))
		})
	}
}

func TestBroadcasterFiltersAndOrders(t *testing.T) {
	b := NewBroadcaster(zerolog.Nop())
	wolf := &Recorder{}
	villager := &Recorder{}
	b.Subscribe(Viewer{ID: 1, Camp: models.CampHostile}, wolf)
	cancel := b.Subscribe(Viewer{ID: 4, Camp: models.CampAllied}, villager)

	b.Publish(Event{Kind: KindAnnouncement, Text: "dawn"})
	b.Publish(Event{Kind: KindFaction, Audience: Faction(models.CampHostile), Text: "kill 4"})
	b.Publish(Event{Kind: KindInspection, Audience: Only(4), Text: "1 is a werewolf"})

	assert.Len(t, wolf.Events(), 2)
	assert.Len(t, villager.Events(), 2)
	assert.Equal(t, "kill 4", wolf.Events()[1].Text)
	assert.Equal(t, "1 is a werewolf", villager.Events()[1].Text)

	cancel()
	assert.Equal(t, 1, b.Count())
	b.Publish(Event{Kind: KindAnnouncement})
	assert.Len(t, villager.Events(), 2)
}

func TestBroadcasterSurvivesListenerPanic(t *testing.T) {
	b := NewBroadcaster(zerolog.Nop())
	rec := &Recorder{}
	b.Subscribe(Spectator, ListenerFunc(func(Event) { panic("bad listener") }))
	b.Subscribe(Spectator, rec)

	assert.NotPanics(t, func() { b.Publish(Event{Kind: KindPhase}) })
	assert.Len(t, rec.OfKind(KindPhase), 1)
}

func TestViewerKnows(t *testing.T) {
	wolf := Viewer{ID: 1, Camp: models.CampHostile}
	seer := Viewer{ID: 7, Camp: models.CampAllied}
	mate := models.PlayerSummary{ID: 2, Camp: models.CampHostile}
	villager := models.PlayerSummary{ID: 4, Camp: models.CampAllied}

	assert.True(t, wolf.Knows(mate))
	assert.False(t, wolf.Knows(villager))
	assert.False(t, seer.Knows(mate))
	assert.True(t, seer.Knows(models.PlayerSummary{ID: 7}))
	assert.True(t, Spectator.Knows(villager))
}
