package game

import (
	"fmt"
	"strings"

	"github.com/aaronzipp/werewolf/internal/models"
)

// CheckVictory reports the winning camp, if any. The werewolves win once
// they are at least as many as the villagers; the villagers win when no
// werewolf is left. It does not mutate the record.
func CheckVictory(rec *models.Record) (models.Camp, bool) {
	hostiles := len(rec.AliveHostiles())
	allies := len(rec.AliveAllies())
	switch {
	case hostiles > 0 && hostiles >= allies:
		return models.CampHostile, true
	case hostiles == 0:
		return models.CampAllied, true
	default:
		return "", false
	}
}

// VictoryReason explains the result for the final summary and the export
func VictoryReason(rec *models.Record, winner models.Camp) string {
	hostiles := rec.AliveHostiles()
	allies := rec.AliveAllies()
	switch winner {
	case models.CampHostile:
		return fmt.Sprintf("%d werewolves vs %d villagers: the werewolves control every vote.\n"+
			"Living werewolves: %s\nLiving villagers: %s",
			len(hostiles), len(allies), listWithRoles(hostiles, false), listWithRoles(allies, true))
	case models.CampAllied:
		return "Every werewolf has been eliminated. The village is safe.\n" +
			"Living villagers: " + listWithRoles(allies, true)
	default:
		return fmt.Sprintf("No side won within %d rounds.", rec.Round)
	}
}

func listWithRoles(ps []*models.Participant, withRole bool) string {
	if len(ps) == 0 {
		return "none"
	}
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		if withRole {
			out = append(out, fmt.Sprintf("%s, %s", p.Label(), p.Role))
		} else {
			out = append(out, p.Label())
		}
	}
	return strings.Join(out, "; ")
}
