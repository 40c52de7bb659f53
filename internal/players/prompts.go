package players

import (
	"fmt"
	"strings"

	"github.com/aaronzipp/werewolf/internal/game"
	"github.com/aaronzipp/werewolf/internal/models"
)

// historyLimit caps how many log lines go into one prompt
const historyLimit = 60

func label(v game.View, id int) string {
	if p, ok := v.Game.Player(id); ok {
		return fmt.Sprintf("%s (#%d)", p.Name, p.ID)
	}
	return fmt.Sprintf("#%d", id)
}

func labels(v game.View, ids []int) string {
	if len(ids) == 0 {
		return "none"
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, label(v, id))
	}
	return strings.Join(out, ", ")
}

func roster(v game.View, alive bool) []int {
	var ids []int
	for _, p := range v.Game.Players {
		if p.Alive == alive {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func history(entries []models.LogEntry) string {
	if len(entries) == 0 {
		return "(nothing yet)"
	}
	if len(entries) > historyLimit {
		entries = entries[len(entries)-historyLimit:]
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "[round %d %s] %s: %s\n", e.Round, e.Phase, e.SpeakerName, e.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}

func ownSpeeches(v game.View) string {
	var said []string
	for _, e := range v.Public {
		if e.SpeakerID == v.Self.ID && (e.Kind == models.EntrySpeech || e.Kind == models.EntryCampaign) {
			said = append(said, fmt.Sprintf("round %d: %s", e.Round, e.Content))
		}
	}
	if len(said) == 0 {
		return "(this is your first speech)"
	}
	return strings.Join(said, "\n")
}

// briefing is the shared preamble of every prompt: who you are and what
// you are allowed to know
func briefing(v game.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, playing a game of werewolf. It is round %d.\n", label(v, v.Self.ID), v.Game.Round)
	fmt.Fprintf(&b, "Your role: %s. %s\n", v.Self.Role, v.Description)
	fmt.Fprintf(&b, "Alive: %s\n", labels(v, roster(v, true)))
	fmt.Fprintf(&b, "Dead: %s\n", labels(v, roster(v, false)))
	if v.Game.SheriffID != 0 {
		fmt.Fprintf(&b, "Sheriff: %s\n", label(v, v.Game.SheriffID))
	}
	if len(v.LastDeaths) > 0 {
		fmt.Fprintf(&b, "Died last night: %s\n", labels(v, v.LastDeaths))
	}

	if v.Self.Camp == models.CampHostile {
		fmt.Fprintf(&b, "Your fellow werewolves: %s\n", labels(v, v.Teammates))
	}
	if len(v.Inspections) > 0 {
		b.WriteString("Your inspections:\n")
		for _, in := range v.Inspections {
			verdict := "not a werewolf"
			if in.Hostile {
				verdict = "a werewolf"
			}
			fmt.Fprintf(&b, "- round %d: %s is %s\n", in.Round, label(v, in.TargetID), verdict)
		}
	}
	if v.Self.Role == models.RoleCurer {
		fmt.Fprintf(&b, "Cure left: %t, poison left: %t\n", v.HasCure, v.HasPoison)
	}

	fmt.Fprintf(&b, "\nPublic discussion so far:\n%s\n", history(v.Public))
	if len(v.Faction) > 0 {
		fmt.Fprintf(&b, "\nPrivate werewolf channel:\n%s\n", history(v.Faction))
	}
	return b.String()
}

func speechPrompt(v game.View) string {
	return briefing(v) + fmt.Sprintf(`
What you said before:
%s

It is your turn to speak to the village. Stay in character, never reveal
that you are a werewolf if you are one, and keep it under 80 words.`, ownSpeeches(v))
}

func ballotPrompt(v game.View, candidates []int) string {
	return briefing(v) + fmt.Sprintf(`
Vote to exile one player. Candidates: %s.
Reply with the number of the player you vote for, or 0 to abstain.`, labels(v, candidates))
}

func targetPrompt(v game.View, targets []int, kind models.ActionKind) string {
	var task string
	switch kind {
	case models.ActionKill:
		task = "Choose tonight's victim with your pack."
	case models.ActionInspect:
		task = "Choose a player to inspect tonight."
	case models.ActionShoot:
		task = "You are dying and may shoot one player."
	default:
		task = "Choose a target."
	}
	return briefing(v) + fmt.Sprintf(`
%s Targets: %s.
Reply with the player's number, or 0 to skip.`, task, labels(v, targets))
}

func factionPrompt(v game.View, round int) string {
	return briefing(v) + fmt.Sprintf(`
This is werewolf discussion round %d. Talk to your pack about who to kill
tonight and why. Keep it under 50 words.`, round)
}

func candidacyPrompt(v game.View) string {
	return briefing(v) + `
The village is electing a sheriff, whose vote counts 1.5. Do you run?
Answer yes or no.`
}

func campaignPrompt(v game.View) string {
	return briefing(v) + `
You are running for sheriff. Give a short campaign speech, under 60 words.`
}

func successorPrompt(v game.View, candidates []int) string {
	return briefing(v) + fmt.Sprintf(`
You are the sheriff and you are dying. Pass the badge to one of: %s.
Reply with the player's number, or 0 to tear up the badge.`, labels(v, candidates))
}
