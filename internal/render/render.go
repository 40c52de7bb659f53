// Package render turns engine events and game records into styled terminal
// text.
package render

import (
	"fmt"
	"strings"

	"github.com/aaronzipp/werewolf/internal/events"
	"github.com/aaronzipp/werewolf/internal/models"
)

// Banner renders a section header
func Banner(title string) string {
	return bannerStyle.Render("== " + title + " ==")
}

func phaseTitle(phase models.Phase, round int) string {
	switch phase {
	case models.PhaseNight:
		return fmt.Sprintf("Night %d", round)
	case models.PhaseDay:
		return fmt.Sprintf("Day %d", round)
	case models.PhaseVote:
		return fmt.Sprintf("Vote, round %d", round)
	case models.PhaseEnd:
		return "Game over"
	default:
		return "Setup"
	}
}

// Event renders one event as the viewer should see it. An empty result
// means there is nothing to print.
func Event(ev events.Event, viewer events.Viewer) string {
	switch ev.Kind {
	case events.KindGameStart:
		out := narratorStyle.Render(ev.Text)
		if ev.Snapshot != nil {
			out += "\n" + Roster(*ev.Snapshot, viewer)
		}
		return out
	case events.KindRole:
		return privateStyle.Render("Your role: " + ev.Text)
	case events.KindPhase:
		return "\n" + Banner(phaseTitle(ev.Phase, ev.Round))
	case events.KindRound:
		return dimStyle.Render(ev.Text)
	case events.KindAnnouncement:
		return narratorStyle.Render(ev.Text)
	case events.KindSpeech, events.KindCampaign:
		prefix := ""
		if ev.Kind == events.KindCampaign {
			prefix = "[campaign] "
		}
		return fmt.Sprintf("%s %s%s", speaker(ev), dimStyle.Render(prefix), ev.Text)
	case events.KindBallot:
		return dimStyle.Render(ev.Text)
	case events.KindFaction:
		who := "werewolves"
		if ev.Speaker != "" {
			who = fmt.Sprintf("%s (#%d)", ev.Speaker, ev.SpeakerID)
		}
		return factionStyle.Render(fmt.Sprintf("[werewolf channel] %s: %s", who, ev.Text))
	case events.KindInspection, events.KindNightAction:
		if ev.Audience.ParticipantID != 0 {
			return privateStyle.Render("[private] " + ev.Text)
		}
		return factionStyle.Render("[werewolf channel] " + ev.Text)
	case events.KindDeath:
		return deathStyle.Render(ev.Text)
	case events.KindSheriff:
		return ""
	case events.KindGameOver:
		if ev.GameLog != nil {
			return Summary(*ev.GameLog)
		}
		return winStyle.Render(ev.Text)
	default:
		return ev.Text
	}
}

func speaker(ev events.Event) string {
	return nameStyle.Render(fmt.Sprintf("%s (#%d):", ev.Speaker, ev.SpeakerID))
}

// Roster lists the seats, revealing only the roles the viewer knows
func Roster(snap models.Snapshot, viewer events.Viewer) string {
	snap = snap.Conceal(viewer.Knows)
	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d of %d alive", snap.AliveCount(), len(snap.Players))))
	b.WriteString("\n")
	for _, p := range snap.Players {
		state := "alive"
		if !p.Alive {
			state = "dead"
		}
		line := fmt.Sprintf("  #%-2d %-12s %-5s", p.ID, p.Name, state)
		if p.Role != "" {
			line += " " + string(p.Role)
		}
		if p.ID == viewer.ID && !viewer.Omniscient {
			line += " (you)"
		}
		switch {
		case p.Sheriff:
			b.WriteString(sheriffStyle.Render(line + " [sheriff]"))
		case !p.Alive:
			b.WriteString(dimStyle.Render(line))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func winnerLine(w models.Camp) string {
	switch w {
	case models.CampHostile:
		return "The werewolves win!"
	case models.CampAllied:
		return "The villagers win!"
	default:
		return "Nobody wins."
	}
}

// Summary renders the final result with every role revealed
func Summary(doc models.GameLog) string {
	info := doc.GameInfo
	var b strings.Builder
	b.WriteString(Banner("Game over") + "\n")
	b.WriteString(winStyle.Render(winnerLine(info.Winner)) + "\n")
	b.WriteString(doc.VictoryReason + "\n")
	fmt.Fprintf(&b, "%s\n", dimStyle.Render(fmt.Sprintf("%d rounds, %d of %d players alive",
		info.TotalRounds, info.AlivePlayers, info.TotalPlayers)))
	b.WriteString(Roster(models.Snapshot{Players: doc.Players}, events.Spectator))
	return b.String()
}
