package game

import (
	"fmt"

	"github.com/aaronzipp/werewolf/internal/models"
)

// Prompts for the narrator. Each moment has a fixed fallback used when
// generation is unavailable.

func nightPrompt(round int) string {
	return fmt.Sprintf("You are the narrator of a werewolf game. Announce in one or two atmospheric sentences "+
		"that night %d has begun and everyone must close their eyes.", round)
}

func peacefulPrompt(round int) string {
	return fmt.Sprintf("You are the narrator of a werewolf game. Announce in one or two sentences that day %d "+
		"has come and nobody died during the night.", round)
}

func deathPrompt(victims string) string {
	return "You are the narrator of a werewolf game. Announce in one or two sentences that the following " +
		"players were found dead this morning: " + victims + ". Do not reveal how they died."
}

func exilePrompt(exiled string, votes float64) string {
	return fmt.Sprintf("You are the narrator of a werewolf game. Announce in one or two sentences that %s "+
		"was exiled by the village with %s votes. Do not reveal their role.", exiled, formatWeight(votes))
}

func victoryPrompt(winner models.Camp, rounds int) string {
	return fmt.Sprintf("You are the narrator of a werewolf game. Announce in two sentences that the game ended "+
		"after %d rounds and the winner is: %s.", rounds, campName(winner))
}

func victoryFallback(winner models.Camp) string {
	if winner == models.NoWinner {
		return "The game is over. Nobody won."
	}
	return fmt.Sprintf("The game is over. The %s win!", campName(winner))
}

func campName(c models.Camp) string {
	switch c {
	case models.CampHostile:
		return "werewolves"
	case models.CampAllied:
		return "villagers"
	default:
		return "nobody"
	}
}
