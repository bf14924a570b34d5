package main

import (
	"log"
	"time"

	"matchpoint-api/config"
	"matchpoint-api/models"

	"github.com/joho/godotenv"
)

// Seeds a development database with a small club: a handful of players at
// different experience levels and one pending match awaiting confirmation.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.ConnectDatabase()
	db := config.DB

	players := []models.Player{
		{Username: "alice", ClubID: 1, CurrentElo: 1200, MatchesPlayed: 5, Wins: 3, Losses: 2},
		{Username: "bruno", ClubID: 1, CurrentElo: 1300, MatchesPlayed: 40, Wins: 25, Losses: 15},
		{Username: "chiara", ClubID: 1, CurrentElo: 1450, MatchesPlayed: 120, Wins: 80, Losses: 40},
		{Username: "dmitri", ClubID: 1, CurrentElo: 1100, MatchesPlayed: 2, Wins: 0, Losses: 2},
		{Username: "elena", ClubID: 1, CurrentElo: 1500, MatchesPlayed: 200, Wins: 140, Losses: 60, IsAdmin: true},
	}

	for i := range players {
		if err := db.Where("username = ?", players[i].Username).FirstOrCreate(&players[i]).Error; err != nil {
			log.Fatalf("Failed to seed player %s: %v", players[i].Username, err)
		}
	}
	log.Printf("Seeded %d players", len(players))

	var pending int64
	db.Model(&models.Match{}).Where("validated = ?", false).Count(&pending)
	if pending == 0 {
		match := models.Match{
			Player1ID:        players[0].ID,
			Player2ID:        players[1].ID,
			WinnerID:         players[0].ID,
			Score:            "6-4 3-6 7-5",
			MatchFormat:      "best_of_three",
			ReportedBy:       players[0].ID,
			Player1EloBefore: players[0].CurrentElo,
			Player1EloAfter:  players[0].CurrentElo + 25,
			Player2EloBefore: players[1].CurrentElo,
			Player2EloAfter:  players[1].CurrentElo - 20,
			AutoValidateAt:   time.Now().Add(24 * time.Hour),
		}
		if err := db.Create(&match).Error; err != nil {
			log.Fatalf("Failed to seed match: %v", err)
		}
		log.Printf("Seeded pending match %d", match.ID)
	}

	log.Println("Fixtures complete")
}
