// cmd/catalog-importer - loads or updates the game catalog from a JSON file
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"stemquest/database"
	"stemquest/models"
)

type catalogFile struct {
	Games []catalogGame `json:"games"`
}

type catalogGame struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Difficulty  string `json:"difficulty"`
	IsActive    *bool  `json:"is_active"`
}

func main() {
	path := flag.String("file", "./catalog.json", "path to the catalog JSON file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	database.InitDB()
	db := database.GetDB()

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatal("Failed to read catalog file:", err)
	}

	var catalog catalogFile
	if err := json.Unmarshal(data, &catalog); err != nil {
		log.Fatal("Failed to parse catalog JSON:", err)
	}

	fmt.Printf("Found %d games\n\n", len(catalog.Games))

	created, updated, skipped := 0, 0, 0
	for _, entry := range catalog.Games {
		if entry.ID == "" || entry.Name == "" {
			log.Printf("Skipping entry with missing id/name: %+v", entry)
			skipped++
			continue
		}
		if !models.ValidCategory(entry.Category) {
			log.Printf("Skipping %s: unknown category %q", entry.ID, entry.Category)
			skipped++
			continue
		}
		difficulty := entry.Difficulty
		if difficulty == "" {
			difficulty = models.DifficultyMedium
		}
		if !models.ValidDifficulty(difficulty) {
			log.Printf("Skipping %s: unknown difficulty %q", entry.ID, entry.Difficulty)
			skipped++
			continue
		}
		active := true
		if entry.IsActive != nil {
			active = *entry.IsActive
		}

		game := models.Game{
			ID:          entry.ID,
			Name:        entry.Name,
			Category:    entry.Category,
			Description: entry.Description,
			Icon:        entry.Icon,
			Difficulty:  difficulty,
			IsActive:    active,
		}

		var existing models.Game
		if err := db.Where("id = ?", game.ID).First(&existing).Error; err == nil {
			if err := db.Model(&existing).Updates(map[string]interface{}{
				"name":        game.Name,
				"category":    game.Category,
				"description": game.Description,
				"icon":        game.Icon,
				"difficulty":  game.Difficulty,
				"is_active":   game.IsActive,
			}).Error; err != nil {
				log.Printf("Failed to update %s: %v", game.ID, err)
				continue
			}
			updated++
			continue
		}

		if err := db.Create(&game).Error; err != nil {
			log.Printf("Failed to create %s: %v", game.ID, err)
			continue
		}
		created++
	}

	fmt.Printf("\nDone: %d created, %d updated, %d skipped\n", created, updated, skipped)
}
