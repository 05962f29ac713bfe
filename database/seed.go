// database/seed.go - Game Catalog Seeder
package database

import (
	"log"

	"stemquest/models"
)

// defaultCatalog is the built-in mini-game catalog. The importer in
// cmd/catalog-importer can extend or update it from a JSON file.
var defaultCatalog = []models.Game{
	{ID: "math-blitz", Name: "Math Blitz", Category: models.CategoryMathematics, Description: "Race the clock through rapid-fire arithmetic", Icon: "➕", Difficulty: models.DifficultyEasy},
	{ID: "fraction-frenzy", Name: "Fraction Frenzy", Category: models.CategoryMathematics, Description: "Match, compare and simplify fractions", Icon: "🧮", Difficulty: models.DifficultyMedium},
	{ID: "algebra-quest", Name: "Algebra Quest", Category: models.CategoryMathematics, Description: "Solve for x across branching puzzle dungeons", Icon: "📐", Difficulty: models.DifficultyHard},
	{ID: "element-match", Name: "Element Match", Category: models.CategoryScience, Description: "Pair elements with their symbols and properties", Icon: "🧪", Difficulty: models.DifficultyEasy},
	{ID: "physics-drop", Name: "Physics Drop", Category: models.CategoryScience, Description: "Predict trajectories before gravity does", Icon: "🍎", Difficulty: models.DifficultyMedium},
	{ID: "bio-explorer", Name: "Bio Explorer", Category: models.CategoryScience, Description: "Identify cells, organs and ecosystems", Icon: "🔬", Difficulty: models.DifficultyMedium},
	{ID: "code-breaker", Name: "Code Breaker", Category: models.CategoryTechnology, Description: "Decode logic puzzles and simple programs", Icon: "💻", Difficulty: models.DifficultyMedium},
	{ID: "binary-bounce", Name: "Binary Bounce", Category: models.CategoryTechnology, Description: "Convert between binary and decimal at speed", Icon: "🔢", Difficulty: models.DifficultyEasy},
	{ID: "network-maze", Name: "Network Maze", Category: models.CategoryTechnology, Description: "Route packets through ever-trickier topologies", Icon: "🌐", Difficulty: models.DifficultyHard},
	{ID: "bridge-builder", Name: "Bridge Builder", Category: models.CategoryEngineering, Description: "Span the gap with limited materials", Icon: "🌉", Difficulty: models.DifficultyMedium},
	{ID: "circuit-maker", Name: "Circuit Maker", Category: models.CategoryEngineering, Description: "Light the bulb with the parts on hand", Icon: "🔌", Difficulty: models.DifficultyMedium},
	{ID: "gear-works", Name: "Gear Works", Category: models.CategoryEngineering, Description: "Mesh gears to hit the target speed", Icon: "⚙️", Difficulty: models.DifficultyHard},
}

// SeedGameCatalog inserts any catalog games that don't exist yet.
// Existing rows are left untouched so importer edits survive restarts.
func SeedGameCatalog() {
	db := GetDB()

	seeded := 0
	for _, game := range defaultCatalog {
		var count int64
		db.Model(&models.Game{}).Where("id = ?", game.ID).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&game).Error; err != nil {
			log.Printf("Failed to seed game %s: %v", game.ID, err)
			continue
		}
		seeded++
	}

	if seeded > 0 {
		log.Printf("✅ Seeded %d catalog games", seeded)
	}
}
