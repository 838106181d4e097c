// Command seed fills a catalog database with sample books.
// Usage: go run cmd/seed/main.go [-db path/to/catalog.db]
package main

import (
	"flag"
	"log"
	"time"

	"github.com/mrlokans/bookcatalog/internal/config"
	"github.com/mrlokans/bookcatalog/internal/database"
	"github.com/mrlokans/bookcatalog/internal/database/books"
	"github.com/mrlokans/bookcatalog/internal/entities"
)

func main() {
	dbPath := flag.String("db", config.DefaultDatabasePath, "path to the catalog database file")
	flag.Parse()

	log.Printf("Seeding catalog database at %s...", *dbPath)

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	repo := books.NewRepository(db.DB)

	for _, book := range sampleBooks() {
		id, err := repo.Create(&book)
		if err != nil {
			log.Printf("Failed to save book %s: %v", book.Name, err)
			continue
		}
		log.Printf("Saved: %s by %s (id %d)", book.Name, book.Author, id)
	}
}

func sampleBooks() []entities.Book {
	return []entities.Book{
		{
			Name:        "Dune",
			Author:      "Frank Herbert",
			PublishDate: date(1965, 8, 1),
			Description: "Desert planet politics and giant sandworms.",
		},
		{
			Name:        "The Left Hand of Darkness",
			Author:      "Ursula K. Le Guin",
			PublishDate: date(1969, 3, 1),
			Description: "An envoy on a planet without fixed gender.",
		},
		{
			Name:        "Neuromancer",
			Author:      "William Gibson",
			PublishDate: date(1984, 7, 1),
			Description: "A washed-up hacker hired for one last job.",
		},
		{
			Name:        "A Wizard of Earthsea",
			Author:      "Ursula K. Le Guin",
			PublishDate: date(1968, 11, 1),
			Description: "A young mage learns the cost of pride.",
		},
		{
			Name:        "Solaris",
			Author:      "Stanislaw Lem",
			PublishDate: date(1961, 6, 1),
			Description: "A sentient ocean studies its visitors back.",
		},
		{
			Name:        "The Dispossessed",
			Author:      "Ursula K. Le Guin",
			PublishDate: date(1974, 5, 1),
			Description: "A physicist between two worlds and ideologies.",
		},
		{
			Name:        "Hyperion",
			Author:      "Dan Simmons",
			PublishDate: date(1989, 5, 26),
			Description: "Seven pilgrims tell their tales on the way to the Shrike.",
		},
		{
			Name:        "Roadside Picnic",
			Author:      "Arkady and Boris Strugatsky",
			PublishDate: date(1972, 1, 1),
			Description: "Stalkers loot the debris of an alien visitation.",
		},
		{
			Name:        "The Master and Margarita",
			Author:      "Mikhail Bulgakov",
			PublishDate: date(1967, 1, 1),
			Description: "The devil visits atheist Moscow.",
		},
		{
			Name:        "Foundation",
			Author:      "Isaac Asimov",
			PublishDate: date(1951, 6, 1),
			Description: "Psychohistory against the fall of a galactic empire.",
		},
		{
			Name:        "Snow Crash",
			Author:      "Neal Stephenson",
			PublishDate: date(1992, 6, 1),
			Description: "Pizza delivery, katanas and a linguistic virus.",
		},
		{
			Name:        "The Name of the Rose",
			Author:      "Umberto Eco",
			PublishDate: date(1980, 9, 1),
			Description: "Murders in a medieval abbey library.",
		},
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
