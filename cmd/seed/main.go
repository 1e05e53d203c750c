package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/logger"
	"bookcatalog/internal/store"

	"go.uber.org/zap"
)

var (
	genres = []string{"Fiction", "Science Fiction", "History", "Science", "Technology", "Romance", "Mystery", "Biography", "Philosophy", "Art"}
	words  = []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
	surnames = []string{"Okafor", "Lindqvist", "Tanaka", "Moreau", "Castillo", "Nakamura", "Fischer", "Haddad"}
)

func main() {
	count := flag.Int("count", 100, "Number of books to create")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Production: cfg.IsProduction()})
	if err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if cfg.StorageDriver == config.DriverMemory {
		log.Fatal("seeding the in-memory store has no effect; set STORAGE_DRIVER to mongo or postgres")
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open storage", zap.Error(err))
	}
	defer st.Close()

	service := book.NewService(st.Repo, zap.NewNop())
	created, err := seed(ctx, service, rand.New(rand.NewSource(rand.Int63())), *count)
	if err != nil {
		log.Fatal("seeding stopped", zap.Int("created", created), zap.Error(err))
	}
	log.Info("seeding finished", zap.Int("created", created))
}

// seed creates count generated books through service and returns how many
// were stored before the first failure.
func seed(ctx context.Context, service *book.Service, rng *rand.Rand, count int) (int, error) {
	for i := 0; i < count; i++ {
		if _, err := service.CreateBook(ctx, randomFields(rng, i)); err != nil {
			return i, err
		}
	}
	return count, nil
}

func randomFields(rng *rand.Rand, i int) book.Fields {
	genre := genres[rng.Intn(len(genres))]
	year := 1950 + rng.Intn(75)
	rating := float64(2+rng.Intn(9)) / 2 // 1.0 to 5.0 in halves

	return book.Fields{
		Title:         fmt.Sprintf("Book Title %d - %s", i+1, words[rng.Intn(len(words))]),
		Author:        fmt.Sprintf("%c. %s", 'A'+rune(rng.Intn(26)), surnames[rng.Intn(len(surnames))]),
		Genre:         &genre,
		PublishedYear: &year,
		Rating:        &rating,
	}
}
