package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"foodinventory/internal/client"
	"foodinventory/internal/config"
)

// SeedItemData represents one entry of the seed file.
type SeedItemData struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()
	source := cfg.SeedFile
	if len(os.Args) > 1 {
		source = os.Args[1]
	}

	log.Printf("Loading food items from: %s", source)
	items, err := loadSeedItems(source)
	if err != nil {
		log.Fatalf("Failed to load seed items: %v", err)
	}
	log.Printf("Loaded %d food items", len(items))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store := client.NewStore(cfg.APIBaseURL, client.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}))
	if err := store.FetchItems(ctx); err != nil {
		log.Fatalf("Failed to fetch existing food items from %s: %v", cfg.APIBaseURL, err)
	}

	log.Println("Seeding food items through the API...")
	seeded, updated, err := seedItems(ctx, store, items)
	if err != nil {
		log.Fatalf("Failed to seed food items: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New food items created: %d", seeded)
	log.Printf("  - Existing food items updated: %d", updated)
	log.Printf("  - Total food items processed: %d", seeded+updated)
}

// loadSeedItems reads seed data from a local file or an http(s) URL.
func loadSeedItems(source string) ([]SeedItemData, error) {
	var r io.ReadCloser
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch seed data: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("seed source returned status code: %d", resp.StatusCode)
		}
		r = resp.Body
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open seed file: %w", err)
		}
		r = f
	}
	defer r.Close()

	var items []SeedItemData
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return items, nil
}

// seedItems creates items whose name is not present yet and updates the
// ones that are, matching by name.
func seedItems(ctx context.Context, store *client.Store, items []SeedItemData) (seeded int, updated int, err error) {
	existing := make(map[string]uint)
	for _, item := range store.Items() {
		existing[item.Name] = item.ID
	}

	for _, item := range items {
		item := item
		input := client.ItemInput{
			Name:        &item.Name,
			Description: &item.Description,
			Price:       &item.Price,
			Quantity:    &item.Quantity,
		}

		if id, ok := existing[item.Name]; ok {
			if _, err := store.UpdateItem(ctx, id, input); err != nil {
				return seeded, updated, fmt.Errorf("error updating food item %q: %w", item.Name, err)
			}
			updated++
			continue
		}

		created, err := store.AddItem(ctx, input)
		if err != nil {
			return seeded, updated, fmt.Errorf("error creating food item %q: %w", item.Name, err)
		}
		existing[created.Name] = created.ID
		seeded++
	}

	return seeded, updated, nil
}
