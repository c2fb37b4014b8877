// Loads questions into the library from a newline-delimited text file.
// Blank lines and lines starting with # are skipped.
package main

import (
	"bufio"
	"log"
	"os"
	"strings"

	"promptclash/internal/config"
	"promptclash/internal/db"

	"github.com/google/uuid"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	if len(os.Args) < 2 {
		log.Fatal("usage: load-questions <file>")
	}

	file, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalf("open questions file: %v", err)
	}
	defer file.Close()

	conn, err := db.Open(config.Load())
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	added := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		record := db.Question{ID: uuid.NewString(), Text: text, Active: true}
		result := conn.Where(db.Question{Text: text}).FirstOrCreate(&record)
		if result.Error != nil {
			log.Fatalf("insert question: %v", result.Error)
		}
		if result.RowsAffected > 0 {
			added++
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read questions file: %v", err)
	}
	log.Printf("loaded %d new questions", added)
}
