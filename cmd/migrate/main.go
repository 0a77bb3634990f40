package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"resolution-voting/internal/config"
	"resolution-voting/internal/platform/database"
	"resolution-voting/internal/retry"
)

func main() {
	dir := flag.String("dir", "migrations", "directory with *.up.sql files")
	flag.Parse()

	cfg := config.Load()

	var db *sql.DB
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err := retry.DoWithRetry(ctx, 5, time.Second, func() error {
		var err error
		db, err = database.NewPostgres(cfg.DBDSN)
		return err
	})
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer db.Close()

	if err := apply(db, *dir); err != nil {
		log.Fatalf("migrate error: %v", err)
	}
	log.Println("migrations applied")
}

func apply(db *sql.DB, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if _, err := db.Exec(string(content)); err != nil {
			return err
		}
		log.Printf("applied %s", name)
	}
	return nil
}
