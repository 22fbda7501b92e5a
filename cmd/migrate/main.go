package main

import (
	"database/sql"
	"errors"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetLevel(log.InfoLevel)
	log.Println("starting migrate")

	dbConn := os.Getenv("DB_CONN")
	if dbConn == "" {
		dbConn = "user=ps_user password=ps_password dbname=backend sslmode=disable host=0.0.0.0"
	}

	source := os.Getenv("MIGRATIONS_PATH")
	if source == "" {
		source = "./migrations"
	}

	log.Println("connecting to db")

	db, err := sql.Open("postgres", dbConn)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {
			log.Errorf("closing the db: %v", err)
		}
	}(db)

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+source, "postgres", driver)
	if err != nil {
		log.Fatal(err)
	}

	down := len(os.Args) > 1 && os.Args[1] == "down"
	if down {
		err = m.Steps(-1)
	} else {
		err = m.Up()
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal(err)
	}

	log.Println("migrations complete")
}
