package main

import (
	"flag"
	"log"

	"equipment-access/pkg/config"
	"equipment-access/pkg/database/postgresql"
	"equipment-access/seeders"
)

func main() {
	runAdmin := flag.Bool("admin", false, "create the initial administrator account")
	runEquipment := flag.Bool("equipment", false, "insert the demo equipment registry")
	runAll := flag.Bool("all", false, "run every seeder")
	flag.Parse()

	if !*runAdmin && !*runEquipment && !*runAll {
		log.Println("no seeder selected")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	if *runAll || *runAdmin {
		if err := seeders.SeedAdminUser(dbPool, cfg); err != nil {
			log.Fatalf("admin seeder failed: %v", err)
		}
	}
	if *runAll || *runEquipment {
		if err := seeders.SeedEquipment(dbPool); err != nil {
			log.Fatalf("equipment seeder failed: %v", err)
		}
	}

	log.Println("seeding complete")
}
