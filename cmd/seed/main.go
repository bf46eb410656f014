// Command seed loads the demo catalog into Postgres. Existing products are
// left alone: re-running the seed is safe.
package main

import (
	"os"
	"time"

	"github.com/younger1612/Rd-storev1/internal/config"
	"github.com/younger1612/Rd-storev1/internal/infra"
	"github.com/younger1612/Rd-storev1/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	inserted := 0
	for _, p := range model.DemoCatalog() {
		p := p
		var count int64
		if err := db.Model(&model.Product{}).Where("name = ?", p.Name).Count(&count).Error; err != nil {
			log.Fatal().Err(err).Msg("seed failed")
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			log.Fatal().Err(err).Str("product", p.Name).Msg("seed failed")
		}
		inserted++
	}
	log.Info().Int("inserted", inserted).Msg("seed complete")
}
