package db

import (
  "fmt"
  "gorm.io/driver/postgres"
  "gorm.io/gorm"
  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/types"
  "github.com/traitscan/backend/internal/utils"
)

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "traitscan", log)

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  log.Info("Connecting to Postgres...")
  db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
    TranslateError:                           true,
  })
  if err != nil {
    serviceLog.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
  }

  if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
    serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
    return nil, fmt.Errorf("Failed to enable uuid-ossp extension: %w", err)
  }

  return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  err := s.db.AutoMigrate(
    &types.Profile{},
    &types.UserToken{},
    &types.Psychologist{},
    &types.Company{},
    &types.Employee{},
    &types.Quiz{},
    &types.Question{},
    &types.Alternative{},
    &types.Assessment{},
    &types.AssessmentQuiz{},
    &types.AssessmentApplication{},
    &types.Response{},
    &types.Invitation{},
    &types.WebhookEvent{},
  )
  if err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }
  s.log.Info("Configuring foreign key relationships for postgres tables...")
  constraints := []struct {
    name string
    ddl  string
  }{
    {"fk_user_tokens_user_id", `
      ALTER TABLE "user_tokens"
      ADD CONSTRAINT "fk_user_tokens_user_id"
      FOREIGN KEY ("user_id")
      REFERENCES "profiles"("id")
      ON DELETE CASCADE
    `},
    {"fk_responses_alternative_id", `
      ALTER TABLE "responses"
      ADD CONSTRAINT "fk_responses_alternative_id"
      FOREIGN KEY ("alternative_id")
      REFERENCES "alternatives"("id")
      ON DELETE CASCADE
    `},
    {"fk_responses_application_id", `
      ALTER TABLE "responses"
      ADD CONSTRAINT "fk_responses_application_id"
      FOREIGN KEY ("application_id")
      REFERENCES "assessment_applications"("id")
      ON DELETE CASCADE
    `},
  }
  for _, c := range constraints {
    var count int64
    if err := s.db.Raw(
      `SELECT COUNT(*) FROM information_schema.table_constraints WHERE constraint_name = ?`, c.name,
    ).Scan(&count).Error; err != nil {
      return fmt.Errorf("Failed to check constraint %s: %w", c.name, err)
    }
    if count > 0 {
      continue
    }
    if err := s.db.Exec(c.ddl).Error; err != nil {
      return fmt.Errorf("Failed to add %s: %w", c.name, err)
    }
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
