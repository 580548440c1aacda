package db

import (
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/barbeariamendes/agenda-api/internal/config"
	"github.com/barbeariamendes/agenda-api/internal/models"
)

// NewDB abre o banco, migra o esquema e garante o usuário admin.
// Qualquer falha aqui aborta o boot: nenhuma rota funciona sem o banco.
func NewDB(cfg *config.Config, log *logrus.Logger) *gorm.DB {
	db, err := gorm.Open(openDialector(cfg.DatabaseDSN), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Appointment{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	if err := SeedAdmin(db, cfg.AdminUser, cfg.AdminPass); err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	return db
}

// openDialector decide o driver pelo DSN: URLs postgres abrem Postgres,
// qualquer outro valor é tratado como caminho de arquivo SQLite.
func openDialector(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}

// SeedAdmin insere o usuário admin se ainda não existir. A senha é
// armazenada como hash bcrypt; o contrato externo do login não muda.
func SeedAdmin(db *gorm.DB, username, password string) error {
	var user models.User
	err := db.Where("username = ?", username).First(&user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Create(&models.User{
		Username: username,
		Password: string(hashed),
	}).Error
}
