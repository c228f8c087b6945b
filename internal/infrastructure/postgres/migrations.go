package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/Laustrup/go-gig-booking/internal/pkg/logger"
)

// RunMigrations はイベント集約のスキーママイグレーションを実行する
func RunMigrations(db *sql.DB, migrationsPath string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("マイグレーションドライバー作成エラー: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationsPath,
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("マイグレーションインスタンス作成エラー: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("スキーマは最新のため変更なし", zap.String("path", migrationsPath))
			return nil
		}
		return fmt.Errorf("マイグレーション実行エラー: %w", err)
	}

	logger.Info("マイグレーションを適用", zap.String("path", migrationsPath))
	return nil
}
