package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fagundes/debt-ledger/internal/config"
	"github.com/fagundes/debt-ledger/internal/domain/enum"
	"github.com/fagundes/debt-ledger/pkg/utils"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RequiredViews are read by the repositories.
var RequiredViews = []string{
	"vw_clientes_ativos_saldo",
	"vw_clientes_lixeira_saldo",
	"vw_resumo_dashboard",
}

// RequiredFunctions are called by the repositories.
var RequiredFunctions = []string{
	"get_extrato_cliente_saldos",
	"lancar_venda",
	"receber_pagamento",
	"mandar_para_lixeira",
	"restaurar_cliente",
	"excluir_cliente_permanente",
	"cadastrar_cliente",
	"atualizar_cliente",
	"login_operador",
	"criar_operador",
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool, log zerolog.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// A single desk issues few concurrent calls.
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	log.Info().Str("host", cfg.Host).Str("db", cfg.Name).Msg("connected to PostgreSQL database")
	return db, nil
}

// VerifySchema checks that the backend exposes every view and function the
// client relies on. The schema is owned by the backend and never migrated here.
func VerifySchema(ctx context.Context, db *gorm.DB) error {
	var views []string
	if err := db.WithContext(ctx).
		Raw("SELECT table_name FROM information_schema.views WHERE table_schema = current_schema() AND table_name IN ?", RequiredViews).
		Scan(&views).Error; err != nil {
		return fmt.Errorf("failed to list views: %w", err)
	}

	var funcs []string
	if err := db.WithContext(ctx).
		Raw("SELECT DISTINCT routine_name FROM information_schema.routines WHERE routine_schema = current_schema() AND routine_name IN ?", RequiredFunctions).
		Scan(&funcs).Error; err != nil {
		return fmt.Errorf("failed to list functions: %w", err)
	}

	missing := append(difference(RequiredViews, views), difference(RequiredFunctions, funcs)...)
	if len(missing) > 0 {
		return fmt.Errorf("ledger backend is missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

// SeedAdminOperator creates the first administrator when the operator table
// is empty and ADMIN_USERNAME/ADMIN_PASSWORD are configured.
func SeedAdminOperator(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	username := strings.TrimSpace(viper.GetString("ADMIN_USERNAME"))
	password := viper.GetString("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return nil
	}
	if !utils.IsNumeric(password) {
		return fmt.Errorf("ADMIN_PASSWORD: %w", utils.ErrPasswordNotNumeric)
	}

	var count int64
	if err := db.WithContext(ctx).Table("operadores").Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count operators: %w", err)
	}
	if count > 0 {
		log.Debug().Int64("operators", count).Msg("operators already present, skipping admin seed")
		return nil
	}

	if err := db.WithContext(ctx).
		Exec("SELECT criar_operador(p_usuario => ?, p_senha => ?, p_role => ?)", username, password, string(enum.RoleAdmin)).
		Error; err != nil {
		return fmt.Errorf("failed to create admin operator: %w", err)
	}

	log.Info().Str("username", username).Msg("admin operator created")
	return nil
}

func difference(want, have []string) []string {
	seen := make(map[string]struct{}, len(have))
	for _, h := range have {
		seen[h] = struct{}{}
	}
	var out []string
	for _, w := range want {
		if _, ok := seen[w]; !ok {
			out = append(out, w)
		}
	}
	return out
}
