package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"coinsight/models"
)

// DB represents a database connection
type DB struct {
	*sql.DB
}

// ConnectionParams holds PostgreSQL connection parameters
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// New creates a new database connection
func New(params ConnectionParams) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		params.Host, params.Port, params.User, params.Password, params.DBName, params.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Check connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// createTables creates the necessary tables if they don't exist
func createTables(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS analysis_results (
			id BIGSERIAL PRIMARY KEY,
			symbol TEXT NOT NULL,
			regime TEXT NOT NULL,
			primary_signal TEXT NOT NULL,
			confidence DOUBLE PRECISION NOT NULL,
			risk_score DOUBLE PRECISION NOT NULL,
			signals JSONB,
			created_at TIMESTAMPTZ NOT NULL
		)
	`); err != nil {
		return err
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS crash_signals (
			id BIGSERIAL PRIMARY KEY,
			symbol TEXT NOT NULL,
			severity TEXT NOT NULL,
			confidence DOUBLE PRECISION NOT NULL,
			rapid_drop BOOLEAN NOT NULL,
			volume_spike BOOLEAN NOT NULL,
			oversold_rsi BOOLEAN NOT NULL,
			high_volatility BOOLEAN NOT NULL,
			recommendation TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`); err != nil {
		return err
	}

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS entry_signals (
			id BIGSERIAL PRIMARY KEY,
			symbol TEXT NOT NULL,
			strength TEXT NOT NULL,
			confidence DOUBLE PRECISION NOT NULL,
			bullish_macd BOOLEAN NOT NULL,
			volume_increase BOOLEAN NOT NULL,
			trend_confirmation BOOLEAN NOT NULL,
			bullish_divergence BOOLEAN NOT NULL,
			recommendation TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`)

	return err
}

// SaveResult stores a completed strategy analysis for a symbol.
func (db *DB) SaveResult(result *models.StrategyResult) error {
	signals, err := json.Marshal(result.Signals)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO analysis_results (
			symbol, regime, primary_signal, confidence, risk_score, signals, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		result.Symbol, string(result.Regime), string(result.PrimarySignal),
		result.OverallConfidence, result.RiskScore, signals, result.Timestamp)

	return err
}

// SaveCrashSignal stores a triggered crash detection.
func (db *DB) SaveCrashSignal(sig *models.CrashSignal) error {
	_, err := db.Exec(`
		INSERT INTO crash_signals (
			symbol, severity, confidence,
			rapid_drop, volume_spike, oversold_rsi, high_volatility,
			recommendation, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		sig.Symbol, string(sig.Severity), sig.Confidence,
		sig.Indicators.RapidDrop, sig.Indicators.VolumeSpike,
		sig.Indicators.OversoldRSI, sig.Indicators.HighVolatility,
		sig.Recommendation, sig.Timestamp)

	return err
}

// SaveEntrySignal stores a triggered bull entry detection.
func (db *DB) SaveEntrySignal(sig *models.EntrySignal) error {
	_, err := db.Exec(`
		INSERT INTO entry_signals (
			symbol, strength, confidence,
			bullish_macd, volume_increase, trend_confirmation, bullish_divergence,
			recommendation, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		sig.Symbol, string(sig.Strength), sig.Confidence,
		sig.Indicators.BullishMACD, sig.Indicators.VolumeIncrease,
		sig.Indicators.TrendConfirmation, sig.Indicators.BullishDivergence,
		sig.Recommendation, sig.Timestamp)

	return err
}

// LastResult returns the most recent stored analysis for a symbol,
// or nil when none exists.
func (db *DB) LastResult(symbol string) (*models.StrategyResult, error) {
	var result models.StrategyResult
	var regime, primarySignal string
	var signals []byte

	err := db.QueryRow(`
		SELECT symbol, regime, primary_signal, confidence, risk_score, signals, created_at
		FROM analysis_results
		WHERE symbol = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, symbol).Scan(
		&result.Symbol, &regime, &primarySignal,
		&result.OverallConfidence, &result.RiskScore, &signals, &result.Timestamp,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	result.Regime = models.MarketRegime(regime)
	result.PrimarySignal = models.Signal(primarySignal)

	if len(signals) > 0 {
		if err := json.Unmarshal(signals, &result.Signals); err != nil {
			return nil, err
		}
	}

	return &result, nil
}
