package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/SMC-IDCardBooking/pkg/metrics"
)

// DefaultCollectInterval период сбора статистики connection pool
const DefaultCollectInterval = 15 * time.Second

// DB обёртка над *sql.DB, измеряющая длительность запросов
// BeginTx, Close, Stats и прочие методы доступны из встроенного *sql.DB
type DB struct {
	*sql.DB
	metrics *metrics.Metrics
	dbName  string
}

// Wrap оборачивает соединение без фонового сбора статистики пула
func Wrap(db *sql.DB, m *metrics.Metrics, dbName string) *DB {
	return &DB{DB: db, metrics: m, dbName: dbName}
}

// WrapWithDefault оборачивает соединение и запускает сбор статистики пула
// Сбор останавливается при закрытии stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, dbName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m, dbName)
	go wrapped.collectPoolStats(DefaultCollectInterval, stopCh)
	return wrapped
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer db.observe(query, time.Now())
	return db.DB.ExecContext(ctx, query, args...)
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	defer db.observe(query, time.Now())
	return db.DB.QueryContext(ctx, query, args...)
}

func (db *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	defer db.observe(query, time.Now())
	return db.DB.QueryRowContext(ctx, query, args...)
}

func (db *DB) observe(query string, start time.Time) {
	if db.metrics == nil {
		return
	}
	db.metrics.DBQueryDuration.WithLabelValues(operation(query)).Observe(time.Since(start).Seconds())
}

func (db *DB) collectPoolStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		db.recordPoolStats()
		select {
		case <-stopCh:
			return
		case <-ticker.C:
		}
	}
}

func (db *DB) recordPoolStats() {
	if db.metrics == nil {
		return
	}
	stats := db.DB.Stats()
	db.metrics.DBOpenConnections.WithLabelValues(db.dbName).Set(float64(stats.OpenConnections))
	db.metrics.DBInUseConnections.WithLabelValues(db.dbName).Set(float64(stats.InUse))
	db.metrics.DBIdleConnections.WithLabelValues(db.dbName).Set(float64(stats.Idle))
	db.metrics.DBWaitCount.WithLabelValues(db.dbName).Set(float64(stats.WaitCount))
	db.metrics.DBWaitDurationTotal.WithLabelValues(db.dbName).Set(stats.WaitDuration.Seconds())
}

// operation первое слово запроса (select, insert, update, delete)
func operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
