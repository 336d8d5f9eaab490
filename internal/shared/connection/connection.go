// Package connection dials the backing stores at startup. Each helper
// retries with a fixed backoff so the service survives docker-compose
// bringing postgres, redis, and kafka up in arbitrary order.
package connection

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const retryDelay = 5 * time.Second

// withRetry runs dial up to maxRetries times, sleeping between attempts.
func withRetry(name string, maxRetries int, dial func() error) error {
	var lastErr error
	for i := 1; i <= maxRetries; i++ {
		if lastErr = dial(); lastErr == nil {
			log.Printf("connected to %s", name)
			return nil
		}
		log.Printf("%s attempt %d/%d failed: %v", name, i, maxRetries, lastErr)
		time.Sleep(retryDelay)
	}
	return fmt.Errorf("%s connection failed after %d retries: %w", name, maxRetries, lastErr)
}

func ConnectGORMWithRetry(
	host, user, password, dbname, port, sslmode string,
	maxRetries int,
) (*gorm.DB, error) {

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode,
	)

	var db *gorm.DB
	err := withRetry("database", maxRetries, func() error {
		opened, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return err
		}

		sqlDB, err := opened.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.Ping(); err != nil {
			return err
		}

		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)

		db = opened
		return nil
	})
	return db, err
}

func ConnectRedisWithRetry(addr string, maxRetries int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	err := withRetry("redis", maxRetries, func() error {
		return rdb.Ping(context.Background()).Err()
	})
	if err != nil {
		return nil, err
	}
	return rdb, nil
}

// ConnectKafkaWithRetry probes the broker with a raw dial, then hands back a
// writer. The writer itself connects lazily, so the probe is what actually
// tells us the broker is reachable.
func ConnectKafkaWithRetry(broker string, maxRetries int) (*kafkago.Writer, error) {
	err := withRetry("kafka", maxRetries, func() error {
		conn, err := kafkago.Dial("tcp", broker)
		if err != nil {
			return err
		}
		return conn.Close()
	})
	if err != nil {
		return nil, err
	}

	return &kafkago.Writer{
		Addr:     kafkago.TCP(broker),
		Balancer: &kafkago.LeastBytes{},
	}, nil
}
