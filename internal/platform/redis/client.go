// Package redis connects to the Redis server holding notice dismissals.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"bkap/internal/platform/config"
)

const pingTimeout = 5 * time.Second

// Client is a connected go-redis client.
type Client struct {
	*redis.Client
}

// New connects to cfg.URL. An empty URL means Redis is not in use and yields
// a nil Client without error.
func New(cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	applyPool(opts, cfg)

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Client{Client: rdb}, nil
}

// applyPool overrides URL options with the non-zero pool settings of cfg.
func applyPool(opts *redis.Options, cfg config.RedisConfig) {
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
}

func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// Collector exposes connection pool statistics, read at scrape time.
func (c *Client) Collector() prometheus.Collector {
	return &poolCollector{stats: c.PoolStats}
}

type poolStat struct {
	desc  *prometheus.Desc
	kind  prometheus.ValueType
	value func(*redis.PoolStats) uint32
}

var poolStats = []poolStat{
	{newDesc("hits_total", "Connections reused from the pool."), prometheus.CounterValue,
		func(s *redis.PoolStats) uint32 { return s.Hits }},
	{newDesc("misses_total", "Connections that had to be dialled."), prometheus.CounterValue,
		func(s *redis.PoolStats) uint32 { return s.Misses }},
	{newDesc("timeouts_total", "Waits for a free connection that timed out."), prometheus.CounterValue,
		func(s *redis.PoolStats) uint32 { return s.Timeouts }},
	{newDesc("stale_conns_total", "Stale connections removed from the pool."), prometheus.CounterValue,
		func(s *redis.PoolStats) uint32 { return s.StaleConns }},
	{newDesc("total_conns", "Open connections."), prometheus.GaugeValue,
		func(s *redis.PoolStats) uint32 { return s.TotalConns }},
	{newDesc("idle_conns", "Idle connections."), prometheus.GaugeValue,
		func(s *redis.PoolStats) uint32 { return s.IdleConns }},
}

func newDesc(name, help string) *prometheus.Desc {
	return prometheus.NewDesc("bkap_redis_pool_"+name, help, nil, nil)
}

type poolCollector struct {
	stats func() *redis.PoolStats
}

func (c *poolCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, s := range poolStats {
		ch <- s.desc
	}
}

func (c *poolCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.stats()
	for _, s := range poolStats {
		ch <- prometheus.MustNewConstMetric(s.desc, s.kind, float64(s.value(stats)))
	}
}
