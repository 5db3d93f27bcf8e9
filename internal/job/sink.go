package job

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasklog-api/internal/platform/logger"
	"github.com/redis/go-redis/v9"
)

// ReportSink receives rendered reports.
type ReportSink interface {
	Publish(ctx context.Context, report Report) error
}

// LogSink writes each report as an INFO record.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a LogSink. The logger carried in the run context takes
// precedence over log, which in turn falls back to slog.Default.
func NewLogSink(log *slog.Logger) *LogSink {
	if log == nil {
		log = slog.Default()
	}
	return &LogSink{logger: log}
}

// Publish implements ReportSink.
func (s *LogSink) Publish(ctx context.Context, report Report) error {
	logger.FromContextOrDefault(ctx, s.logger).Info("task report",
		slog.Int64("user_id", report.UserID),
		slog.Int("task_count", report.TaskCount),
		slog.String("report", report.Text))
	return nil
}

// RedisSink pushes each report as JSON onto a Redis list, newest first,
// trimming the list to maxEntries.
type RedisSink struct {
	client     redis.Cmdable
	key        string
	maxEntries int64
}

// NewRedisSink creates a RedisSink. maxEntries <= 0 keeps every report.
func NewRedisSink(client redis.Cmdable, key string, maxEntries int64) *RedisSink {
	return &RedisSink{
		client:     client,
		key:        key,
		maxEntries: maxEntries,
	}
}

// Publish implements ReportSink. The push and the trim run in one
// MULTI/EXEC so readers never see the list over its bound.
func (s *RedisSink) Publish(ctx context.Context, report Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.key, payload)
	if s.maxEntries > 0 {
		pipe.LTrim(ctx, s.key, 0, s.maxEntries-1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish report to redis list %s: %w", s.key, err)
	}
	return nil
}
