package logging

import (
	"context"
	"time"
)

// HTTPRequestContext logs an outbound HTTP request with common fields.
func HTTPRequestContext(ctx context.Context, method, url string, statusCode int, duration time.Duration, args ...any) {
	allArgs := []any{
		"method", method,
		"url", url,
		"status_code", statusCode,
		"duration_ms", duration.Milliseconds(),
	}
	allArgs = append(allArgs, args...)
	LoggerFromContext(ctx).Debug("http_request", allArgs...)
}

// OverlapFound logs a day/track whose reading starts on the previous day's
// boundary verse.
func OverlapFound(ctx context.Context, key, track, ref, boundary string) {
	LoggerFromContext(ctx).Info("overlap_found",
		"day", key,
		"track", track,
		"ref", ref,
		"boundary", boundary,
	)
}

// CorrectionApplied logs a rewritten reference.
func CorrectionApplied(ctx context.Context, key, track, oldRef, newRef string, args ...any) {
	allArgs := []any{
		"day", key,
		"track", track,
		"old_ref", oldRef,
		"new_ref", newRef,
	}
	allArgs = append(allArgs, args...)
	LoggerFromContext(ctx).Info("correction_applied", allArgs...)
}

// ItemSkipped logs a day/track the batch could not process.
func ItemSkipped(ctx context.Context, key, track, stage string, err error) {
	LoggerFromContext(ctx).Warn("item_skipped",
		"day", key,
		"track", track,
		"stage", stage,
		"error", err.Error(),
	)
}

// BatchSummary logs the totals of a finished batch run.
func BatchSummary(ctx context.Context, scanned, overlaps, corrected, skipped int, duration time.Duration, args ...any) {
	allArgs := []any{
		"days_scanned", scanned,
		"overlaps", overlaps,
		"corrected", corrected,
		"skipped", skipped,
		"duration_ms", duration.Milliseconds(),
	}
	allArgs = append(allArgs, args...)
	LoggerFromContext(ctx).Info("batch_summary", allArgs...)
}
