package metrics

import (
	"testing"
	"time"
)

func TestCacheMetrics(t *testing.T) {
	// Metrics are package-level and auto-registered; these just verify the
	// helpers don't panic.

	t.Run("RecordRequest", func(t *testing.T) {
		RecordRequest("GET")
		RecordRequest("POST")
	})

	t.Run("RecordHit", func(t *testing.T) {
		RecordHit("GET")
	})

	t.Run("RecordMiss", func(t *testing.T) {
		RecordMiss("GET")
	})

	t.Run("RecordBypass", func(t *testing.T) {
		RecordBypass("HEAD")
	})

	t.Run("RecordTransportError", func(t *testing.T) {
		RecordTransportError("GET")
	})

	t.Run("RecordStoreError", func(t *testing.T) {
		RecordStoreError("file", "decode")
	})

	t.Run("TimeStoreOperation", func(t *testing.T) {
		done := TimeStoreOperation("get", "file")
		time.Sleep(time.Millisecond)
		done()
	})
}
