// internal/utils/metrics_test.go
package utils

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The collector is a process-wide singleton, so assertions use deltas.

func TestCounters(t *testing.T) {
	collector := GetMetricsCollector()

	before := collector.GetCounterValue("test_counter")
	collector.IncrementCounter("test_counter")
	collector.AddCounter("test_counter", 4)

	assert.Equal(t, before+5, collector.GetCounterValue("test_counter"))
	assert.Equal(t, int64(0), collector.GetCounterValue("never_touched"))
}

func TestGauges(t *testing.T) {
	collector := GetMetricsCollector()

	collector.SetGauge("test_gauge", 42)
	assert.Equal(t, int64(42), collector.GetGauge("test_gauge"))

	collector.SetGauge("test_gauge", 7)
	assert.Equal(t, int64(7), collector.GetGauge("test_gauge"))
}

func TestHistograms(t *testing.T) {
	collector := GetMetricsCollector()

	collector.RecordHistogram("test_histogram", 10)
	collector.RecordHistogram("test_histogram", 30)
	collector.RecordHistogram("test_histogram", 20)

	snapshot := collector.GetMetrics()
	histograms, ok := snapshot["histograms"].(map[string]map[string]int64)
	require.True(t, ok)

	hist := histograms["test_histogram"]
	require.NotNil(t, hist)
	assert.GreaterOrEqual(t, hist["count"], int64(3))
	assert.Equal(t, int64(10), hist["min"])
	assert.Equal(t, int64(30), hist["max"])
}

func TestPipelineMetricsRecordAPIRequest(t *testing.T) {
	pm := NewPipelineMetrics()
	collector := GetMetricsCollector()

	before2xx := collector.GetCounterValue("api_responses_2xx")
	before4xx := collector.GetCounterValue("api_responses_4xx")

	pm.RecordAPIRequest("/api/parse", "POST", 200, 5*time.Millisecond)
	pm.RecordAPIRequest("/api/variants", "POST", 400, 2*time.Millisecond)

	assert.Equal(t, before2xx+1, collector.GetCounterValue("api_responses_2xx"))
	assert.Equal(t, before4xx+1, collector.GetCounterValue("api_responses_4xx"))
}

func TestPipelineMetricsTransformsAndVariants(t *testing.T) {
	pm := NewPipelineMetrics()
	collector := GetMetricsCollector()

	beforeTransforms := collector.GetCounterValue("transforms_mascot_theater")
	beforeVariants := collector.GetCounterValue("variants_total")
	beforeBatches := collector.GetCounterValue("variant_batches_total")

	pm.RecordTransform("mascot_theater")
	pm.RecordVariantBatch("mascot_theater", 3)

	assert.Equal(t, beforeTransforms+1, collector.GetCounterValue("transforms_mascot_theater"))
	assert.Equal(t, beforeVariants+3, collector.GetCounterValue("variants_total"))
	assert.Equal(t, beforeBatches+1, collector.GetCounterValue("variant_batches_total"))
}

func TestPipelineMetricsErrors(t *testing.T) {
	pm := NewPipelineMetrics()
	collector := GetMetricsCollector()

	before := collector.GetCounterValue("errors_unknown_category")
	pm.RecordError("unknown_category", "/api/transform")
	assert.Equal(t, before+1, collector.GetCounterValue("errors_unknown_category"))
}

func TestConcurrentCounterUpdates(t *testing.T) {
	collector := GetMetricsCollector()
	before := collector.GetCounterValue("concurrent_counter")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			collector.IncrementCounter("concurrent_counter")
		}()
	}
	wg.Wait()

	assert.Equal(t, before+100, collector.GetCounterValue("concurrent_counter"))
}
