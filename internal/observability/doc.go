// Package observability provides logging, metrics, and context helpers for
// the academic profile service.
//
// # Logging
//
// Create a logger from configuration:
//
//	logger := observability.NewLogger(observability.LoggingConfig{
//	    Level:  "info",
//	    Format: "json",
//	    Output: "stdout",
//	})
//	logger.Info().Str("owner_id", ownerID).Msg("profile saved")
//
// Binaries that write to a log file use OpenLogger instead, which reports an
// unusable output and returns a closer for the file.
//
// # Metrics
//
//	metrics := observability.NewMetrics("academic_directory")
//	metrics.RecordPublicationAdded()
//	metrics.RecordStatisticsComputed("owner", 0.0004)
//
// All Record* methods are no-ops on a nil *Metrics, so components can be
// constructed without metrics in tests and tools.
//
// # Standard Fields
//
//   - request_id: chi request identifier
//   - correlation_id: caller supplied or generated X-Correlation-ID
//   - owner_id: verified account id of the researcher
//   - publication_id: publication identifier
//   - collection: document store collection name
package observability
