package catalog

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// StatsUnavailable is returned while the catalog is still empty.
const StatsUnavailable = "Stats are not yet available"

// Stats reads the catalog aggregate and formats a human-readable summary,
// e.g. "1024 tracks, 3.5 GB".
func (s *Service) Stats(ctx context.Context) (string, error) {
	stats, err := s.tracks.TrackStats(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read catalog stats: %w", err)
	}

	if stats.Count == 0 {
		return StatsUnavailable, nil
	}

	return fmt.Sprintf("%d tracks, %s", stats.Count, HumanSize(stats.TotalBytes)), nil
}

var sizeSuffixes = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// HumanSize renders a byte count with the unit picked by decimal magnitude
// and the value scaled by powers of 1024, up to two decimals with trailing
// zeros stripped. Zero is special-cased: log10 is undefined there.
func HumanSize(nbytes int64) string {
	if nbytes <= 0 {
		return "0 B"
	}

	rank := int(math.Log10(float64(nbytes)) / 3)
	if rank > len(sizeSuffixes)-1 {
		rank = len(sizeSuffixes) - 1
	}

	human := float64(nbytes) / math.Pow(1024, float64(rank))
	f := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", human), "0"), ".")

	return f + " " + sizeSuffixes[rank]
}
