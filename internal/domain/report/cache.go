package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// GenerationKey is bumped after every attendance mutation and registration;
// cached reports embed the generation they were built from and go stale
// when it moves.
const GenerationKey = "report:generation"

// RosterFingerprint identifies the set and order of employees a report covers.
func RosterFingerprint(userIDs []string) string {
	sum := sha256.Sum256([]byte(strings.Join(userIDs, ",")))
	return hex.EncodeToString(sum[:8])
}

func AllScopeCacheKey(start, end time.Time, threshold float64, generation int64, roster string) string {
	return fmt.Sprintf("report:all:%s:%s:t%g:g%d:r%s", start.Format("2006-01-02"), end.Format("2006-01-02"), threshold, generation, roster)
}
