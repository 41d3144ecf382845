package jalali

import (
	"fmt"
	"time"

	"github.com/jalaali/go-jalaali"
)

// Tehran is the timezone all CMS-facing timestamps are expressed in.
var Tehran = loadTehran()

func loadTehran() *time.Location {
	loc, err := time.LoadLocation("Asia/Tehran")
	if err != nil {
		// IRST, no DST since 2022
		return time.FixedZone("IRST", int(3*time.Hour+30*time.Minute)/int(time.Second))
	}
	return loc
}

// NowTehran returns the current wall-clock time in Tehran.
func NowTehran() time.Time {
	return time.Now().In(Tehran)
}

// Timestamp renders t as the Jalali datetime string the CMS scheduling
// field expects, e.g. "1403/01/01 15:04:05".
func Timestamp(t time.Time) (string, error) {
	t = t.In(Tehran)

	jy, jm, jd, err := jalaali.ToJalaali(t.Year(), t.Month(), t.Day())
	if err != nil {
		return "", fmt.Errorf("failed to convert %v to jalali: %w", t, err)
	}

	return fmt.Sprintf("%04d/%02d/%02d %02d:%02d:%02d",
		jy, int(jm), jd, t.Hour(), t.Minute(), t.Second()), nil
}
