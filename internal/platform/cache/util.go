package cache

import (
	"strings"
	"time"
)

const (
	// RefreshHour はCompanies Houseのデータ更新に合わせたキャッシュ失効時刻（英国時間）です。
	RefreshHour = 6
	refreshZone = "Europe/London"
)

// TimeUntilNextRefresh は次の午前6時（英国時間）までの期間を返します。
func TimeUntilNextRefresh() time.Duration {
	loc, err := time.LoadLocation(refreshZone)
	if err != nil {
		loc = time.UTC
	}
	return TimeUntilNextHour(time.Now(), loc, RefreshHour)
}

// TimeUntilNextHour はnowからloc上の次のhour時ちょうどまでの期間を返します。
// nowがちょうどhour時の場合は翌日までの期間になります。
func TimeUntilNextHour(now time.Time, loc *time.Location, hour int) time.Duration {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	if !next.After(local) {
		// 夏時間の切り替え日も壁時計の時刻を保つ
		next = time.Date(local.Year(), local.Month(), local.Day()+1, hour, 0, 0, 0, loc)
	}
	return next.Sub(now)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
