package queue

import "time"

// AddWorkingDays advances start one calendar day at a time, counting only
// days that are not Saturday or Sunday, until n working days have been
// counted. The start day itself is never counted.
func AddWorkingDays(start time.Time, n int) time.Time {
	date := start
	added := 0
	for added < n {
		date = date.AddDate(0, 0, 1)
		if wd := date.Weekday(); wd != time.Saturday && wd != time.Sunday {
			added++
		}
	}
	return date
}
