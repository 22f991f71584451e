package models

import (
	"testing"
	"time"
)

func TestHasAttendance(t *testing.T) {
	now := time.Now()

	empty := AggregatedDayRecord{Date: "2025-03-10", UserID: "u1", Name: "Ana"}
	if empty.HasAttendance() {
		t.Error("expected record without shifts to report no attendance")
	}

	withEmptyShifts := AggregatedDayRecord{Morning: &ShiftTimes{}, Afternoon: &ShiftTimes{}}
	if withEmptyShifts.HasAttendance() {
		t.Error("expected record with empty shift structs to report no attendance")
	}

	onlyCheckOut := AggregatedDayRecord{Afternoon: &ShiftTimes{CheckOut: &now}}
	if !onlyCheckOut.HasAttendance() {
		t.Error("expected checkout-only record to report attendance")
	}

	full := AggregatedDayRecord{Morning: &ShiftTimes{CheckIn: &now, CheckOut: &now}}
	if !full.HasAttendance() {
		t.Error("expected full morning record to report attendance")
	}
}
