package lunar

// JulianDayNumber converts a proleptic Gregorian calendar date to its Julian day number
// (Fliegel & Van Flandern). Integer division truncates, as the formula requires.
func JulianDayNumber(year, month, day int) int {
	a := (month - 14) / 12
	return day - 32075 +
		1461*(year+4800+a)/4 +
		367*(month-2-a*12)/12 -
		3*((year+4900+a)/100)/4
}
