// Package language carries the per-language profiles that drive enhanced
// schedule extraction.
//
// A profile supplies month-name tables, the week-date and study-date
// patterns, and the minutes marker for duration extraction. Languages
// without a profile degrade gracefully: dates pass through verbatim and
// only the raw part text is kept.
//
// Ukrainian is registered under both "K" (the MEPS-derived code the month
// tables historically used) and "U" (the letter that appears in filenames);
// lookups by either resolve the same profile.
package language
