// Package schedule defines the serializable result model for parsed
// publications.
//
// The JSON field names on MWBWeek and WStudy are the wire contract consumed
// by downstream schedule tooling and must not change. SongRef models fields
// that carry either a song number or the original free-form text.
package schedule
