package schedule

import (
	"encoding/json"
	"fmt"
)

// SchemaVersion is stamped on every Result. Bump only with a coordinated
// change to consumers of the serialized form.
const SchemaVersion = "1.0.0"

// PublicationType distinguishes the two supported publication families.
type PublicationType string

const (
	PublicationMWB        PublicationType = "MWB"
	PublicationWatchtower PublicationType = "WATCHTOWER"
)

// SongRef holds either a resolved song number (1..162) or the original text
// when no valid number could be extracted. Exactly one of the two is set.
type SongRef struct {
	Number int
	Text   string
}

// SongNumber builds a numeric reference.
func SongNumber(n int) *SongRef { return &SongRef{Number: n} }

// SongText builds a free-form reference.
func SongText(text string) *SongRef { return &SongRef{Text: text} }

func (s SongRef) MarshalJSON() ([]byte, error) {
	if s.Number > 0 {
		return json.Marshal(s.Number)
	}
	return json.Marshal(s.Text)
}

func (s *SongRef) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		s.Number = n
		s.Text = ""
		return nil
	}
	var t string
	if err := json.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("song reference must be a number or string: %w", err)
	}
	s.Number = 0
	s.Text = t
	return nil
}

func (s SongRef) String() string {
	if s.Number > 0 {
		return fmt.Sprintf("%d", s.Number)
	}
	return s.Text
}

// MWBWeek is one midweek-meeting schedule extracted from a Meeting Workbook
// week document.
type MWBWeek struct {
	WeekDate           *string  `json:"mwb_week_date,omitempty"`
	WeekDateLocale     *string  `json:"mwb_week_date_locale,omitempty"`
	WeeklyBibleReading *string  `json:"mwb_weekly_bible_reading,omitempty"`
	SongFirst          *SongRef `json:"mwb_song_first,omitempty"`
	TGWTalk            *string  `json:"mwb_tgw_talk,omitempty"`
	TGWTalkTitle       *string  `json:"mwb_tgw_talk_title,omitempty"`
	TGWGemsTitle       *string  `json:"mwb_tgw_gems_title,omitempty"`
	TGWBread           *string  `json:"mwb_tgw_bread,omitempty"`
	TGWBreadTitle      *string  `json:"mwb_tgw_bread_title,omitempty"`
	AYFCount           int      `json:"mwb_ayf_count"`
	AYFPart1           *string  `json:"mwb_ayf_part1,omitempty"`
	AYFPart1Time       *int     `json:"mwb_ayf_part1_time,omitempty"`
	AYFPart1Type       *string  `json:"mwb_ayf_part1_type,omitempty"`
	AYFPart1Title      *string  `json:"mwb_ayf_part1_title,omitempty"`
	AYFPart2           *string  `json:"mwb_ayf_part2,omitempty"`
	AYFPart2Time       *int     `json:"mwb_ayf_part2_time,omitempty"`
	AYFPart2Type       *string  `json:"mwb_ayf_part2_type,omitempty"`
	AYFPart2Title      *string  `json:"mwb_ayf_part2_title,omitempty"`
	AYFPart3           *string  `json:"mwb_ayf_part3,omitempty"`
	AYFPart3Time       *int     `json:"mwb_ayf_part3_time,omitempty"`
	AYFPart3Type       *string  `json:"mwb_ayf_part3_type,omitempty"`
	AYFPart3Title      *string  `json:"mwb_ayf_part3_title,omitempty"`
	AYFPart4           *string  `json:"mwb_ayf_part4,omitempty"`
	AYFPart4Time       *int     `json:"mwb_ayf_part4_time,omitempty"`
	AYFPart4Type       *string  `json:"mwb_ayf_part4_type,omitempty"`
	AYFPart4Title      *string  `json:"mwb_ayf_part4_title,omitempty"`
	SongMiddle         *SongRef `json:"mwb_song_middle,omitempty"`
	LCCount            int      `json:"mwb_lc_count"`
	LCPart1            *string  `json:"mwb_lc_part1,omitempty"`
	LCPart1Time        *int     `json:"mwb_lc_part1_time,omitempty"`
	LCPart1Content     *string  `json:"mwb_lc_part1_content,omitempty"`
	LCPart1Title       *string  `json:"mwb_lc_part1_title,omitempty"`
	LCPart2            *string  `json:"mwb_lc_part2,omitempty"`
	LCPart2Time        *int     `json:"mwb_lc_part2_time,omitempty"`
	LCPart2Content     *string  `json:"mwb_lc_part2_content,omitempty"`
	LCPart2Title       *string  `json:"mwb_lc_part2_title,omitempty"`
	LCCbs              *string  `json:"mwb_lc_cbs,omitempty"`
	LCCbsTitle         *string  `json:"mwb_lc_cbs_title,omitempty"`
	SongConclude       *SongRef `json:"mwb_song_conclude,omitempty"`
}

// WStudy is one weekend study extracted from a Watchtower Study issue.
type WStudy struct {
	StudyDate       *string `json:"w_study_date,omitempty"`
	StudyDateLocale *string `json:"w_study_date_locale,omitempty"`
	StudyTitle      *string `json:"w_study_title,omitempty"`
	OpeningSong     *int    `json:"w_study_opening_song,omitempty"`
	ConcludingSong  *int    `json:"w_study_concluding_song,omitempty"`
}

// Result is the complete outcome of parsing one publication issue. Exactly
// one schedule list is non-nil, matching PublicationType. An empty non-nil
// list means the archive was valid but no records extracted.
type Result struct {
	SchemaVersion   string          `json:"schemaVersion"`
	PublicationType PublicationType `json:"publicationType"`
	Language        string          `json:"language"`
	Year            int             `json:"year"`
	Month           int             `json:"month"`
	MWBSchedules    []MWBWeek       `json:"mwbSchedules,omitzero"`
	WSchedules      []WStudy        `json:"wSchedules,omitzero"`
}

// MarshalJSON omits MWBSchedules/WSchedules only when nil, keeping an empty
// (non-nil) list in the output. The struct tags above express this via
// omitzero for toolchains that support it; this method keeps the same
// behavior on older toolchains where that tag option is a no-op.
func (r Result) MarshalJSON() ([]byte, error) {
	type alias Result
	aux := struct {
		alias
		MWBSchedules *[]MWBWeek `json:"mwbSchedules,omitempty"`
		WSchedules   *[]WStudy  `json:"wSchedules,omitempty"`
	}{alias: alias(r)}
	if r.MWBSchedules != nil {
		aux.MWBSchedules = &r.MWBSchedules
	}
	if r.WSchedules != nil {
		aux.WSchedules = &r.WSchedules
	}
	return json.Marshal(aux)
}

// JSON renders the full result, indented.
func (r *Result) JSON() (string, error) {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	return string(out), nil
}

// SchedulesJSON renders only the schedule list for the publication type.
func (r *Result) SchedulesJSON() (string, error) {
	var v any
	switch r.PublicationType {
	case PublicationMWB:
		v = r.MWBSchedules
	case PublicationWatchtower:
		v = r.WSchedules
	default:
		return "", fmt.Errorf("unknown publication type %q", r.PublicationType)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal schedules: %w", err)
	}
	return string(out), nil
}

// Ptr is a small helper for optional string fields.
func Ptr(s string) *string { return &s }
