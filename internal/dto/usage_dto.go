package dto

type FeatureUsage struct {
	Used      int  `json:"used"`
	Limit     int  `json:"limit"`
	Unlimited bool `json:"unlimited"`
	// Remaining is -1 when the cap is unlimited; Percent is 0 then.
	Remaining int     `json:"remaining"`
	Percent   float64 `json:"percent"`
}

type UsageSummaryResponse struct {
	Date     string                  `json:"date"`
	Plan     string                  `json:"plan"`
	Features map[string]FeatureUsage `json:"features"`
}

type StreakResponse struct {
	StreakCount      int    `json:"streak_count"`
	LastActivityDate string `json:"last_activity_date"`
	Extended         bool   `json:"extended"`
}
