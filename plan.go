package licensing

import "regexp"

// PlanType is the subscription tier a license was issued for.
type PlanType string

const (
	PlanTrial1   PlanType = "trial1"
	PlanTrial3   PlanType = "trial3"
	Plan30Days   PlanType = "30d"
	Plan180Days  PlanType = "180d"
	Plan365Days  PlanType = "365d"
	PlanLifetime PlanType = "lifetime"
)

var planNames = map[PlanType]string{
	PlanTrial1:   "1-day trial",
	PlanTrial3:   "3-day trial",
	Plan30Days:   "30 days",
	Plan180Days:  "180 days",
	Plan365Days:  "365 days",
	PlanLifetime: "lifetime",
}

// Describe returns a display name for p, or p itself for plans issued by a
// newer server.
func (p PlanType) Describe() string {
	if name, ok := planNames[p]; ok {
		return name
	}
	return string(p)
}

var keyFormat = regexp.MustCompile(`^[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{4}$`)

// ValidKeyFormat reports whether key looks like XXXX-XXXX-XXXX-XXXX. The
// server answers not_found for anything else, so this is only a hint.
func ValidKeyFormat(key string) bool {
	return keyFormat.MatchString(key)
}
