package analyst

// Impact labels the sentiment direction of a generated headline.
type Impact string

const (
	ImpactPositive Impact = "POSITIVE"
	ImpactNegative Impact = "NEGATIVE"
	ImpactNeutral  Impact = "NEUTRAL"
)

// ValidImpact reports whether the value is one of the recognised labels.
func ValidImpact(v Impact) bool {
	switch v {
	case ImpactPositive, ImpactNegative, ImpactNeutral:
		return true
	}
	return false
}

// NewsItem is one generated headline with its sentiment tag.
type NewsItem struct {
	ID       string `json:"id"`
	Headline string `json:"headline"`
	Source   string `json:"source"`
	Time     string `json:"time"`
	Summary  string `json:"summary"`
	Impact   Impact `json:"impact"`
}
