package stockmentor

// Knowledge levels a user profile may declare. Unrecognized values fall back
// to the beginner default when a personalization context is resolved.
var KnowledgeLevels = []string{"beginner", "intermediate", "advanced"}

// Risk tolerances a user profile may declare.
var RiskTolerances = []string{"conservative", "moderate", "aggressive"}

const (
	DefaultKnowledgeLevel = "beginner"
	DefaultRiskTolerance  = "moderate"
)

// PricePoint is one bar of a price series, ordered chronologically ascending.
type PricePoint struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// StockSnapshot is the derived, request-scoped view of a ticker over a period.
// It is computed from the raw price series and never persisted.
type StockSnapshot struct {
	Symbol             string             `json:"symbol"`
	Name               string             `json:"name"`
	Price              float64            `json:"price"`
	PriceChange        float64            `json:"priceChange"`
	PriceChangePercent float64            `json:"priceChangePercent"`
	Prices             []PricePoint       `json:"prices,omitempty"`
	Description        string             `json:"description"`
	Stats              map[string]float64 `json:"stats"`
}

// TickerSummary is the compact listing shape used for popular tickers and
// watchlist entries. A failed entry carries Error instead of price data.
type TickerSummary struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name,omitempty"`
	LatestPrice   *float64 `json:"latestPrice,omitempty"`
	Change        *float64 `json:"change,omitempty"`
	ChangePercent *float64 `json:"changePercent,omitempty"`
	Volume        *float64 `json:"volume,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// PersonalizationContext is the resolved knowledge/risk/goals profile that
// drives explanation tailoring.
type PersonalizationContext struct {
	KnowledgeLevel string   `json:"knowledgeLevel"`
	RiskTolerance  string   `json:"riskTolerance"`
	FinancialGoals []string `json:"financialGoals"`
}

// ExplainPreferences are request-level overrides for a single explanation.
// Non-empty fields win over the stored profile.
type ExplainPreferences struct {
	ExperienceLevel string `json:"experienceLevel"`
	RiskTolerance   string `json:"riskTolerance"`
}

// ParseStage identifies which extraction strategy produced an ExplanationResult.
type ParseStage string

const (
	StageStructuredJSON   ParseStage = "structured_json"
	StageHeadingExtracted ParseStage = "heading_extracted"
	StagePlaceholder      ParseStage = "placeholder"
	StageFallback         ParseStage = "fallback"
)

// ExplanationResult is the structured explanation returned to clients.
// All three fields are populated on every path, including fallbacks.
type ExplanationResult struct {
	Explanation string     `json:"explanation"`
	Risks       []string   `json:"risks"`
	Advice      string     `json:"advice"`
	Source      ParseStage `json:"source,omitempty"`
}

// UserProfile is the persisted per-user personalization data.
type UserProfile struct {
	Name           string   `json:"name,omitempty"`
	KnowledgeLevel string   `json:"knowledgeLevel,omitempty"`
	RiskTolerance  string   `json:"riskTolerance,omitempty"`
	FinancialGoals []string `json:"financialGoals,omitempty"`
}

// User is a registered user with watchlist and roadmap progress.
type User struct {
	ID              int64       `json:"id"`
	Email           string      `json:"email"`
	Profile         UserProfile `json:"profile"`
	Watchlist       []string    `json:"watchlist"`
	RoadmapProgress []int64     `json:"roadmapProgress"`
	CreatedAt       string      `json:"createdAt,omitempty"`
}

// Account is a user-owned financial account to review periodically.
type Account struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"-"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	ReviewDate string `json:"reviewDate"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

// RoadmapResource is one learning resource attached to a roadmap step.
type RoadmapResource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Type  string `json:"type"`
}

// RoadmapStep is one step of the global, ordered investing roadmap.
type RoadmapStep struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Resources   []RoadmapResource `json:"resources"`
	Order       int               `json:"order"`
}
