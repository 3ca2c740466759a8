package llm

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD price of a request.
func (c ModelCost) Cost(u Usage) float64 {
	return float64(u.InputTokens)*c.InputPerMTok/1_000_000 +
		float64(u.OutputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns pricing for a model id, or false if unknown.
func LookupCost(model string) (ModelCost, bool) {
	c, ok := modelCosts[model]
	return c, ok
}

// Prices from models.dev, covering the default and aliased models.
var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5-20251001":   {1, 5},
	"claude-haiku-4-5":            {1, 5},
	"claude-sonnet-4-20250514":    {3, 15},
	"claude-sonnet-4-5":           {3, 15},
	"claude-sonnet-4-5-20250929":  {3, 15},
	"gpt-4o":                      {2.5, 10},
	"gpt-4o-mini":                 {0.15, 0.6},
	"gpt-4.1":                     {2, 8},
	"gpt-4.1-mini":                {0.4, 1.6},
	"gemini-2.0-flash":            {0.1, 0.4},
	"gemini-2.0-pro":              {1.25, 10},
	"gemini-2.5-flash":            {0.3, 2.5},
	"gemini-2.5-pro":              {1.25, 10},
	"google/gemini-2.0-flash-exp": {0, 0},
	"mock":                        {0, 0},
}
