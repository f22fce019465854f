package openpoints

// StatusCounts is the per-responsibility bucket of the project summary.
type StatusCounts struct {
	Red    int `json:"red"`
	Yellow int `json:"yellow"`
	Orange int `json:"orange"`
	Green  int `json:"green"`
	Total  int `json:"total"`
}

// Summary buckets points by responsibility with per-status counts.
type Summary struct {
	ByResponsibility map[string]StatusCounts `json:"by_responsibility"`
	Totals           StatusCounts            `json:"totals"`
}

// CalculateSummary is a pure, order-independent reduction: every point is
// counted exactly once under its responsibility.
func CalculateSummary(points []Point) Summary {
	summary := Summary{ByResponsibility: make(map[string]StatusCounts)}
	for _, p := range points {
		counts := summary.ByResponsibility[p.Responsibility]
		bump(&counts, p.Status)
		summary.ByResponsibility[p.Responsibility] = counts
		bump(&summary.Totals, p.Status)
	}
	return summary
}

func bump(c *StatusCounts, status PointStatus) {
	switch status {
	case StatusRed:
		c.Red++
	case StatusYellow:
		c.Yellow++
	case StatusOrange:
		c.Orange++
	case StatusGreen:
		c.Green++
	}
	c.Total++
}
