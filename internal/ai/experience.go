package ai

// ExperienceBand maps years of experience to the question focus used in
// generation prompts.
func ExperienceBand(years int) string {
	switch {
	case years <= 2:
		return "0-2 years: core programming concepts, data structures, algorithms basics"
	case years <= 5:
		return "3-5 years: system design fundamentals, optimization techniques, advanced algorithms"
	case years <= 8:
		return "6-8 years: complex system architecture, scalability patterns, performance optimization"
	default:
		return "9+ years: distributed systems design, technical leadership challenges, enterprise architecture"
	}
}

var experienceBands = []int{0, 3, 6, 9}
