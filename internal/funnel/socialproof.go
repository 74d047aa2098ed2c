package funnel

import "math/rand"

// socialProofChance is the percentage of offer renders that get a
// testimonial appended.
const socialProofChance = 30

var testimonials = []string{
	"💬 \"Joined the copytrade plan 3 months ago - my account is up 47% and I haven't placed a single trade myself.\" - Marcus T.",
	"💬 \"The VIP signals paid for themselves in the first week. 1-on-1 guidance makes all the difference.\" - Sarah K.",
	"💬 \"Skeptical at first, but the EA has been running on my MT5 for 2 months with an 82% win rate.\" - David R.",
	"💬 \"x10 challenge was the best decision I made this year. Turned $1K into $8.4K in two months.\" - James L.",
}

var offerNodes = map[string]bool{
	"special_challenge":  true,
	"copytrade_lifetime": true,
	"premium_vip_ea":     true,
	"standard_trial":     true,
	"standard_monthly":   true,
	"standard_lifetime":  true,
	"vip_monthly":        true,
	"vip_lifetime":       true,
}

// ShouldAttachSocialProof decides whether a testimonial is appended to the
// node. Only offer screens qualify; the roll uses the injected rng so tests
// can pin the outcome.
func ShouldAttachSocialProof(rng *rand.Rand, node Node) bool {
	if !offerNodes[node.ID] {
		return false
	}
	return rng.Intn(100) < socialProofChance
}

// WithSocialProof appends a randomly chosen testimonial to the node text.
func WithSocialProof(rng *rand.Rand, node Node) Node {
	node.Text += "\n\n" + testimonials[rng.Intn(len(testimonials))]
	return node
}
