package funnel

// Plan describes a sellable plan: display name, price tag, and the service
// family it belongs to.
type Plan struct {
	Code    string
	Name    string
	Price   string
	Service string
}

// UnknownPrice is recorded when a payment confirmation carries a plan code
// that is not in the table. The purchase is still written.
const UnknownPrice = "Unknown"

var plans = map[string]Plan{
	"monthly":           {Code: "monthly", Name: "Monthly EA Plan", Price: "$200", Service: ServiceEA},
	"quarterly":         {Code: "quarterly", Name: "Quarterly EA Plan", Price: "$500", Service: ServiceEA},
	"annual":            {Code: "annual", Name: "Annual EA Plan", Price: "$1500", Service: ServiceEA},
	"copytrade":         {Code: "copytrade", Name: "Copytrade Lifetime Plan", Price: "$500", Service: ServiceCopytrade},
	"standard_trial":    {Code: "standard_trial", Name: "Standard Trial Plan", Price: "Free Trial", Service: ServiceStandard},
	"standard_monthly":  {Code: "standard_monthly", Name: "Standard Monthly Plan", Price: "$66/month", Service: ServiceStandard},
	"standard_lifetime": {Code: "standard_lifetime", Name: "Standard Lifetime Plan", Price: "$300", Service: ServiceStandard},
	"vip_monthly":       {Code: "vip_monthly", Name: "VIP Monthly Plan", Price: "$300/month", Service: ServiceVIP},
	"vip_lifetime":      {Code: "vip_lifetime", Name: "VIP Lifetime Plan", Price: "$2000", Service: ServiceVIP},
	"premium_vip_ea":    {Code: "premium_vip_ea", Name: "Premium VIP Signal + EA Plan", Price: "$400/month", Service: ServiceVIPEA},
}

// PlanByCode looks up a plan. The second return reports whether it is known.
func PlanByCode(code string) (Plan, bool) {
	p, ok := plans[code]
	return p, ok
}

// PriceFor returns the recorded price for a plan code, or UnknownPrice.
func PriceFor(code string) string {
	if p, ok := plans[code]; ok {
		return p.Price
	}
	return UnknownPrice
}

// ServiceFor returns the service family a plan belongs to, defaulting to EA
// the way the original pricing funnel does.
func ServiceFor(code string) string {
	if p, ok := plans[code]; ok {
		return p.Service
	}
	return ServiceEA
}

// NameFor returns the display name for a plan code, or a generic label.
func NameFor(code string) string {
	if p, ok := plans[code]; ok {
		return p.Name
	}
	return titleCase(code) + " Plan"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
