package followup

import (
	"github.com/hiehoo/tnetbot/internal/funnel"
	"github.com/hiehoo/tnetbot/internal/gateway"
)

var serviceMessages = map[string]string{
	funnel.ServiceEA:        "I noticed you were exploring our EA Trading Bot recently. Our automated system has a proven 80% win rate and has helped many traders achieve consistent profits.",
	funnel.ServiceVIP:       "I noticed you were checking out our VIP Trading Plan. Our VIP members enjoy exclusive benefits like 1-on-1 signal guidance and higher returns.",
	funnel.ServiceVIPEA:     "I noticed you were checking out our Premium VIP Signal + EA package. It combines expert signal guidance with our automated trading bot for the best of both.",
	funnel.ServiceSignal:    "I noticed you were looking at our Signal Service. Our signals have a 94% win rate and can significantly improve your trading results.",
	funnel.ServiceStandard:  "I noticed you were exploring our Standard Plan. It's a great way to get started with our premium trading signals and support.",
	funnel.ServiceCopytrade: "I noticed you were checking out our Copytrade Plan. It's perfect if you want to earn without having to trade yourself - we handle everything for you.",
	funnel.ServiceChallenge: "I noticed you were looking at our x10 Challenge. Slots are almost gone - claim yours before the free offer closes.",
}

const defaultMessage = "I noticed you were exploring our services recently but didn't complete your purchase."

// reEngagementMessage builds the follow-up sent when a scheduled task fires:
// service-specific nudge plus the three response buttons.
func reEngagementMessage(chatID int64, service string) gateway.Message {
	base, ok := serviceMessages[service]
	if !ok {
		base = defaultMessage
	}

	text := "👋 *Follow-up from TNETC Trading*\n\n" +
		base + "\n\n" +
		"Would you like to continue where you left off or do you have questions I can help with?"

	return gateway.Message{
		ChatID: chatID,
		Text:   text,
		Buttons: [][]gateway.Button{
			{{Label: "Continue Where I Left Off", Data: "resume_" + service}},
			{{Label: "I Have Questions", Data: "followup_questions"}},
			{{Label: "Not Interested", Data: "followup_not_interested"}},
		},
	}
}
