package funnel

import (
	"github.com/hiehoo/tnetbot/internal/gateway"
)

// Service tags group offers for view counting and follow-up scheduling.
const (
	ServiceEA        = "ea"
	ServiceChallenge = "challenge"
	ServiceSignal    = "signal"
	ServiceVIP       = "vip"
	ServiceVIPEA     = "vip_ea"
	ServiceStandard  = "standard"
	ServiceCopytrade = "copytrade"
)

// Campaign identifiers carried on the /start deep link.
const (
	CampaignEA     = "ea_campaign"
	CampaignSignal = "signal_campaign"
	CampaignVIP    = "vip_campaign"
)

const (
	supportURL   = "https://t.me/trump_tnetc_admin"
	communityURL = "https://t.me/tnetccommunity/186"
	channelURL   = "https://t.me/tnect_trade"
)

// Node is one renderable screen of the funnel: text plus an inline keyboard.
type Node struct {
	ID      string
	Text    string
	Buttons [][]gateway.Button
}

// Message converts the node into an outbound gateway message for a chat.
func (n Node) Message(chatID int64) gateway.Message {
	return gateway.Message{ChatID: chatID, Text: n.Text, Buttons: n.Buttons}
}

func backToPlans() gateway.Button {
	return gateway.Button{Label: "🔙 Back to Plans", Data: "show_all_services"}
}

func contactSupport() gateway.Button {
	return gateway.Button{Label: "📱 Contact Support", URL: supportURL}
}

// Fallback is shown for button data the router does not recognize.
func Fallback() Node {
	return Node{
		ID:   "fallback",
		Text: "Sorry, that option is no longer available. Here are our current services:",
		Buttons: [][]gateway.Button{
			{{Label: "🏠 Main Menu", Data: "show_all_services"}},
			{contactSupport()},
		},
	}
}

// Apology is sent when rendering or delivery of the requested node failed.
func Apology() Node {
	return Node{
		ID:   "apology",
		Text: "Sorry, something went wrong. Please try again later.",
	}
}
