package funnel

import "github.com/hiehoo/tnetbot/internal/gateway"

const regularWelcomeText = "Welcome to Tnetc, fam!\n\n" +
	"Founded by pro traders with 10+ years experience delivering top-tier signals & tools.\n\n" +
	"*OUR PREMIUM SERVICES:*\n\n" +
	"🔥 *SPECIAL x10 CHALLENGE*\n" +
	"- Limited 100 slots only\n" +
	"- Copy trading challenge to 10x your account\n" +
	"- Previous result: x10 in 66 days\n" +
	"- $350 value - currently FREE!\n\n" +
	"🔥 *COPYTRADE PLAN*\n" +
	"- Copy trade us on Puprime (guaranteed profits)\n" +
	"- 1-on-1 setup + weekly reports\n" +
	"- No trading knowledge needed\n" +
	"- $500 value - currently FREE!\n\n" +
	"💎 *PREMIUM VIP SIGNAL + EA TRADING BOT*\n" +
	"- 1-on-1 signal guidance\n" +
	"- EA trading bot (80% win rate)\n" +
	"- VIP copy trading + 24/7 support\n" +
	"- Exclusive top-tier trader group\n\n" +
	"Last month: FX +40.36% ✅ | GOLD +19.41% ✅\n" +
	"Win Rate: 94% 🚀\n\n" +
	"Please select your subscription plan:"

const signalWelcomeText = "Welcome to TNETC Premium Signals! 📈\n\n" +
	"You've discovered our high-performance trading services with:\n" +
	"✅ 94% combined win rate\n" +
	"✅ +40.36% on FX last month\n" +
	"✅ +19.41% on GOLD last month\n\n" +
	"*OUR PREMIUM SERVICES:*\n\n" +
	"🔥 *SPECIAL x10 CHALLENGE*\n" +
	"• Limited 100 slots only - FREE!\n\n" +
	"🔥 *COPYTRADE PLAN*\n" +
	"• We trade for you - no knowledge needed\n" +
	"• $500 value - currently FREE!\n\n" +
	"💎 *PREMIUM VIP SIGNAL + EA TRADING BOT*\n" +
	"• Our most comprehensive solution\n" +
	"• Both signals and automated trading\n\n" +
	"Select a plan to get started:"

const vipWelcomeText = "Welcome to TNETC VIP Trading! 💎\n\n" +
	"You've discovered our exclusive premium trading services with:\n" +
	"✅ Expert 1-on-1 guidance\n" +
	"✅ VIP copy trading with higher returns\n" +
	"✅ 24/7 VIP support\n\n" +
	"*OUR PREMIUM SERVICES:*\n\n" +
	"🔥 *SPECIAL x10 CHALLENGE*\n" +
	"• Limited 100 slots only - FREE!\n\n" +
	"🔥 *COPYTRADE PLAN*\n" +
	"• We trade for you - no knowledge needed\n" +
	"• $500 value - currently FREE!\n\n" +
	"💎 *PREMIUM VIP SIGNAL + EA TRADING BOT*\n" +
	"• Our most comprehensive solution\n" +
	"• Both signals and automated trading\n\n" +
	"Select a plan to get started:"

func mainOfferButtons() [][]gateway.Button {
	return [][]gateway.Button{
		{{Label: "🔥 Special, x10 challenge, 100 slots, $350 -> $0", Data: "special_challenge"}},
		{{Label: "🔥 Copytrade Plan - $500 -> $0/lifetime", Data: "copytrade_lifetime"}},
		{{Label: "💎 Premium VIP Signal with EA Trading Bot", Data: "premium_vip_ea"}},
	}
}

func campaignOfferButtons(extra gateway.Button) [][]gateway.Button {
	return [][]gateway.Button{
		{{Label: "🔥 x10 challenge - $350 → $0", Data: "special_challenge"}},
		{{Label: "🔥 Copytrade - $500 → $0/lifetime", Data: "copytrade_lifetime"}},
		{{Label: "💎 Premium VIP Signal + EA Trading Bot", Data: "premium_vip_ea"}},
		{extra},
	}
}

// WelcomeFor picks the entry node matching the campaign the user came from.
// Unrecognized campaigns get the regular welcome.
func WelcomeFor(campaign string) Node {
	switch campaign {
	case CampaignEA:
		return Node{
			ID:      "ea_welcome",
			Text:    regularWelcomeText,
			Buttons: campaignOfferButtons(gateway.Button{Label: "📊 View Performance Results", Data: "ea_results"}),
		}
	case CampaignSignal:
		return Node{
			ID:      "signal_welcome",
			Text:    signalWelcomeText,
			Buttons: campaignOfferButtons(gateway.Button{Label: "📊 View Signal Performance", Data: "signal_results"}),
		}
	case CampaignVIP:
		return Node{
			ID:      "vip_welcome",
			Text:    vipWelcomeText,
			Buttons: campaignOfferButtons(gateway.Button{Label: "📊 View PremiumVIP Benefits", Data: "vip_benefits"}),
		}
	default:
		return Node{
			ID:      "welcome",
			Text:    regularWelcomeText,
			Buttons: mainOfferButtons(),
		}
	}
}
