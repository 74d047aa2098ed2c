package funnel

import "github.com/hiehoo/tnetbot/internal/gateway"

func specialChallengeNode() Node {
	return Node{
		ID: "special_challenge",
		Text: "🔥 *X10 CHALLENGE + 100 SLOTS* 🔥\n\n" +
			"• Turn $1K into $10K with our guidance\n" +
			"• Normally: $350\n" +
			"• Today only: $0\n\n" +
			"⚠️ Only 37 slots remaining!\n\n" +
			"This offer includes:\n" +
			"• Premium signals\n" +
			"• Expert guidance\n" +
			"• Risk management strategy\n" +
			"• Full documentation\n\n" +
			"Ready to claim your spot?",
		Buttons: [][]gateway.Button{
			{{Label: "🚀 Claim my spot", URL: communityURL}},
			{contactSupport()},
			{backToPlans()},
		},
	}
}

func copytradeLifetimeNode() Node {
	return Node{
		ID: "copytrade_lifetime",
		Text: "*🔥 TNETC Copytrade Plan - FREE! 🔥*\n\n" +
			"Our Copytrade Plan is perfect for those who want to earn from trading without having to trade themselves.\n\n" +
			"*What's Included:*\n" +
			"✅ Copy trade us on Puprime - we handle everything\n" +
			"✅ 1-on-1 account setup support\n" +
			"✅ Weekly performance reports\n" +
			"✅ Perfect for beginners - no trading knowledge needed\n\n" +
			"*Limited Time Offer:*\n" +
			"• Regular Price: $500 (lifetime access)\n" +
			"• Current Promotion: FREE!\n\n" +
			"To get started with our Copytrade Plan, contact our support team using the button below.",
		Buttons: [][]gateway.Button{
			{contactSupport()},
			{{Label: "✅ I've Made Payment", Data: "payment_made_copytrade"}},
			{backToPlans()},
		},
	}
}

func premiumVIPEANode() Node {
	return Node{
		ID: "premium_vip_ea",
		Text: "*💎 Premium VIP Signal + EA Trading Bot 💎*\n\n" +
			"Our most comprehensive package combining premium VIP signals and our high-performance EA trading bot.\n\n" +
			"*What's Included:*\n" +
			"✅ Expert 1-on-1 signal guidance\n" +
			"✅ High-performance EA trading bot (80% win rate)\n" +
			"✅ VIP copy trading with higher returns\n" +
			"✅ 24/7 VIP support\n" +
			"✅ Private VIP-only Telegram group\n" +
			"✅ Advanced entry/exit strategies\n" +
			"✅ Priority notification for market-moving events\n" +
			"✅ Monthly strategy sessions\n" +
			"✅ Regular EA updates and optimization\n\n" +
			"*Premium Package Pricing:*\n" +
			"• Monthly: $400/month\n" +
			"• Quarterly: $1000 (Save 16%)\n" +
			"• Annual: $3000 (Save 37%)\n\n" +
			"To get started with this premium package, contact our support team.",
		Buttons: [][]gateway.Button{
			{contactSupport()},
			{{Label: "✅ I've Made Payment", Data: "payment_made_premium_vip_ea"}},
			{backToPlans()},
		},
	}
}

// planDetailsNode renders the shared plan-details layout: title, description,
// per-family inclusions, and the price line.
func planDetailsNode(id, title, description, family, price string) Node {
	text := "*" + title + "*\n\n" + description + "\n\n"

	switch family {
	case ServiceStandard:
		text += "*What's Included:*\n" +
			"✅ 1-3 daily signals with full analysis\n" +
			"✅ Multi-timeframe strategy\n" +
			"✅ Expert live trading sessions\n" +
			"✅ Copy trade on Puprime\n" +
			"✅ Basic training documentation\n\n"
	case ServiceVIP:
		text += "*What's Included:*\n" +
			"✅ ALL Standard Plan benefits\n" +
			"✅ 1-on-1 signal execution guidance\n" +
			"✅ VIP copy trading (higher returns)\n" +
			"✅ Advanced training documentation\n" +
			"✅ 24/7 VIP support\n" +
			"✅ Exclusive VIP trader group\n\n"
	case ServiceCopytrade:
		text += "*What's Included:*\n" +
			"✅ Copy trade us on Puprime\n" +
			"✅ 1-on-1 account setup support\n" +
			"✅ Weekly performance reports\n" +
			"✅ Perfect for beginners - no trading knowledge needed\n\n"
	}

	text += "*Price: " + price + "*\n\n" +
		"To get started with this plan, contact our support team."

	return Node{
		ID:   id,
		Text: text,
		Buttons: [][]gateway.Button{
			{contactSupport()},
			{{Label: "Explore my self", URL: channelURL}},
			{backToPlans()},
		},
	}
}
