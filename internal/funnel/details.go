package funnel

import "github.com/hiehoo/tnetbot/internal/gateway"

func eaResultsNode() Node {
	return Node{
		ID: "ea_results",
		Text: "📊 *TNETC TRADING PERFORMANCE RESULTS* 📊\n\n" +
			"*Monthly Performance (Last 3 Months):*\n" +
			"• April: +25.3%\n" +
			"• May: +52.3%\n" +
			"• June: +40.36%\n\n" +
			"*Performance by Market:*\n" +
			"• Forex: +40.36% ✅\n" +
			"• Gold: +19.41% ✅\n\n" +
			"*Key Performance Metrics:*\n" +
			"• Win Rate: 80% for EA, 94% for Signals\n" +
			"• Profit Factor: 3.2\n" +
			"• Average Win/Loss Ratio: 3.5\n" +
			"• Maximum Drawdown: 8.3%\n\n" +
			"Get these results with our Premium VIP Signal + EA Trading Bot package or take advantage of our FREE x10 Challenge or Copytrade offers!",
		Buttons: [][]gateway.Button{
			{{Label: "💎 Premium VIP Signal + EA Bundle", Data: "premium_vip_ea"}},
			{{Label: "🔙 Back", Data: "back_to_ea_welcome"}},
		},
	}
}

func eaStatsNode() Node {
	return Node{
		ID: "ea_stats",
		Text: "📊 *TNETC EA DETAILED PERFORMANCE* 📊\n\n" +
			"*Monthly Performance (Last 6 Months):*\n" +
			"• January: +32.7%\n" +
			"• February: +28.4%\n" +
			"• March: +18.1%\n" +
			"• April: +25.3%\n" +
			"• May: +52.3%\n" +
			"• June: +40.36%\n\n" +
			"*Performance by Currency Pair:*\n" +
			"• EUR/USD: +29.8%\n" +
			"• GBP/USD: +31.2%\n" +
			"• USD/JPY: +26.7%\n" +
			"• XAU/USD: +19.41%\n\n" +
			"*Key Performance Metrics:*\n" +
			"• Win Rate: 80%\n" +
			"• Profit Factor: 3.2\n" +
			"• Average Win/Loss Ratio: 3.5\n" +
			"• Maximum Drawdown: 8.3%\n" +
			"• Recovery Factor: 4.8\n\n" +
			"Our EA has been consistently profitable across different market conditions. These results are verified and can be demonstrated in a live account.",
		Buttons: [][]gateway.Button{
			{{Label: "🤖 How Our EA Works", Data: "ea_how_works"}},
			{{Label: "💰 EA Pricing Plans", Data: "ea_pricing"}},
			{{Label: "🔙 Back", Data: "back_to_ea_funnel"}},
		},
	}
}

func eaHowWorksNode() Node {
	return Node{
		ID: "ea_how_works",
		Text: "🤖 *HOW OUR EA TRADING BOT WORKS* 🤖\n\n" +
			"*Trading Strategy:*\n" +
			"Our EA uses a proprietary multi-timeframe analysis algorithm that combines:\n" +
			"• Advanced price action patterns\n" +
			"• Key support/resistance levels\n" +
			"• Market structure analysis\n" +
			"• Volatility-based entry/exit timing\n\n" +
			"*Risk Management:*\n" +
			"• Fixed 1% risk per trade\n" +
			"• Dynamic stop-loss placement\n" +
			"• Trailing take-profit mechanism\n" +
			"• Anti-drawdown protection\n\n" +
			"*Technical Specifications:*\n" +
			"• Compatible with MT4/MT5\n" +
			"• Works with any broker\n" +
			"• Trades FX majors and Gold\n" +
			"• Fully automated - set and forget\n" +
			"• 24/5 operation during market hours\n\n" +
			"*Setup Process:*\n" +
			"1. We help you set up the EA on your account\n" +
			"2. Configure risk parameters to your preference\n" +
			"3. Regular updates and optimization\n" +
			"4. Ongoing technical support\n\n" +
			"Our EA is designed to be hands-off while maintaining professional risk management standards.",
		Buttons: [][]gateway.Button{
			{{Label: "📊 View Performance Stats", Data: "ea_stats"}},
			{{Label: "💰 EA Pricing Plans", Data: "ea_pricing"}},
			{{Label: "🔙 Back", Data: "back_to_ea_funnel"}},
		},
	}
}

func eaPricingNode() Node {
	return Node{
		ID: "ea_pricing",
		Text: "📈 *TNETC EA Pricing Plans*\n\n" +
			"Choose your preferred plan to start automated trading with our 80% win-rate system:\n\n" +
			"All plans include:\n" +
			"✅ Full EA setup assistance\n" +
			"✅ 24/7 technical support\n" +
			"✅ Performance monitoring\n" +
			"✅ Regular updates\n\n" +
			"*Monthly Plan:* Perfect for trying our system\n" +
			"*Quarterly Plan:* Our most popular option\n" +
			"*Annual Plan:* Best value for serious traders\n" +
			"*Copytrade Option:* We trade for you - no technical setup needed\n\n" +
			"Select a plan below to get started:",
		Buttons: [][]gateway.Button{
			{{Label: "🔄 Monthly Plan - $200", Data: "purchase_monthly"}},
			{{Label: "⭐ Quarterly Plan - $500 (Save 15%)", Data: "purchase_quarterly"}},
			{{Label: "🔥 Annual Plan - $1500 (Save 30%)", Data: "purchase_annual"}},
			{{Label: "💰 Copytrade Option - $500 Lifetime", Data: "purchase_copytrade"}},
			{{Label: "❓ Questions? Chat with Support", URL: supportURL}},
			{{Label: "🔙 Back to EA Info", Data: "back_to_ea_funnel"}},
		},
	}
}

func signalResultsNode() Node {
	return Node{
		ID: "signal_results",
		Text: "📊 *TNETC SIGNAL PERFORMANCE RESULTS* 📊\n\n" +
			"*Last Month Performance:*\n" +
			"• Forex: +40.36% ✅\n" +
			"• Gold: +19.41% ✅\n" +
			"• Combined Win Rate: 94% 🚀\n\n" +
			"*Signal Frequency:*\n" +
			"• 1-3 signals per day\n" +
			"• Each with detailed entry, TP, and SL levels\n" +
			"• Multi-timeframe analysis included\n\n" +
			"*Risk Management:*\n" +
			"• Recommended 1-2% risk per trade\n" +
			"• Average risk-reward ratio: 1:3\n" +
			"• Detailed trade management instructions\n\n" +
			"Get our premium signals combined with EA trading in our Premium VIP Signal + EA Trading Bot package!",
		Buttons: [][]gateway.Button{
			{{Label: "💎 Premium VIP Signal + EA Bundle", Data: "premium_vip_ea"}},
			{{Label: "🔙 Back", Data: "back_to_signal_welcome"}},
		},
	}
}

func vipBenefitsNode() Node {
	return Node{
		ID: "vip_benefits",
		Text: "💎 *PREMIUM VIP SIGNAL + EA TRADING BOT BENEFITS* 💎\n\n" +
			"*Exclusive Access:*\n" +
			"• Private VIP-only Telegram group\n" +
			"• Direct access to professional traders\n" +
			"• Priority support 24/7\n\n" +
			"*Enhanced Trading:*\n" +
			"• Expert 1-on-1 signal guidance\n" +
			"• High-performance EA trading bot (80% win rate)\n" +
			"• VIP-only signals with higher win rates\n" +
			"• Advanced entry/exit strategies\n" +
			"• Priority notification for market-moving events\n\n" +
			"*Education & Growth:*\n" +
			"• Advanced trading documentation\n" +
			"• Monthly strategy sessions\n" +
			"• Performance reviews and optimization\n\n" +
			"*Premium Package Pricing:*\n" +
			"• Monthly: $400/month\n" +
			"• Quarterly: $1000 (Save 16%)\n" +
			"• Annual: $3000 (Save 37%)\n\n" +
			"Join our Premium VIP + EA package and elevate your trading to the next level!",
		Buttons: [][]gateway.Button{
			{{Label: "💎 Get Premium VIP + EA Bundle", Data: "premium_vip_ea"}},
			{{Label: "🔙 Back", Data: "back_to_vip_welcome"}},
		},
	}
}
