package funnel

import (
	"fmt"
	"strings"

	"github.com/hiehoo/tnetbot/internal/gateway"
)

// purchaseInstructionsNode renders payment instructions for a plan, with a
// per-user support code.
func purchaseInstructionsNode(planCode string, userID int64) Node {
	name := NameFor(planCode)
	price := PriceFor(planCode)
	if price == UnknownPrice {
		price = "Custom Price"
	}

	text := fmt.Sprintf(
		"*How to Complete Your %s Purchase*\n\n"+
			"*Price: %s*\n\n"+
			"1. Contact our support team with code: `EA_%s_%d`\n"+
			"2. Our team will provide payment instructions\n"+
			"3. After payment, you'll receive your EA setup within 24 hours\n\n"+
			"Questions? Our support team is available 24/7.",
		name, price, strings.ToUpper(planCode), userID,
	)

	return Node{
		ID:   "purchase_" + planCode,
		Text: text,
		Buttons: [][]gateway.Button{
			{contactSupport()},
			{{Label: "✅ I've Made Payment", Data: "payment_made_" + planCode}},
			{{Label: "🔙 Back to Plans", Data: "ea_pricing"}},
		},
	}
}

// thankYouNode confirms a received payment and points at onboarding.
func thankYouNode(planCode string) Node {
	text := fmt.Sprintf(
		"*Thank You for Your %s Purchase!*\n\n"+
			"Your payment confirmation has been received and our team has been notified.\n\n"+
			"*Next Steps:*\n"+
			"1. Our support team will contact you within 24 hours\n"+
			"2. They will guide you through the setup process\n"+
			"3. You'll receive access to your EA and all included benefits\n\n"+
			"Need immediate assistance? Contact our support team directly.",
		NameFor(planCode),
	)

	return Node{
		ID:   "payment_made_" + planCode,
		Text: text,
		Buttons: [][]gateway.Button{
			{contactSupport()},
			{{Label: "📚 Setup Guide", Data: "setup_guide_" + planCode}},
			{{Label: "🏠 Main Menu", Data: "show_all_services"}},
		},
	}
}

// setupGuideNode returns the onboarding guide: copytrade gets its own flow,
// every other plan gets the EA guide.
func setupGuideNode(planCode string) Node {
	var text string
	if planCode == "copytrade" {
		text = "*TNETC Copytrade Setup Guide*\n\n" +
			"*Step 1: Create Puprime Account*\n" +
			"• Register at Puprime using our referral link\n" +
			"• Complete verification process\n" +
			"• Fund your account (minimum $500 recommended)\n\n" +
			"*Step 2: Share Account Details*\n" +
			"• Provide your Puprime account number to our support team\n" +
			"• Share your read-only password for monitoring\n" +
			"• Set account leverage (1:100 recommended)\n\n" +
			"*Step 3: Confirm Settings*\n" +
			"• Confirm risk parameters with our team\n" +
			"• Set account leverage (1:100 recommended)\n\n" +
			"*Step 4: Start Earning*\n" +
			"• Our team will handle all trading\n" +
			"• You'll receive weekly performance reports\n" +
			"• Monitor your account anytime through Puprime\n\n" +
			"Need help? Our support team is available 24/7."
	} else {
		text = "*TNETC EA Setup Guide*\n\n" +
			"*Step 1: Prepare Your Trading Account*\n" +
			"• Ensure you have MT4/MT5 installed\n" +
			"• Create/use a funded account (minimum $1000 recommended)\n" +
			"• Set account leverage (1:100 or higher recommended)\n\n" +
			"*Step 2: Install the EA*\n" +
			"• Our team will provide the EA file\n" +
			"• Follow our installation instructions\n" +
			"• Place EA on correct currency pairs\n\n" +
			"*Step 3: Configure Settings*\n" +
			"• Set risk per trade (1% recommended)\n" +
			"• Configure trading sessions\n" +
			"• Set maximum open trades\n\n" +
			"*Step 4: Monitoring & Support*\n" +
			"• Regular performance reviews\n" +
			"• 24/7 technical support\n" +
			"• Strategy updates as market conditions change\n\n" +
			"Need help? Our support team is available 24/7."
	}

	return Node{
		ID:   "setup_guide_" + planCode,
		Text: text,
		Buttons: [][]gateway.Button{
			{contactSupport()},
			{{Label: "🏠 Main Menu", Data: "show_all_services"}},
		},
	}
}

// questionsNode answers the "I have questions" follow-up response.
func questionsNode() Node {
	return Node{
		ID: "followup_questions",
		Text: "*We're Here to Help!*\n\n" +
			"Our support team is ready to answer any questions you might have about our services.\n\n" +
			"Common questions:\n" +
			"• How does the EA trading bot work?\n" +
			"• What's the difference between Standard and VIP plans?\n" +
			"• How do I set up copy trading?\n" +
			"• What's the refund policy?\n\n" +
			"Click the button below to chat with our support team directly.",
		Buttons: [][]gateway.Button{
			{contactSupport()},
			{{Label: "🏠 Main Menu", Data: "show_all_services"}},
		},
	}
}

// notInterestedNode acknowledges a "not interested" follow-up response.
func notInterestedNode() Node {
	return Node{
		ID: "followup_not_interested",
		Text: "Thank you for letting us know. We appreciate your time!\n\n" +
			"If you change your mind or have questions in the future, feel free to reach out to us anytime.\n\n" +
			"Wishing you success in your trading journey! 🚀",
	}
}
