package funnel

import "strings"

// Interaction kinds recorded against routed selections.
const (
	KindStartCommand     = "start_command"
	KindButtonClick      = "button_click"
	KindServiceView      = "service_view"
	KindPurchaseIntent   = "purchase_intent"
	KindPaymentConfirmed = "payment_confirmation"
	KindFollowUpResponse = "followup_response"
	KindSetupGuide       = "setup_guide_request"
	KindError            = "error"
)

// Follow-up response values recorded in the followups table.
const (
	ResponseResume        = "resume_service"
	ResponseQuestions     = "has_questions"
	ResponseNotInterested = "not_interested"
	ResponsePurchased     = "user_purchased"
)

// Result is the router's verdict on one button selection: the node to send
// plus the side effects the caller must apply.
type Result struct {
	Node Node

	// Kind is the interaction kind to record for this selection.
	Kind string

	// ViewService, when set, bumps the user's view counter for that service.
	ViewService string

	// FollowUpService, when set, schedules a follow-up for that service
	// (skipped for purchased users at scheduling time).
	FollowUpService string

	// ConfirmPlan, when set, records a purchase of that plan and cancels
	// the user's pending follow-ups.
	ConfirmPlan string

	// Response and ResponseService record a reply to a sent follow-up.
	// ResponseService is empty for the service-less response buttons.
	Response        string
	ResponseService string

	// DeleteOriginal asks the caller to remove the message the button was
	// on before sending the new node. Best effort; a stale message is fine.
	DeleteOriginal bool

	// Unknown marks selections the router did not recognize.
	Unknown bool
}

// Route resolves a button selection to a node and its side effects. It is
// stateless: every selection resolves the same way regardless of how the
// user got there, so stale keyboards keep working.
func Route(selection string, userID int64) Result {
	switch selection {
	case "special_challenge":
		return Result{
			Node:            specialChallengeNode(),
			Kind:            KindButtonClick,
			ViewService:     ServiceChallenge,
			FollowUpService: ServiceChallenge,
		}

	case "copytrade_lifetime":
		return Result{
			Node:            copytradeLifetimeNode(),
			Kind:            KindButtonClick,
			ViewService:     ServiceCopytrade,
			FollowUpService: ServiceCopytrade,
		}

	case "premium_vip_ea":
		return Result{
			Node:            premiumVIPEANode(),
			Kind:            KindButtonClick,
			ViewService:     ServiceVIPEA,
			FollowUpService: ServiceVIPEA,
		}

	case "standard_trial":
		return Result{
			Node: planDetailsNode("standard_trial", "⭐️ Standard Plan - 1 Week FREE Trial",
				"Try our Standard Plan free for one week!", ServiceStandard, "7 DAY FREE TRIAL"),
			Kind:            KindButtonClick,
			ViewService:     ServiceStandard,
			FollowUpService: ServiceStandard,
		}

	case "standard_monthly":
		return Result{
			Node: planDetailsNode("standard_monthly", "⭐️ Standard Plan - $66/month",
				"Monthly subscription to our Standard Plan.", ServiceStandard, "$66/month"),
			Kind:            KindButtonClick,
			ViewService:     ServiceStandard,
			FollowUpService: ServiceStandard,
		}

	case "standard_lifetime":
		return Result{
			Node: planDetailsNode("standard_lifetime", "⭐️ Standard Plan - $300/lifetime",
				"Lifetime access to our Standard Plan.", ServiceStandard, "$300 one-time"),
			Kind:            KindButtonClick,
			ViewService:     ServiceStandard,
			FollowUpService: ServiceStandard,
		}

	case "vip_monthly":
		return Result{
			Node: planDetailsNode("vip_monthly", "⭐️ VIP Plan - $300/month",
				"Monthly subscription to our premium VIP Plan.", ServiceVIP, "$300/month"),
			Kind:            KindButtonClick,
			ViewService:     ServiceVIP,
			FollowUpService: ServiceVIP,
		}

	case "vip_lifetime":
		return Result{
			Node: planDetailsNode("vip_lifetime", "⭐️ VIP Plan - $2000/lifetime",
				"Lifetime access to our premium VIP Plan.", ServiceVIP, "$2000 one-time"),
			Kind:            KindButtonClick,
			ViewService:     ServiceVIP,
			FollowUpService: ServiceVIP,
		}

	case "ea_results":
		return Result{Node: eaResultsNode(), Kind: KindButtonClick, ViewService: ServiceEA}
	case "ea_stats":
		return Result{Node: eaStatsNode(), Kind: KindButtonClick, ViewService: ServiceEA}
	case "ea_how_works":
		return Result{Node: eaHowWorksNode(), Kind: KindButtonClick, ViewService: ServiceEA}
	case "ea_pricing":
		return Result{Node: eaPricingNode(), Kind: KindButtonClick, ViewService: ServiceEA}
	case "signal_results":
		return Result{Node: signalResultsNode(), Kind: KindButtonClick, ViewService: ServiceSignal}
	case "vip_benefits":
		return Result{Node: vipBenefitsNode(), Kind: KindButtonClick, ViewService: ServiceVIP}

	case "show_all_services":
		return Result{Node: WelcomeFor(""), Kind: KindButtonClick, DeleteOriginal: true}
	case "back_to_ea_welcome", "back_to_ea_funnel":
		return Result{Node: WelcomeFor(CampaignEA), Kind: KindButtonClick, DeleteOriginal: true}
	case "back_to_signal_welcome":
		return Result{Node: WelcomeFor(CampaignSignal), Kind: KindButtonClick, DeleteOriginal: true}
	case "back_to_vip_welcome":
		return Result{Node: WelcomeFor(CampaignVIP), Kind: KindButtonClick, DeleteOriginal: true}

	case "followup_questions":
		return Result{Node: questionsNode(), Kind: KindFollowUpResponse, Response: ResponseQuestions}
	case "followup_not_interested":
		return Result{Node: notInterestedNode(), Kind: KindFollowUpResponse, Response: ResponseNotInterested}
	}

	switch {
	case strings.HasPrefix(selection, "purchase_"):
		plan := strings.TrimPrefix(selection, "purchase_")
		return Result{
			Node:            purchaseInstructionsNode(plan, userID),
			Kind:            KindPurchaseIntent,
			ViewService:     ServiceFor(plan),
			FollowUpService: ServiceFor(plan),
		}

	case strings.HasPrefix(selection, "payment_made_"):
		plan := strings.TrimPrefix(selection, "payment_made_")
		return Result{
			Node:        thankYouNode(plan),
			Kind:        KindPaymentConfirmed,
			ConfirmPlan: plan,
		}

	case strings.HasPrefix(selection, "setup_guide_"):
		plan := strings.TrimPrefix(selection, "setup_guide_")
		return Result{Node: setupGuideNode(plan), Kind: KindSetupGuide}

	case strings.HasPrefix(selection, "resume_"):
		service := strings.TrimPrefix(selection, "resume_")
		return Result{
			Node:            resumeNode(service),
			Kind:            KindFollowUpResponse,
			Response:        ResponseResume,
			ResponseService: service,
		}
	}

	return Result{Node: Fallback(), Kind: KindButtonClick, Unknown: true}
}

// resumeNode returns the screen a user continues on after a follow-up.
func resumeNode(service string) Node {
	switch service {
	case ServiceEA, ServiceVIPEA:
		return WelcomeFor(CampaignEA)
	case ServiceVIP:
		return WelcomeFor(CampaignVIP)
	case ServiceSignal:
		return WelcomeFor(CampaignSignal)
	case ServiceCopytrade:
		return planDetailsNode("copytrade_details", "⭐️ Copytrade Plan - $500/lifetime",
			"Lifetime access to our Copytrade Plan.", ServiceCopytrade, "$500 one-time")
	case ServiceChallenge:
		return specialChallengeNode()
	default:
		return WelcomeFor("")
	}
}
