package signup

import (
	"fmt"
	"html"
	"strings"

	"github.com/akeren/sunday-signup/internal/models"
	"github.com/akeren/sunday-signup/internal/notify"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	vipConfirmationMessage    = "You're all set for Sunday AND you're now part of the VIP network! Check your email for details."
	sundayConfirmationMessage = "You're all set for Sunday! This confirmation has been sent to your email."
	joinVIPLaterNote          = "Want to join VIP later? Use the link in your confirmation email."
	vipStatusActive           = "Active"

	// SubmissionFailedMessage is shown when the signup could not be forwarded.
	SubmissionFailedMessage = "Oops! Something went wrong. Please try again or contact us directly."
)

var titleCaser = cases.Title(language.English)

// BuildConfirmation renders the confirmation shown after a successful signup.
func BuildConfirmation(s *models.Signup, methods []PaymentMethod) *Confirmation {
	payment := paymentTitle(methods, s.PaymentMethod)

	c := &Confirmation{
		Reference: s.Reference,
		VIP:       s.VIP,
		Amount:    FormatAmount(s.AmountCents),
	}

	if s.VIP {
		c.Message = vipConfirmationMessage
		c.Details = []ConfirmationDetail{
			{Label: "Name", Value: s.Names},
			{Label: "Sunday Time", Value: s.TimeSlots},
			{Label: "Payment", Value: payment},
			{Label: "VIP Status", Value: vipStatusActive},
			{Label: "Home Court", Value: s.HomeCourt},
			{Label: "Skill Level", Value: s.SkillLevel},
		}
	} else {
		c.Message = sundayConfirmationMessage
		c.Details = []ConfirmationDetail{
			{Label: "Name", Value: s.Names},
			{Label: "Time", Value: s.TimeSlots},
			{Label: "Payment", Value: payment},
		}
		c.Note = joinVIPLaterNote
	}

	if s.GameDate != "" {
		c.Details = append(c.Details, ConfirmationDetail{Label: "Date", Value: s.GameDate})
	}
	if s.AmountCents > 0 {
		c.Details = append(c.Details, ConfirmationDetail{Label: "Amount", Value: c.Amount})
	}

	return c
}

// greetingName title-cases the first listed name, "jane & sam" -> "Jane".
func greetingName(names string) string {
	first := names
	for _, sep := range []string{"&", ",", " and ", "/"} {
		if i := strings.Index(first, sep); i > 0 {
			first = first[:i]
		}
	}
	return titleCaser.String(strings.TrimSpace(first))
}

// ConfirmationEmail builds the message mailed to the participant.
func ConfirmationEmail(s *models.Signup, c *Confirmation) notify.EmailMessage {
	subject := "You're in for Sunday"
	if s.VIP {
		subject = "You're in for Sunday + VIP"
	}

	var text, markup strings.Builder
	fmt.Fprintf(&text, "Hi %s,\n\n%s\n\n", greetingName(s.Names), c.Message)
	fmt.Fprintf(&markup, "<p>Hi %s,</p><p>%s</p><ul>", html.EscapeString(greetingName(s.Names)), html.EscapeString(c.Message))
	for _, d := range c.Details {
		fmt.Fprintf(&text, "%s: %s\n", d.Label, d.Value)
		fmt.Fprintf(&markup, "<li><strong>%s:</strong> %s</li>", html.EscapeString(d.Label), html.EscapeString(d.Value))
	}
	markup.WriteString("</ul>")
	if c.Note != "" {
		fmt.Fprintf(&text, "\n%s\n", c.Note)
		fmt.Fprintf(&markup, "<p>%s</p>", html.EscapeString(c.Note))
	}
	fmt.Fprintf(&text, "\nReference: %s\n", s.Reference)
	fmt.Fprintf(&markup, "<p>Reference: %s</p>", html.EscapeString(s.Reference))

	return notify.EmailMessage{
		To:      s.Email,
		ToName:  s.Names,
		Subject: subject,
		Body:    text.String(),
		HTML:    markup.String(),
	}
}
