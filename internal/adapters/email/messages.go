package email

import (
	"fmt"
	"html"
)

// AwardCongratulation builds the Member of the Month notification for the
// selected member. Delivery is best effort, so the caller logs failures
// instead of propagating them.
func AwardCongratulation(to, name, clubName, month string) SendRequest {
	subject := fmt.Sprintf("You are %s's Member of the Month!", clubName)
	body := fmt.Sprintf(`<h2>Congratulations, %s!</h2>
<p>Your attendance in %s earned you <strong>Member of the Month</strong> at %s.</p>
<p>Keep showing up. See you on the mats!</p>`,
		html.EscapeString(name), html.EscapeString(month), html.EscapeString(clubName))
	return SendRequest{
		To:      []string{to},
		Subject: subject,
		HTML:    body,
	}
}
