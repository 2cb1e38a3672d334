package goalstore

import (
	"fmt"
	"net/url"
)

// ShareText is the message offered when sharing a composed goal.
func ShareText(req Request) string {
	return fmt.Sprintf("私の新しい目標: %s\n\nカテゴリー: %s\n達成期限: %s\n\n#Taigen #目標達成",
		req.Title(), req.Category(), req.Deadline().Format(DateLayout))
}

type ShareLink struct {
	Network string
	Label   string
	URL     string
}

// ShareLinks builds the social intent links for a request, pointing back at
// appURL.
func ShareLinks(req Request, appURL string) []ShareLink {
	text := ShareText(req)

	twitter := url.Values{"text": {text}, "url": {appURL}}
	facebook := url.Values{"u": {appURL}, "quote": {text}}
	linkedin := url.Values{"url": {appURL}, "summary": {text}}

	return []ShareLink{
		{Network: "twitter", Label: "X (Twitter)", URL: "https://twitter.com/intent/tweet?" + twitter.Encode()},
		{Network: "facebook", Label: "Facebook", URL: "https://www.facebook.com/sharer/sharer.php?" + facebook.Encode()},
		{Network: "linkedin", Label: "LinkedIn", URL: "https://www.linkedin.com/sharing/share-offsite/?" + linkedin.Encode()},
	}
}
