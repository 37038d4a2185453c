package dashboard

import "StockPulse/internal/model"

// MaxArticles is how many news items the panel shows.
const MaxArticles = 6

// NoNewsText is shown when no article is available.
const NoNewsText = "No recent articles available."

// prepareArticles caps the list and fills missing fields with placeholders.
func prepareArticles(in []model.NewsArticle) []model.NewsArticle {
	if len(in) > MaxArticles {
		in = in[:MaxArticles]
	}
	out := make([]model.NewsArticle, len(in))
	for i, a := range in {
		if a.Source == "" {
			a.Source = "News"
		}
		if a.Headline == "" {
			a.Headline = "No headline provided"
		}
		if a.Summary == "" {
			a.Summary = "No summary available."
		}
		out[i] = a
	}
	return out
}
