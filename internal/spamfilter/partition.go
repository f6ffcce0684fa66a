package spamfilter

import "github.com/baseclean/baseclean/internal/assets"

// Partition splits a wallet's tokens into spam and legitimate per the enabled
// filters. Input order is preserved within each half.
func Partition(chainID int64, tokens []assets.Token, filters assets.SpamFilters, rules *Rules) (spam, legit []assets.Token) {
	for _, t := range tokens {
		if Classify(chainID, t, filters, rules).Spam {
			spam = append(spam, t)
		} else {
			legit = append(legit, t)
		}
	}
	return spam, legit
}
