package match

import (
	"strings"
	"time"
)

// Match is a confirmed mutual like. Profiles holds the two account IDs in
// creation order (the account whose like completed the pair first); the
// order carries no meaning.
type Match struct {
	ID        string
	Profiles  [2]string
	CreatedAt time.Time
}

func (m Match) Has(accountID string) bool {
	return accountID != "" && (m.Profiles[0] == accountID || m.Profiles[1] == accountID)
}

// Other returns the participant that is not accountID.
func (m Match) Other(accountID string) (string, bool) {
	switch accountID {
	case m.Profiles[0]:
		return m.Profiles[1], true
	case m.Profiles[1]:
		return m.Profiles[0], true
	default:
		return "", false
	}
}

func (m Match) PairKey() string {
	return PairKey(m.Profiles[0], m.Profiles[1])
}

// PairKey is the order-independent key of an unordered pair of accounts.
// At most one live match exists per key.
func PairKey(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + ":" + b
}
