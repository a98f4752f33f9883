// Package respond renders RFC 9457 problem details for router-level errors.
//
// Accept handling follows huma's negotiation.SelectQValueFast, which picks by
// q-value alone and does not rank application/problem+cbor above
// application/cbor by specificity, so the ranking is done here instead.
package respond

import (
	"strconv"
	"strings"
)

// problem representations this package can render.
const (
	reprJSON = "json"
	reprCBOR = "cbor"
)

// acceptRange is one comma-separated element of an Accept header.
type acceptRange struct {
	mediaType string
	q         float64
}

func parseAccept(header string) []acceptRange {
	var ranges []acceptRange
	for part := range strings.SplitSeq(header, ",") {
		mediaType, params, _ := strings.Cut(part, ";")
		mediaType = strings.ToLower(strings.TrimSpace(mediaType))
		if mediaType == "" {
			continue
		}
		ranges = append(ranges, acceptRange{mediaType: mediaType, q: parseQ(params)})
	}
	return ranges
}

// parseQ returns the q parameter, defaulting to 1 when absent or malformed.
func parseQ(params string) float64 {
	for param := range strings.SplitSeq(params, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "q") {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || q < 0 || q > 1 {
			return 1
		}
		return q
	}
	return 1
}

// specificity ranks how closely mediaType names the given representation:
// application/problem+<repr> > application/<repr> > application/* > */*.
// -1 means no match.
func specificity(mediaType, repr string) int {
	switch mediaType {
	case "application/problem+" + repr:
		return 3
	case "application/" + repr:
		return 2
	case "application/*":
		return 1
	case "*/*":
		return 0
	}
	return -1
}

// quality returns the q-value the client assigns to repr, taken from the most
// specific matching range, and that range's specificity.
func quality(ranges []acceptRange, repr string) (q float64, rank int) {
	rank = -1
	for _, r := range ranges {
		if s := specificity(r.mediaType, repr); s > rank {
			rank = s
			q = r.q
		}
	}
	return q, rank
}

// prefersCBOR reports whether the Accept header ranks CBOR above JSON.
// q-value decides first, specificity breaks ties, and JSON wins anything left.
func prefersCBOR(accept string) bool {
	ranges := parseAccept(accept)
	if len(ranges) == 0 {
		return false
	}
	cborQ, cborRank := quality(ranges, reprCBOR)
	if cborRank < 0 || cborQ == 0 {
		return false
	}
	jsonQ, jsonRank := quality(ranges, reprJSON)
	if jsonRank < 0 || jsonQ == 0 {
		return true
	}
	if cborQ != jsonQ {
		return cborQ > jsonQ
	}
	return cborRank > jsonRank
}
