package activity

import (
	"strings"
)

// descriptionTemplates render one sentence per activity kind. {actor} and
// {resource} are interpolated; login and logout ignore the resource entirely.
// Adding a kind is a data change here, not a new branch.
var descriptionTemplates = map[Type]string{
	TypeLogin:    "{actor} logged into the system",
	TypeLogout:   "{actor} logged out from the system",
	TypeVerify:   "{actor} verified {resource}",
	TypeReject:   "{actor} rejected {resource}",
	TypeUpload:   "{actor} uploaded {resource}",
	TypeDownload: "{actor} downloaded {resource}",
	TypeView:     "{actor} viewed {resource}",
	TypeCreate:   "{actor} created new {resource}",
	TypeUpdate:   "{actor} updated {resource}",
	TypeDelete:   "{actor} deleted {resource}",
}

// fallbackTemplate covers kinds without a template of their own.
const fallbackTemplate = "{actor} performed action on {resource}"

// Describe renders the human-readable sentence for a record. It is a pure
// function of (actor name, activity kind, path).
func Describe(actorName string, activity Type, path string) string {
	tpl, ok := descriptionTemplates[activity]
	if !ok {
		tpl = fallbackTemplate
	}
	r := strings.NewReplacer(
		"{actor}", actorName,
		"{resource}", ResourceLabel(path),
	)
	return r.Replace(tpl)
}

// ResourceLabel derives a display label from the path: the last segment, or
// the one before it when the last is a numeric identifier, falling back to
// the literal "resource". Separators become spaces, the label is singularized
// and the first letter capitalized, so /orders/42 labels as "Order".
func ResourceLabel(path string) string {
	var segments []string
	for seg := range strings.SplitSeq(path, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}

	segment := "resource"
	switch {
	case len(segments) == 0:
	case isNumeric(segments[len(segments)-1]):
		if len(segments) > 1 {
			segment = segments[len(segments)-2]
		}
	default:
		segment = segments[len(segments)-1]
	}

	label := strings.NewReplacer("-", " ", "_", " ").Replace(singular(segment))
	return capitalize(label)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// singular undoes the plural route-segment convention (/orders, /packages,
// /activities). Only the common English forms are handled.
func singular(s string) string {
	switch {
	case strings.HasSuffix(s, "ies") && len(s) > 3:
		return s[:len(s)-3] + "y"
	case strings.HasSuffix(s, "ses") || strings.HasSuffix(s, "xes") ||
		strings.HasSuffix(s, "ches") || strings.HasSuffix(s, "shes"):
		return s[:len(s)-2]
	case strings.HasSuffix(s, "s") && !strings.HasSuffix(s, "ss") && len(s) > 1:
		return s[:len(s)-1]
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
