package activity

import (
	"net/http"
	"strings"
)

// keywordTypes are checked against the path before the method fallback, in
// order, first match wins. A POST to /orders/5/verify is therefore a verify,
// not a create.
var keywordTypes = []struct {
	keyword  string
	activity Type
}{
	{"login", TypeLogin},
	{"logout", TypeLogout},
	{"verify", TypeVerify},
	{"reject", TypeReject},
	{"upload", TypeUpload},
	{"download", TypeDownload},
}

// methodTypes maps HTTP verbs to the generic REST activity kinds.
var methodTypes = map[string]Type{
	http.MethodGet:    TypeView,
	http.MethodHead:   TypeView,
	http.MethodPost:   TypeCreate,
	http.MethodPut:    TypeUpdate,
	http.MethodPatch:  TypeUpdate,
	http.MethodDelete: TypeDelete,
}

// Classify maps a (method, path) pair to an activity kind. It is total: any
// input resolves to a kind, worst case TypeAction.
func Classify(method, path string) Type {
	for _, kt := range keywordTypes {
		if strings.Contains(path, kt.keyword) {
			return kt.activity
		}
	}
	if t, ok := methodTypes[strings.ToUpper(method)]; ok {
		return t
	}
	return TypeAction
}

// IsMutating reports whether the method carries a payload worth capturing.
func IsMutating(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}
