package activity

import "strconv"

// Param is one bound route parameter. Order matters: the resolver walks
// parameters in the order the router bound them.
type Param struct {
	Name  string
	Value string
}

// subjectTypeByParam maps a recognized parameter name to the entity type tag
// stored on the record. The bare name "id" is deliberately absent: too many
// resources use a generic id for any guess to be safe.
//
// The client, package, and inventory entries are reserved mappings with no
// matching entry in triggerParams, so the resolver never reaches them today.
// Kept as shipped; add the names to triggerParams to activate them.
var subjectTypeByParam = map[string]string{
	"order":     "Order",
	"user":      "User",
	"role":      "Role",
	"payment":   "PaymentProof",
	"client":    "Client",
	"package":   "Package",
	"inventory": "InventoryItem",
}

// triggerParams is the set of parameter names the resolver matches on.
var triggerParams = map[string]struct{}{
	"id":      {},
	"order":   {},
	"user":    {},
	"role":    {},
	"payment": {},
}

// ResolveSubject inspects route parameters and infers the business entity the
// request concerned. The first recognized parameter with a numeric value wins
// and stops the walk. A match on a name with no type mapping (the generic
// "id") yields no subject at all: both return values stay nil rather than a
// dangling id.
func ResolveSubject(params []Param) (subjectType *string, subjectID *int64) {
	for _, p := range params {
		if _, ok := triggerParams[p.Name]; !ok {
			continue
		}
		n, err := strconv.ParseInt(p.Value, 10, 64)
		if err != nil {
			continue
		}
		typ, ok := subjectTypeByParam[p.Name]
		if !ok {
			return nil, nil
		}
		return &typ, &n
	}
	return nil, nil
}
