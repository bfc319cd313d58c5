package merger

import "github.com/restitch/restitch/spec"

// MergeEndpoints reconciles two endpoint sets by operation id. Endpoints in
// both sets take the fresh version wholesale; endpoints only in fresh are
// added; endpoints only in existing are dropped. Output order is the
// surviving existing order followed by new endpoints in fresh order. Inputs
// are not mutated.
func MergeEndpoints(existing, fresh []*spec.Endpoint) []*spec.Endpoint {
	byID := make(map[string]*spec.Endpoint, len(fresh))
	for _, ep := range fresh {
		if ep != nil && ep.OperationID != "" {
			byID[ep.OperationID] = ep
		}
	}

	out := make([]*spec.Endpoint, 0, len(fresh))
	taken := make(map[string]bool, len(fresh))
	for _, ep := range existing {
		if ep == nil {
			continue
		}
		if match, ok := byID[ep.OperationID]; ok && !taken[ep.OperationID] {
			out = append(out, match)
			taken[ep.OperationID] = true
		}
	}
	for _, ep := range fresh {
		if ep == nil || ep.OperationID == "" || taken[ep.OperationID] {
			continue
		}
		out = append(out, ep)
		taken[ep.OperationID] = true
	}
	return out
}
