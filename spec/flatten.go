package spec

import (
	"github.com/restitch/restitch/internal/maputil"
)

// FlattenPaths converts a paths map into an independent, flat endpoint list.
//
// Path item references are resolved first: a local
// "#/components/pathItems/<Name>" pointer is looked up in components
// (skipping the whole entry when the name is absent, the pointer has more
// than one segment, or the reference's authority does not match self), and
// any other reference is delegated to resolver (skipping the entry when
// resolver is nil or returns nothing). Fields set directly on the referencing
// path item shallow-override the resolved item's same-named fields.
//
// Every emitted endpoint's path is the paths map key, regardless of any
// placeholder the operation carried. Path-level summary, description, and
// servers cascade to operations that lack their own; parameters merge by
// (name, location) identity with the operation's entry winning.
//
// Output order is deterministic: sorted path keys, standard method slots in
// canonical order, then custom verbs sorted.
func FlattenPaths(paths Paths, components *Components, resolver ExternalResolver, self string) []*Endpoint {
	var endpoints []*Endpoint
	for _, key := range maputil.SortedKeys(paths) {
		item := resolvePathItem(paths[key], components, resolver, self, key)
		if item == nil {
			continue
		}
		endpoints = append(endpoints, flattenItem(key, item)...)
	}
	return endpoints
}

// FlattenWebhooks applies the same flattening to a webhooks map, using each
// webhook key as the synthetic path.
func FlattenWebhooks(webhooks Paths, components *Components, resolver ExternalResolver, self string) []*Endpoint {
	return FlattenPaths(webhooks, components, resolver, self)
}

// FlattenAll concatenates the flattened paths and webhooks of a document.
func FlattenAll(doc *Document, resolver ExternalResolver) []*Endpoint {
	if doc == nil {
		return nil
	}
	endpoints := FlattenPaths(doc.Paths, doc.Components, resolver, doc.Self)
	endpoints = append(endpoints, FlattenWebhooks(doc.Webhooks, doc.Components, resolver, doc.Self)...)
	return endpoints
}

// resolvePathItem resolves a possibly-referencing path item. The returned
// item is a new value when an override merge happened; nil means the entry
// yields no endpoints.
func resolvePathItem(item *PathItem, components *Components, resolver ExternalResolver, self, key string) *PathItem {
	if item == nil {
		return nil
	}
	if item.Ref == "" {
		return item
	}

	base, frag, hasFrag := splitRefFragment(item.Ref)

	var resolved *PathItem
	if hasFrag && frag != "" {
		// Local component pointer. A non-empty authority must match the
		// document's self identity.
		if base != "" && base != self {
			return nil
		}
		name, ok := localPathItemName(frag)
		if !ok {
			return nil
		}
		resolved = components.PathItem(name)
	} else if resolver != nil {
		resolved = resolver(base, key)
	}
	if resolved == nil {
		return nil
	}

	return overridePathItem(resolved, item)
}

// overridePathItem applies the referencing item's directly-set fields over
// the resolved target. This is a shallow, field-level override, not a deep
// merge.
func overridePathItem(resolved, referencing *PathItem) *PathItem {
	merged := *resolved
	merged.Ref = ""

	if referencing.Summary != "" {
		merged.Summary = referencing.Summary
	}
	if referencing.Description != "" {
		merged.Description = referencing.Description
	}
	for _, m := range StandardMethods {
		if op := referencing.Slot(m); op != nil {
			merged.SetSlot(m, op)
		}
	}
	if len(referencing.AdditionalOperations) > 0 {
		merged.AdditionalOperations = referencing.AdditionalOperations
	}
	if len(referencing.Parameters) > 0 {
		merged.Parameters = referencing.Parameters
	}
	if len(referencing.Servers) > 0 {
		merged.Servers = referencing.Servers
	}
	if len(referencing.Extra) > 0 {
		merged.Extra = referencing.Extra
	}
	return &merged
}

// flattenItem emits one endpoint per present operation slot.
func flattenItem(path string, item *PathItem) []*Endpoint {
	var endpoints []*Endpoint
	for _, m := range StandardMethods {
		if op := item.Slot(m); op != nil {
			endpoints = append(endpoints, newEndpoint(path, m, "", op, item))
		}
	}
	for _, verb := range maputil.SortedKeys(item.AdditionalOperations) {
		op := item.AdditionalOperations[verb]
		if op == nil {
			continue
		}
		endpoints = append(endpoints, newEndpoint(path, MethodCustom, verb, op, item))
	}
	return endpoints
}

// newEndpoint materializes one flat endpoint from its slot, reconciling
// shared path-level metadata with the operation's own.
func newEndpoint(path string, method Method, customVerb string, op *Operation, item *PathItem) *Endpoint {
	ep := &Endpoint{
		Path:                  path,
		Method:                method,
		CustomVerb:            customVerb,
		OperationID:           op.OperationID,
		OperationIDDerived:    op.OperationIDDerived,
		Summary:               op.Summary,
		Description:           op.Description,
		Tags:                  op.Tags,
		ExternalDocs:          op.ExternalDocs,
		Deprecated:            op.Deprecated,
		RequestBody:           op.RequestBody,
		Responses:             op.Responses,
		Callbacks:             op.Callbacks,
		Servers:               op.Servers,
		Security:              op.Security,
		SecurityExplicitEmpty: op.SecurityExplicitEmpty,
		Extra:                 op.Extra,
	}

	if ep.Summary == "" {
		ep.Summary = item.Summary
	}
	if ep.Description == "" {
		ep.Description = item.Description
	}
	if len(ep.Servers) == 0 {
		ep.Servers = item.Servers
	}
	ep.Parameters = mergeParameters(item.Parameters, op.Parameters)

	return ep
}

// mergeParameters merges path-level and operation parameters by
// (name, location) identity. An operation parameter entirely replaces a
// path-level one sharing its key; path-only parameters pass through
// unchanged, keeping their original order ahead of operation-only ones.
func mergeParameters(pathParams, opParams []*Parameter) []*Parameter {
	if len(pathParams) == 0 {
		return opParams
	}

	type paramKey struct {
		name string
		in   Location
	}
	opByKey := make(map[paramKey]*Parameter, len(opParams))
	for _, p := range opParams {
		opByKey[paramKey{p.Name, p.In}] = p
	}

	merged := make([]*Parameter, 0, len(pathParams)+len(opParams))
	seen := make(map[paramKey]bool, len(pathParams))
	for _, p := range pathParams {
		key := paramKey{p.Name, p.In}
		seen[key] = true
		if override, ok := opByKey[key]; ok {
			merged = append(merged, override)
		} else {
			merged = append(merged, p)
		}
	}
	for _, p := range opParams {
		if !seen[paramKey{p.Name, p.In}] {
			merged = append(merged, p)
		}
	}
	return merged
}
