package spec

import "reflect"

// BuildPaths is the inverse of FlattenPaths: it groups a flat endpoint list
// by path, assigning each endpoint to its method's slot and custom verbs to
// AdditionalOperations.
//
// When liftCommonPathMetadata is set, a facet (summary, description,
// parameters, servers) is promoted to the path item only if every operation
// sharing that path holds an exactly equal value for it, and is then cleared
// from each operation. This is an exact-equality lift, not a
// partial-intersection one.
func BuildPaths(endpoints []*Endpoint, liftCommonPathMetadata bool) Paths {
	paths := make(Paths)
	grouped := make(map[string][]*Operation)

	for _, ep := range endpoints {
		if ep == nil {
			continue
		}
		item := paths[ep.Path]
		if item == nil {
			item = &PathItem{}
			paths[ep.Path] = item
		}

		op := endpointOperation(ep)
		if ep.Method == MethodCustom {
			if item.AdditionalOperations == nil {
				item.AdditionalOperations = make(map[string]*Operation)
			}
			item.AdditionalOperations[ep.CustomVerb] = op
		} else {
			item.SetSlot(ep.Method, op)
		}
		grouped[ep.Path] = append(grouped[ep.Path], op)
	}

	if liftCommonPathMetadata {
		for path, ops := range grouped {
			liftCommonMetadata(paths[path], ops)
		}
	}

	return paths
}

// endpointOperation converts a flat endpoint back into an operation slot
// value. The path and method are carried by the enclosing path item.
func endpointOperation(ep *Endpoint) *Operation {
	return &Operation{
		OperationID:           ep.OperationID,
		OperationIDDerived:    ep.OperationIDDerived,
		Summary:               ep.Summary,
		Description:           ep.Description,
		Tags:                  ep.Tags,
		ExternalDocs:          ep.ExternalDocs,
		Deprecated:            ep.Deprecated,
		Parameters:            ep.Parameters,
		RequestBody:           ep.RequestBody,
		Responses:             ep.Responses,
		Callbacks:             ep.Callbacks,
		Servers:               ep.Servers,
		Security:              ep.Security,
		SecurityExplicitEmpty: ep.SecurityExplicitEmpty,
		Extra:                 ep.Extra,
	}
}

// liftCommonMetadata promotes facets shared, exactly, by every operation on
// a path. Empty values are never lifted.
func liftCommonMetadata(item *PathItem, ops []*Operation) {
	if len(ops) == 0 {
		return
	}
	first := ops[0]

	if first.Summary != "" && allOps(ops, func(op *Operation) bool { return op.Summary == first.Summary }) {
		item.Summary = first.Summary
		for _, op := range ops {
			op.Summary = ""
		}
	}
	if first.Description != "" && allOps(ops, func(op *Operation) bool { return op.Description == first.Description }) {
		item.Description = first.Description
		for _, op := range ops {
			op.Description = ""
		}
	}
	if len(first.Parameters) > 0 && allOps(ops, func(op *Operation) bool { return reflect.DeepEqual(op.Parameters, first.Parameters) }) {
		item.Parameters = first.Parameters
		for _, op := range ops {
			op.Parameters = nil
		}
	}
	if len(first.Servers) > 0 && allOps(ops, func(op *Operation) bool { return reflect.DeepEqual(op.Servers, first.Servers) }) {
		item.Servers = first.Servers
		for _, op := range ops {
			op.Servers = nil
		}
	}
}

func allOps(ops []*Operation, pred func(*Operation) bool) bool {
	for _, op := range ops {
		if !pred(op) {
			return false
		}
	}
	return true
}
