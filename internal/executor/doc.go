// Package executor runs GraphQL operations against a schema whose types carry
// their own behaviour.
//
// # Resolution
//
// Each field is resolved by its Resolve function, or by DefaultFieldResolver
// when it has none. Fields execute serially, in document order, for queries
// and mutations alike. Subscriptions are rejected.
//
// When the schema has a RootResolve hook, it runs once per operation before
// any root field. Its result replaces the root value given by the caller.
//
// # Completion
//
//   - Scalars are serialized by their Serialize hook; enums map their internal
//     value back to the value name.
//   - Interfaces and unions use the abstract type's ResolveType hook, or else
//     the IsTypeOf hooks of the possible types, to find the runtime object
//     type. Objects with an IsTypeOf hook verify their values.
//   - A null in a non-null position propagates to the nearest nullable
//     parent. A null root makes the whole data null.
//
// Fragment type conditions match the object type itself or any interface or
// union it belongs to.
//
// # Errors
//
// Errors never abort the operation. They are collected with the response
// path of the field that raised them and returned alongside the partial
// data.
//
// # Events
//
// Execute publishes events.GraphQLStart and events.GraphQLFinish on the
// global event bus, with the operation ID of package reqid in the context.
package executor
