package executor

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	eventbus "github.com/hanpama/gqlkit/internal/eventbus"
	events "github.com/hanpama/gqlkit/internal/events"
	language "github.com/hanpama/gqlkit/internal/language"
	reqid "github.com/hanpama/gqlkit/internal/reqid"
	schema "github.com/hanpama/gqlkit/internal/schema"
)

// Path locates a value in the response: field names and list indices.
type Path []any

// Params describes one GraphQL request.
type Params struct {
	Schema        *schema.Schema
	Query         string
	RootValue     any
	Variables     map[string]any
	OperationName string
}

// Execute parses p.Query and runs it against p.Schema. Parse and request
// errors are reported in the result rather than returned.
func Execute(ctx context.Context, p Params) *ExecutionResult {
	ctx, _ = reqid.Ensure(ctx)
	start := time.Now()

	var (
		res    *ExecutionResult
		opType string
		opName = p.OperationName
	)
	doc, err := language.ParseQuery(p.Query)
	if err != nil {
		res = &ExecutionResult{Errors: []GraphQLError{requestError(err)}}
	} else {
		if op, err := getOperation(doc, p.OperationName); err == nil {
			opType, opName = string(op.Operation), op.Name
		}
		eventbus.Publish(ctx, events.GraphQLStart{
			Query:         p.Query,
			OperationName: opName,
			OperationType: opType,
			RootResolve:   p.Schema.RootResolve != nil,
		})
		res = NewExecutor(p.Schema).ExecuteRequest(ctx, doc, p.OperationName, p.Variables, p.RootValue)
	}

	errs := make([]error, len(res.Errors))
	for i, e := range res.Errors {
		errs[i] = e
	}
	eventbus.Publish(ctx, events.GraphQLFinish{
		Query:         p.Query,
		OperationName: opName,
		OperationType: opType,
		Errors:        errs,
		Duration:      time.Since(start),
	})
	return res
}

// executionState holds the state during query execution
type executionState struct {
	schema         *schema.Schema
	document       *language.QueryDocument
	operation      *language.OperationDefinition
	variableValues map[string]any
	rootValue      any
	context        context.Context
	errors         []GraphQLError
}

// Executor runs parsed operations against a schema whose fields carry
// resolver functions.
type Executor struct {
	schema *schema.Schema
}

func NewExecutor(schema *schema.Schema) *Executor {
	return &Executor{schema: schema}
}

// ExecuteRequest executes one operation of document. Fields run serially in
// document order. When the schema has a RootResolve hook it runs once, and
// its result becomes the source of the root fields.
func (e *Executor) ExecuteRequest(
	ctx context.Context,
	document *language.QueryDocument,
	operationName string,
	variableValues map[string]any,
	initialValue any,
) *ExecutionResult {
	operation, err := getOperation(document, operationName)
	if err != nil {
		return &ExecutionResult{Errors: []GraphQLError{{Message: err.Error()}}}
	}

	var rootType *schema.Type
	switch operation.Operation {
	case language.Query:
		rootType = e.schema.GetQueryType()
	case language.Mutation:
		rootType = e.schema.GetMutationType()
	case language.Subscription:
		return &ExecutionResult{Errors: []GraphQLError{{Message: "subscription operations are not supported"}}}
	default:
		return &ExecutionResult{Errors: []GraphQLError{{Message: fmt.Sprintf("unsupported operation type: %s", operation.Operation)}}}
	}
	if rootType == nil {
		return &ExecutionResult{Errors: []GraphQLError{{Message: fmt.Sprintf("Schema is not configured for %s operations.", operation.Operation)}}}
	}

	coercedVariableValues, err := coerceVariableValues(e.schema, operation, variableValues)
	if err != nil {
		return &ExecutionResult{Errors: []GraphQLError{{Message: err.Error()}}}
	}

	state := &executionState{
		schema:         e.schema,
		document:       document,
		operation:      operation,
		variableValues: coercedVariableValues,
		rootValue:      initialValue,
		context:        ctx,
	}

	rootValue := initialValue
	if e.schema.RootResolve != nil {
		rootValue, err = e.schema.RootResolve(schema.ResolveParams{
			Context: ctx,
			Source:  initialValue,
			Args:    map[string]any{},
			Info:    state.resolveInfo(rootType, nil, Path{}),
		})
		if err != nil {
			return &ExecutionResult{Errors: []GraphQLError{{Message: err.Error()}}}
		}
		state.rootValue = rootValue
	}

	data := executeSelectionSet(state, rootType, operation.SelectionSet, rootValue, Path{})
	res := &ExecutionResult{Errors: state.errors}
	if data != nil {
		res.Data = data
	}
	return res
}

// executeSelectionSet executes the selection set against objectValue. It
// returns nil when a non-null field of the set resolved to null, so the null
// propagates to the parent.
func executeSelectionSet(state *executionState, objectType *schema.Type, selectionSet language.SelectionSet, objectValue any, path Path) map[string]any {
	groupedFields := collectFields(state, objectType, selectionSet)
	resultMap := make(map[string]any)

	for _, collectedField := range groupedFields.orderedFields() {
		responseName := collectedField.ResponseName
		fields := collectedField.Fields
		fieldPath := appendPath(path, responseName)

		// Handle __typename special case
		if fields[0].Name == "__typename" {
			resultMap[responseName] = objectType.Name
			continue
		}

		fieldDef := objectType.Field(fields[0].Name)
		if fieldDef == nil {
			state.addError(fmt.Sprintf("Cannot query field %q on type %q.", fields[0].Name, objectType.Name), fieldPath)
			continue
		}

		fieldResult := executeField(state, objectType, objectValue, fieldDef, fields, fieldPath)
		if isNullish(fieldResult) {
			if schema.IsNonNull(fieldDef.Type) {
				return nil
			}
			fieldResult = nil
		}
		resultMap[responseName] = fieldResult
	}

	return resultMap
}

func executeField(state *executionState, objectType *schema.Type, source any, fieldDef *schema.Field, fields []*language.Field, path Path) any {
	info := state.resolveInfo(objectType, fieldDef, path)

	args, err := coerceArgumentValues(state.schema, fieldDef, fields[0].Arguments, state.variableValues)
	if err != nil {
		state.addError(err.Error(), path)
		return nil
	}

	resolve := fieldDef.Resolve
	if resolve == nil {
		resolve = DefaultFieldResolver
	}
	value, err := resolve(schema.ResolveParams{Context: state.context, Source: source, Args: args, Info: info})
	if err != nil {
		state.addError(err.Error(), path)
		return nil
	}
	return completeValue(state, fieldDef.Type, fields, value, path, info)
}

// completeValue completes a value
func completeValue(state *executionState, fieldType *schema.TypeRef, fields []*language.Field, result any, path Path, info schema.ResolveInfo) any {
	if schema.IsNonNull(fieldType) {
		if isNullish(result) {
			if !state.hasErrorAtPath(path) {
				state.addError(fmt.Sprintf("Cannot return null for non-nullable field %s.%s.", info.ParentType.Name, info.FieldName), path)
			}
			return nil
		}
		// Error already recorded at the original path if this is nullish
		return completeValue(state, schema.Unwrap(fieldType), fields, result, path, info)
	}

	if isNullish(result) {
		return nil
	}

	if schema.IsList(fieldType) {
		return completeListValue(state, fieldType, fields, result, path, info)
	}
	namedType := schema.GetNamedType(fieldType)
	typeObj := state.schema.Types[namedType]
	if typeObj == nil {
		state.addError(fmt.Sprintf("Unknown type: %s", namedType), path)
		return nil
	}

	switch typeObj.Kind {
	case schema.TypeKindScalar, schema.TypeKindEnum:
		serialized, err := schema.SerializeLeaf(typeObj, result)
		if err != nil {
			state.addError(err.Error(), path)
			return nil
		}
		return serialized
	case schema.TypeKindObject:
		return completeObjectValue(state, typeObj, fields, result, path, info)
	case schema.TypeKindInterface, schema.TypeKindUnion:
		return completeAbstractValue(state, typeObj, fields, result, path, info)
	default:
		state.addError(fmt.Sprintf("Cannot complete value of unexpected type: %s", typeObj.Kind), path)
		return nil
	}
}

// completeListValue completes a list value
func completeListValue(state *executionState, listType *schema.TypeRef, fields []*language.Field, result any, path Path, info schema.ResolveInfo) any {
	var items []any
	if direct, ok := result.([]any); ok {
		items = direct
	} else {
		rv := reflect.ValueOf(result)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			state.addError(fmt.Sprintf("Expected Iterable, but did not find one for field %s.%s.", info.ParentType.Name, info.FieldName), path)
			return nil
		}
		items = make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items[i] = rv.Index(i).Interface()
		}
	}

	inner := schema.Unwrap(listType)
	completed := make([]any, len(items))
	for i, item := range items {
		v := completeValue(state, inner, fields, item, appendPath(path, i), info)
		if isNullish(v) {
			if schema.IsNonNull(inner) {
				// Propagate null to the list field; error already recorded by inner completion
				return nil
			}
			v = nil
		}
		completed[i] = v
	}
	return completed
}

func completeObjectValue(state *executionState, objectType *schema.Type, fields []*language.Field, result any, path Path, info schema.ResolveInfo) any {
	if objectType.IsTypeOf != nil {
		ok := objectType.IsTypeOf(schema.IsTypeOfParams{Context: state.context, Value: result, Info: info})
		if !ok {
			state.addError(fmt.Sprintf("Expected value of type %q but got: %v.", objectType.Name, result), path)
			return nil
		}
	}
	sub := mergeSelectionSets(fields)
	data := executeSelectionSet(state, objectType, sub, result, path)
	if data == nil {
		return nil
	}
	return data
}

func completeAbstractValue(state *executionState, abstractType *schema.Type, fields []*language.Field, result any, path Path, info schema.ResolveInfo) any {
	typeName, err := resolveAbstractType(state, abstractType, result, info)
	if err != nil {
		state.addError(err.Error(), path)
		return nil
	}
	objectType := state.schema.Types[typeName]
	if objectType == nil || objectType.Kind != schema.TypeKindObject {
		state.addError(fmt.Sprintf("Abstract type %q must resolve to an Object type at runtime for field %s.%s. Got: %q.",
			abstractType.Name, info.ParentType.Name, info.FieldName, typeName), path)
		return nil
	}
	if !schema.ImplementsAbstractType(state.schema, abstractType, objectType) {
		state.addError(fmt.Sprintf("Runtime Object type %q is not a possible type for %q.", objectType.Name, abstractType.Name), path)
		return nil
	}
	return completeObjectValue(state, objectType, fields, result, path, info)
}

// resolveAbstractType asks the abstract type's ResolveType hook for the
// runtime type of value, or else the IsTypeOf hooks of its possible types.
func resolveAbstractType(state *executionState, abstractType *schema.Type, value any, info schema.ResolveInfo) (string, error) {
	if abstractType.ResolveType != nil {
		return abstractType.ResolveType(schema.ResolveTypeParams{
			Context:      state.context,
			Value:        value,
			AbstractType: abstractType,
			Info:         info,
		})
	}
	params := schema.IsTypeOfParams{Context: state.context, Value: value, Info: info}
	for _, candidate := range schema.PossibleTypes(state.schema, abstractType) {
		if candidate.IsTypeOf != nil && candidate.IsTypeOf(params) {
			return candidate.Name, nil
		}
	}
	return "", fmt.Errorf("Abstract type %q must resolve to an Object type at runtime for field %s.%s. "+
		"Either the %q type should provide a \"resolveType\" function or each possible type should provide an \"isTypeOf\" function.",
		abstractType.Name, info.ParentType.Name, info.FieldName, abstractType.Name)
}

func (state *executionState) resolveInfo(parent *schema.Type, fieldDef *schema.Field, path Path) schema.ResolveInfo {
	info := schema.ResolveInfo{
		ParentType:     parent,
		Path:           []any(path),
		Schema:         state.schema,
		RootValue:      state.rootValue,
		VariableValues: state.variableValues,
		Operation:      state.operation,
	}
	if fieldDef != nil {
		info.FieldName = fieldDef.Name
		info.ReturnType = fieldDef.Type
	}
	return info
}

func appendPath(path Path, elem any) Path {
	newPath := make(Path, len(path)+1)
	copy(newPath, path)
	newPath[len(path)] = elem
	return newPath
}

// getOperation retrieves the operation from the document
func getOperation(document *language.QueryDocument, operationName string) (*language.OperationDefinition, error) {
	if operationName == "" {
		switch len(document.Operations) {
		case 0:
			return nil, errors.New("Must provide an operation.")
		case 1:
			return document.Operations[0], nil
		}
		return nil, errors.New("Must provide operation name if query contains multiple operations.")
	}
	if op := document.Operations.ForName(operationName); op != nil {
		return op, nil
	}
	return nil, fmt.Errorf("Unknown operation named %q.", operationName)
}

func typeRefFromAST(t *language.Type) *schema.TypeRef {
	if t == nil {
		return nil
	}
	if t.NonNull {
		return schema.NonNullType(typeRefFromAST(&language.Type{NamedType: t.NamedType, Elem: t.Elem}))
	}
	if t.NamedType != "" {
		return schema.NamedType(t.NamedType)
	}
	if t.Elem != nil {
		return schema.ListType(typeRefFromAST(t.Elem))
	}
	return nil
}

// Helper function to add an error to the execution state
func (state *executionState) addError(message string, path Path) {
	state.errors = append(state.errors, GraphQLError{Message: message, Path: path})
}

// hasErrorAtPath reports whether an error with the given path already exists.
func (state *executionState) hasErrorAtPath(path Path) bool {
	for _, err := range state.errors {
		if reflect.DeepEqual(err.Path, path) {
			return true
		}
	}
	return false
}

// mergeSelectionSets merges selection sets from multiple fields
func mergeSelectionSets(fields []*language.Field) language.SelectionSet {
	var merged language.SelectionSet
	for _, f := range fields {
		merged = append(merged, f.SelectionSet...)
	}
	return merged
}

// isNullish returns true for nil interfaces and typed nils (map, slice, ptr, interface)
func isNullish(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
