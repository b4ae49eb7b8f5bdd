package authz

// ResourceKind classifies what a resource name refers to.
type ResourceKind string

const (
	// KindTable is a queryable data table.
	KindTable ResourceKind = "table"
	// KindTool is a downstream operation.
	KindTool ResourceKind = "tool"
)

// Action is the operation the caller wants to perform on a resource.
type Action string

const (
	ActionRead    Action = "read"
	ActionExecute Action = "execute"
)

// Resource identifies a single governed resource. Immutable value.
type Resource struct {
	Kind ResourceKind
	Name string
}

// Table returns a table resource descriptor.
func Table(name string) Resource {
	return Resource{Kind: KindTable, Name: name}
}

// Tool returns a tool resource descriptor.
func Tool(name string) Resource {
	return Resource{Kind: KindTool, Name: name}
}
