package openapi

// Document represents the root of an OpenAPI v3.1.0 document.
//
// See: https://spec.openapis.org/oas/v3.1.0#openapi-object
type Document struct {
	OpenAPI string               `json:"openapi" yaml:"openapi"`
	Info    Info                 `json:"info" yaml:"info"`
	Servers []Server             `json:"servers,omitempty" yaml:"servers,omitempty"`
	Paths   map[string]*PathItem `json:"paths,omitempty" yaml:"paths,omitempty"`
}

// Info provides metadata about the API.
//
// See: https://spec.openapis.org/oas/v3.1.0#info-object
type Info struct {
	Title       string   `json:"title" yaml:"title"`
	Summary     string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Contact     *Contact `json:"contact,omitempty" yaml:"contact,omitempty"`
	License     *License `json:"license,omitempty" yaml:"license,omitempty"`
	Version     string   `json:"version" yaml:"version"`
}

// Contact represents contact information for the API.
//
// See: https://spec.openapis.org/oas/v3.1.0#contact-object
type Contact struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// License represents license information for the API.
//
// See: https://spec.openapis.org/oas/v3.1.0#license-object
type License struct {
	Name       string `json:"name" yaml:"name"`
	Identifier string `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	URL        string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Server represents a server.
//
// See: https://spec.openapis.org/oas/v3.1.0#server-object
type Server struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem describes the operations available on a single path.
//
// See: https://spec.openapis.org/oas/v3.1.0#path-item-object
type PathItem struct {
	Get     *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Put     *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Post    *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Delete  *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
	Options *Operation `json:"options,omitempty" yaml:"options,omitempty"`
	Head    *Operation `json:"head,omitempty" yaml:"head,omitempty"`
	Patch   *Operation `json:"patch,omitempty" yaml:"patch,omitempty"`
	Trace   *Operation `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// Operation describes a single API operation on a path.
//
// See: https://spec.openapis.org/oas/v3.1.0#operation-object
type Operation struct {
	Summary     string               `json:"summary,omitempty" yaml:"summary,omitempty"`
	OperationID string               `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Parameters  []*Parameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Responses   map[string]*Response `json:"responses,omitempty" yaml:"responses,omitempty"`
}

// Parameter describes a single operation parameter. The "in" field is always
// "path" for parameters generated from route patterns.
//
// See: https://spec.openapis.org/oas/v3.1.0#parameter-object
type Parameter struct {
	Name     string  `json:"name" yaml:"name"`
	In       string  `json:"in" yaml:"in"`
	Required bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Schema   *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Schema is a minimal JSON Schema fragment used for parameter types.
//
// See: https://spec.openapis.org/oas/v3.1.0#schema-object
type Schema struct {
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Response describes a single response of an operation.
//
// See: https://spec.openapis.org/oas/v3.1.0#response-object
type Response struct {
	Description string `json:"description" yaml:"description"`
}
