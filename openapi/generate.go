// Package openapi builds OpenAPI v3.1.0 documents from a router's
// registration table and serves them as JSON and YAML endpoints.
package openapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/signalis/junction/mux"
	"gopkg.in/yaml.v3"
)

// wildcardParam is the parameter name used for catch-all route segments.
const wildcardParam = "wildcard"

// Generate builds a Document from the router's route table. Route patterns
// are converted to OpenAPI templates: ":name" segments become "{name}" path
// parameters and a trailing "*" becomes a "{wildcard}" parameter.
func Generate(info Info, routes []mux.Route) Document {
	doc := Document{
		OpenAPI: "3.1.0",
		Info:    info,
		Paths:   make(map[string]*PathItem, len(routes)),
	}

	for _, route := range routes {
		template, params := convertPattern(route.Pattern)

		item, ok := doc.Paths[template]
		if !ok {
			item = &PathItem{}
			doc.Paths[template] = item
		}

		op := &Operation{
			OperationID: operationID(route.Method, template),
			Parameters:  params,
			Responses: map[string]*Response{
				"200": {Description: "OK"},
			},
		}

		switch route.Method {
		case http.MethodGet:
			item.Get = op
		case http.MethodPut:
			item.Put = op
		case http.MethodPost:
			item.Post = op
		case http.MethodDelete:
			item.Delete = op
		case http.MethodOptions:
			item.Options = op
		case http.MethodHead:
			item.Head = op
		case http.MethodPatch:
			item.Patch = op
		case http.MethodTrace:
			item.Trace = op
		}
	}

	return doc
}

// convertPattern rewrites a route pattern as an OpenAPI path template and
// returns the path parameters it declares.
func convertPattern(pattern string) (string, []*Parameter) {
	segments := strings.Split(pattern, "/")
	var params []*Parameter

	for i, seg := range segments {
		switch {
		case seg == "*":
			segments[i] = "{" + wildcardParam + "}"
			params = append(params, pathParam(wildcardParam))
		case len(seg) > 1 && seg[0] == ':':
			name := seg[1:]
			segments[i] = "{" + name + "}"
			params = append(params, pathParam(name))
		}
	}

	return strings.Join(segments, "/"), params
}

func pathParam(name string) *Parameter {
	return &Parameter{
		Name:     name,
		In:       "path",
		Required: true,
		Schema:   &Schema{Type: "string"},
	}
}

// operationID derives a stable identifier like "getUsersId" from the method
// and path template.
func operationID(method, template string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(method))

	for _, seg := range strings.Split(template, "/") {
		seg = strings.Trim(seg, "{}")
		if seg == "" {
			continue
		}
		for _, part := range strings.FieldsFunc(seg, func(r rune) bool {
			return r == '-' || r == '.' || r == '_'
		}) {
			b.WriteString(strings.ToUpper(part[:1]))
			b.WriteString(part[1:])
		}
	}

	if b.Len() == len(method) {
		b.WriteString("Root")
	}

	return b.String()
}

// Mount registers GET endpoints serving the document under basePath:
// "<basePath>/openapi.json" and "<basePath>/openapi.yaml". The document is
// serialized once on first request per format.
func Mount[T any](rt *mux.Router[T], basePath string, doc Document) {
	basePath = strings.TrimSuffix(basePath, "/")

	rt.Get(basePath+"/openapi.json", JSONHandler[T](doc))
	rt.Get(basePath+"/openapi.yaml", YAMLHandler[T](doc))
}

// JSONHandler returns a handler serving the document as indented JSON.
func JSONHandler[T any](doc Document) mux.Handler[T] {
	var (
		once sync.Once
		data []byte
		err  error
	)

	return func(_ *http.Request, _ *mux.Context[T]) *mux.Response {
		once.Do(func() {
			data, err = json.MarshalIndent(doc, "", "  ")
		})
		if err != nil {
			return mux.Text(http.StatusInternalServerError, "failed to serialize OpenAPI spec as JSON")
		}
		return mux.Raw(http.StatusOK, "application/json", data)
	}
}

// YAMLHandler returns a handler serving the document as YAML.
func YAMLHandler[T any](doc Document) mux.Handler[T] {
	var (
		once sync.Once
		data []byte
		err  error
	)

	return func(_ *http.Request, _ *mux.Context[T]) *mux.Response {
		once.Do(func() {
			data, err = yaml.Marshal(doc)
		})
		if err != nil {
			return mux.Text(http.StatusInternalServerError, "failed to serialize OpenAPI spec as YAML")
		}
		return mux.Raw(http.StatusOK, "application/x-yaml", data)
	}
}
