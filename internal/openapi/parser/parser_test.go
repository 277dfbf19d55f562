package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-formsubmit/pkg/openapi"
)

func loadFixture(t *testing.T) pkgopenapi.Document {
	t.Helper()
	path := filepath.Join("..", "testdata", "comments.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), data)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	return doc
}

func TestOperationsResolvesRequestBody(t *testing.T) {
	p := New(pkgopenapi.NewParserOptions())
	ops, err := p.Operations(context.Background(), loadFixture(t))
	if err != nil {
		t.Fatalf("operations: %v", err)
	}

	create, ok := ops["createComment"]
	if !ok {
		t.Fatalf("createComment missing; got %v", keys(ops))
	}
	if create.Method != "POST" || create.Path != "/api" {
		t.Fatalf("unexpected operation %s %s", create.Method, create.Path)
	}
	if diff := cmp.Diff([]string{"name", "email", "content"}, create.RequestBody.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	content := create.RequestBody.Properties["content"]
	if content.MaxLength == nil || *content.MaxLength != 500 {
		t.Fatalf("content maxLength not converted: %+v", content)
	}
	if got := create.RequestBody.Properties["email"].Title; got != "Email" {
		t.Fatalf("email title = %q", got)
	}

	list, ok := ops["listComments"]
	if !ok || list.Method != "GET" {
		t.Fatalf("listComments missing or wrong method: %+v", list)
	}
	if len(list.RequestBody.Properties) != 0 {
		t.Fatalf("GET operation should have no request body")
	}
}

func TestOperationsRejectsEmptyPaths(t *testing.T) {
	const document = `{"openapi":"3.0.0","info":{"title":"Empty","version":"1.0.0"},"paths":{}}`
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile("empty.json"), []byte(document))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	p := New(pkgopenapi.NewParserOptions())
	if _, err := p.Operations(context.Background(), doc); err == nil {
		t.Fatalf("expected error for document without paths")
	}
}

func TestOperationsFallbackID(t *testing.T) {
	const document = `{
  "openapi": "3.0.0",
  "info": {"title": "Anon", "version": "1.0.0"},
  "paths": {
    "/submit": {
      "post": {
        "requestBody": {"content": {"application/json": {"schema": {"type": "object", "properties": {"note": {"type": "string"}}}}}},
        "responses": {"200": {"description": "ok"}}
      }
    }
  }
}`
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile("anon.json"), []byte(document))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	ops, err := New(pkgopenapi.NewParserOptions()).Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	if _, ok := ops["post:/submit"]; !ok {
		t.Fatalf("expected fallback id post:/submit, got %v", keys(ops))
	}
}

func keys(ops map[string]pkgopenapi.Operation) []string {
	out := make([]string, 0, len(ops))
	for id := range ops {
		out = append(out, id)
	}
	return out
}
