package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers the API documentation endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(r gin.IRouter) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>paper-service Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "paper-service", "version": "v1.0.0" },
  "components": {
    "schemas": {
      "PaperInput": {
        "type": "object",
        "required": ["title", "content"],
        "properties": {
          "title": { "type": "string" },
          "content": { "type": "string" },
          "references": { "type": "array", "items": { "type": "string" }, "default": [] }
        }
      },
      "Paper": {
        "type": "object",
        "properties": {
          "id": { "type": "string", "example": "paper-1" },
          "title": { "type": "string" },
          "content": { "type": "string" },
          "references": { "type": "array", "items": { "type": "string" } },
          "created_at": { "type": "string", "format": "date-time" },
          "updated_at": { "type": "string", "format": "date-time" }
        }
      },
      "NotFound": { "type": "object", "properties": { "detail": { "type": "string", "example": "Paper not found" } } },
      "ValidationError": {
        "type": "object",
        "properties": {
          "detail": {
            "type": "array",
            "items": {
              "type": "object",
              "properties": {
                "loc": { "type": "array", "items": { "type": "string" } },
                "msg": { "type": "string" },
                "type": { "type": "string" }
              }
            }
          }
        }
      }
    }
  },
  "paths": {
    "/api/papers": {
      "get": {
        "summary": "List papers in insertion order",
        "responses": { "200": { "description": "all papers", "content": { "application/json": { "schema": { "type": "array", "items": { "$ref": "#/components/schemas/Paper" } } } } } }
      },
      "post": {
        "summary": "Create a paper",
        "requestBody": { "required": true, "content": { "application/json": { "schema": { "$ref": "#/components/schemas/PaperInput" } } } },
        "responses": {
          "200": { "description": "created paper", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Paper" } } } },
          "422": { "description": "validation error", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/ValidationError" } } } }
        }
      }
    },
    "/api/papers/{id}": {
      "parameters": [ { "name": "id", "in": "path", "required": true, "schema": { "type": "string" } } ],
      "get": {
        "summary": "Get a paper",
        "responses": {
          "200": { "description": "paper", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Paper" } } } },
          "404": { "description": "Paper not found", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/NotFound" } } } }
        }
      },
      "put": {
        "summary": "Replace a paper",
        "requestBody": { "required": true, "content": { "application/json": { "schema": { "$ref": "#/components/schemas/PaperInput" } } } },
        "responses": {
          "200": { "description": "updated paper", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Paper" } } } },
          "404": { "description": "Paper not found", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/NotFound" } } } },
          "422": { "description": "validation error", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/ValidationError" } } } }
        }
      },
      "delete": {
        "summary": "Delete a paper",
        "responses": {
          "200": { "description": "deleted", "content": { "application/json": { "schema": { "type": "object", "properties": { "message": { "type": "string", "example": "Paper deleted" } } } } } },
          "404": { "description": "Paper not found", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/NotFound" } } } }
        }
      }
    },
    "/": { "get": { "summary": "Running banner", "responses": { "200": { "description": "running" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "exposition format" } } } }
  }
}`
