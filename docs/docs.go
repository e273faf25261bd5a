// Package docs registers the PromptVerse OpenAPI document with swag.
//
//	@title			PromptVerse API
//	@version		1.0
//	@description	Prompt gallery backend: paginated browsing, per-client engagement, admin unlock.
//	@BasePath		/
package docs

//go:generate swag init -g ../cmd/promptverse/serve.go -o . --parseInternal

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/prompts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["prompts"],
                "summary": "List prompts",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "pageSize", "in": "query"},
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "string", "name": "query", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PromptPage"}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["prompts"],
                "summary": "Submit a prompt",
                "parameters": [
                    {"name": "prompt", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.NewPrompt"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Prompt"}},
                    "400": {"description": "Bad Request"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/api/prompts/recent": {
            "get": {
                "produces": ["application/json"],
                "tags": ["prompts"],
                "summary": "Most recent prompts store-wide",
                "parameters": [{"type": "integer", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Prompt"}}}}
            }
        },
        "/api/prompts/popular": {
            "get": {
                "produces": ["application/json"],
                "tags": ["prompts"],
                "summary": "Most liked prompts",
                "parameters": [{"type": "integer", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Prompt"}}}}
            }
        },
        "/api/prompts/category-counts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["prompts"],
                "summary": "Prompt count per category plus the All total",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "integer"}}}}
            }
        },
        "/api/prompts/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["prompts"],
                "summary": "Edit a prompt's text fields and category",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "edit", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.PromptEdit"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Prompt"}},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/prompts/{id}/like-toggle": {
            "post": {
                "produces": ["application/json"],
                "tags": ["engagement"],
                "summary": "Toggle the caller's like",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.LikeState"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/prompts/{id}/copy": {
            "post": {
                "produces": ["application/json"],
                "tags": ["engagement"],
                "summary": "Count a copy of the prompt content",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/worker.CopyResponse"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/prompts/{id}/rating": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["engagement"],
                "summary": "Set the caller's rating",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "rating", "in": "body", "required": true, "schema": {"$ref": "#/definitions/worker.RatingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/worker.RatingResponse"}},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/admin/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Admin grant of the calling client",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/worker.AdminStatus"}}}
            }
        },
        "/api/admin/unlock": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Unlock admin features for the calling client",
                "parameters": [
                    {"name": "token", "in": "body", "required": true, "schema": {"$ref": "#/definitions/worker.UnlockRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/worker.AdminStatus"}},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/api/authors/{name}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["authors"],
                "summary": "Author profile",
                "parameters": [{"type": "string", "name": "name", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AuthorProfile"}}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Liveness and database reachability",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/worker.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/worker.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.Prompt": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "content": {"type": "string"},
                "category": {"type": "string"},
                "author": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "likes": {"type": "integer"},
                "copies": {"type": "integer"},
                "createdAt": {"type": "integer"},
                "modelSuggestion": {"type": "string"},
                "likedByMe": {"type": "boolean"},
                "myRating": {"type": "integer"}
            }
        },
        "models.PromptPage": {
            "type": "object",
            "properties": {
                "prompts": {"type": "array", "items": {"$ref": "#/definitions/models.Prompt"}},
                "total": {"type": "integer"}
            }
        },
        "models.NewPrompt": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "content": {"type": "string"},
                "category": {"type": "string"},
                "author": {"type": "string"},
                "modelSuggestion": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "likes": {"type": "integer"},
                "createdAt": {"type": "integer"}
            }
        },
        "models.PromptEdit": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "content": {"type": "string"},
                "category": {"type": "string"}
            }
        },
        "models.LikeState": {
            "type": "object",
            "properties": {"liked": {"type": "boolean"}, "likes": {"type": "integer"}}
        },
        "models.AuthorProfile": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "bio": {"type": "string"},
                "joinedDate": {"type": "string"},
                "avatarColor": {"type": "string"},
                "avatarUrl": {"type": "string"}
            }
        },
        "worker.CopyResponse": {"type": "object", "properties": {"copies": {"type": "integer"}}},
        "worker.RatingRequest": {"type": "object", "properties": {"rating": {"type": "integer"}}},
        "worker.RatingResponse": {"type": "object", "properties": {"rating": {"type": "integer"}}},
        "worker.AdminStatus": {"type": "object", "properties": {"unlocked": {"type": "boolean"}}},
        "worker.UnlockRequest": {"type": "object", "properties": {"token": {"type": "string"}}},
        "worker.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "version": {"type": "string"},
                "uptime": {"type": "string"},
                "database": {"type": "string"},
                "ready": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PromptVerse API",
	Description:      "Prompt gallery backend: paginated browsing, per-client engagement, admin unlock.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
