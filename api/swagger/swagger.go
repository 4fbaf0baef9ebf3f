package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Spark API",
        "description": "Directory of high-school extracurricular programs with smart search, bookmarks and submissions.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Programs", "description": "Catalog browsing, smart search and exports"},
        {"name": "Bookmarks", "description": "Saved programs and deadline reminders"},
        {"name": "Intake", "description": "Program submissions and contact messages"},
        {"name": "Authentication", "description": "Accounts and access tokens"},
        {"name": "Admin", "description": "Intake review and service metrics"}
    ],
    "paths": {
        "/programs": {
            "get": {
                "tags": ["Programs"],
                "summary": "List programs",
                "parameters": [
                    {"$ref": "#/parameters/state"},
                    {"$ref": "#/parameters/field"},
                    {"$ref": "#/parameters/grade"},
                    {"$ref": "#/parameters/category"},
                    {"$ref": "#/parameters/search"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/programs/{id}": {
            "get": {
                "tags": ["Programs"],
                "summary": "Get program",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/programs/smart-search": {
            "get": {
                "tags": ["Programs"],
                "summary": "Smart search",
                "description": "Detect state, fields, category and grade in free text and apply them over the filter params.",
                "parameters": [
                    {"name": "q", "in": "query", "required": true, "type": "string"},
                    {"$ref": "#/parameters/state"},
                    {"$ref": "#/parameters/field"},
                    {"$ref": "#/parameters/grade"},
                    {"$ref": "#/parameters/category"},
                    {"$ref": "#/parameters/search"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/programs/parse": {
            "get": {
                "tags": ["Programs"],
                "summary": "Parse a smart-search query",
                "parameters": [
                    {"name": "q", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ParsedQuery"}}
                }
            }
        },
        "/programs/states": {
            "get": {
                "tags": ["Programs"],
                "summary": "Program counts per state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/programs/options": {
            "get": {
                "tags": ["Programs"],
                "summary": "Filter and form options",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/programs/export": {
            "get": {
                "tags": ["Programs"],
                "summary": "Export programs",
                "produces": ["text/csv", "application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf", "xlsx"]},
                    {"$ref": "#/parameters/state"},
                    {"$ref": "#/parameters/field"},
                    {"$ref": "#/parameters/grade"},
                    {"$ref": "#/parameters/category"},
                    {"$ref": "#/parameters/search"}
                ],
                "responses": {
                    "200": {"description": "File download", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookmarks": {
            "get": {
                "tags": ["Bookmarks"],
                "summary": "List bookmarked programs",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookmarks/ids": {
            "get": {
                "tags": ["Bookmarks"],
                "summary": "List bookmarked program ids",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookmarks/reminders": {
            "get": {
                "tags": ["Bookmarks"],
                "summary": "Upcoming deadlines of bookmarked programs",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookmarks/{programId}": {
            "post": {
                "tags": ["Bookmarks"],
                "summary": "Bookmark a program",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "programId", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Bookmark store unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Bookmarks"],
                "summary": "Remove a bookmark",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "programId", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/submissions": {
            "post": {
                "tags": ["Intake"],
                "summary": "Submit a program",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmissionRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Queue unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/contact": {
            "post": {
                "tags": ["Intake"],
                "summary": "Send a contact message",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ContactRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Create an account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate user",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/submissions": {
            "get": {
                "tags": ["Admin"],
                "summary": "List program submissions",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/contact-messages": {
            "get": {
                "tags": ["Admin"],
                "summary": "List contact messages",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/metrics": {
            "get": {
                "tags": ["Admin"],
                "summary": "Metrics snapshot",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "parameters": {
        "state": {"name": "state", "in": "query", "type": "string", "description": "State name, All States, or All for no constraint"},
        "field": {"name": "field", "in": "query", "type": "string"},
        "grade": {"name": "grade", "in": "query", "type": "string", "description": "9-12, or All for no constraint"},
        "category": {"name": "category", "in": "query", "type": "string"},
        "search": {"name": "search", "in": "query", "type": "string", "description": "Case-insensitive match on title or description"}
    },
    "definitions": {
        "ParsedQuery": {
            "type": "object",
            "properties": {
                "state": {"type": "string"},
                "fields": {"type": "array", "items": {"type": "string"}},
                "category": {"type": "string"},
                "grade": {"type": "integer"},
                "search_term": {"type": "string"}
            }
        },
        "SubmissionRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "state": {"type": "string"},
                "fields": {"type": "array", "items": {"type": "string"}},
                "other_field": {"type": "string"},
                "grade_level": {"type": "array", "items": {"type": "integer"}},
                "deadline": {"type": "string", "format": "date"},
                "cost": {"type": "string"},
                "duration": {"type": "string"},
                "website": {"type": "string"},
                "contact_email": {"type": "string"},
                "organization_name": {"type": "string"}
            },
            "required": ["title", "description", "state", "fields", "grade_level", "deadline", "cost", "duration", "website", "contact_email", "organization_name"]
        },
        "ContactRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "subject": {"type": "string"},
                "message": {"type": "string"}
            },
            "required": ["name", "email", "subject", "message"]
        },
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "full_name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["full_name", "email", "password"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
