package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Daily Cover API",
        "description": "Derives daily schedules and cover sheets for absent teachers",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Operator login"},
        {"name": "Roster", "description": "Workbook import and status"},
        {"name": "Teachers", "description": "Teacher directory"},
        {"name": "Casuals", "description": "Casual teacher directory"},
        {"name": "Schedule", "description": "Derived daily schedules"},
        {"name": "Overrides", "description": "Manual duties and schedule edits"},
        {"name": "Export", "description": "Cover sheet rendering"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate the operator",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/roster/import": {
            "post": {
                "tags": ["Roster"],
                "summary": "Import the roster workbook",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "Import summary", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unparseable workbook", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/roster/status": {
            "get": {
                "tags": ["Roster"],
                "summary": "Roster status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teachers": {
            "get": {
                "tags": ["Teachers"],
                "summary": "List teachers",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Roster not loaded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teachers/{id}": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Get teacher",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/casuals": {
            "get": {
                "tags": ["Casuals"],
                "summary": "List casual teachers",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Casuals"],
                "summary": "Add a casual teacher",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CasualRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate name", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/casuals/{id}": {
            "put": {
                "tags": ["Casuals"],
                "summary": "Update a casual teacher",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CasualRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Casuals"],
                "summary": "Remove a casual teacher",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/schedule": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Derive a daily schedule",
                "parameters": [
                    {"name": "teacher_id", "in": "query", "required": true, "type": "string"},
                    {"name": "date", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Derived schedule", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Teacher not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Roster not loaded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/terms/resolve": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Resolve a date against the school calendar",
                "parameters": [
                    {"name": "date", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Term info", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/duties/manual": {
            "post": {
                "tags": ["Overrides"],
                "summary": "Add a one-off duty",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ManualDutyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/duties/manual/{id}": {
            "delete": {
                "tags": ["Overrides"],
                "summary": "Remove a one-off duty",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/duties/{id}": {
            "put": {
                "tags": ["Overrides"],
                "summary": "Edit a duty entry",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DutyUpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown duty", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/duties/inherited/{id}": {
            "delete": {
                "tags": ["Overrides"],
                "summary": "Reset an edited duty to its roster template",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Reset"}
                }
            }
        },
        "/rff/{id}": {
            "put": {
                "tags": ["Overrides"],
                "summary": "Edit an RFF entry",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RFFUpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Overrides"],
                "summary": "Reset an edited RFF entry",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Reset"}
                }
            }
        },
        "/export/cover-sheet": {
            "get": {
                "tags": ["Export"],
                "summary": "Export the daily cover sheet",
                "produces": ["text/plain", "text/csv", "application/pdf"],
                "parameters": [
                    {"name": "teacher_id", "in": "query", "required": true, "type": "string"},
                    {"name": "date", "in": "query", "required": true, "type": "string"},
                    {"name": "casual", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["text", "csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered cover sheet"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CasualRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "ManualDutyRequest": {
            "type": "object",
            "required": ["teacher_id", "date", "time_slot", "location"],
            "properties": {
                "teacher_id": {"type": "string"},
                "date": {"type": "string"},
                "time_slot": {"type": "string"},
                "location": {"type": "string"},
                "when": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "DutyUpdateRequest": {
            "type": "object",
            "required": ["time_slot", "location"],
            "properties": {
                "time_slot": {"type": "string"},
                "location": {"type": "string"},
                "when": {"type": "string"},
                "description": {"type": "string"},
                "teacher_id": {"type": "string"},
                "date": {"type": "string"}
            }
        },
        "RFFUpdateRequest": {
            "type": "object",
            "required": ["time", "type", "description"],
            "properties": {
                "time": {"type": "string"},
                "type": {"type": "string"},
                "description": {"type": "string"},
                "class": {"type": "string"},
                "location": {"type": "string"},
                "teacher_name": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
