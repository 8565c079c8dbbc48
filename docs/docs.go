// Package docs holds the OpenAPI description served at /swagger.
package docs

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
        "/api/users/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a user",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/auth.RegisterInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/users/login": {
            "post": {
                "tags": ["auth"],
                "summary": "User login",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/auth.LoginInput"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/admin/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Admin login",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/auth.LoginInput"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/users/deposit": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["ledger"],
                "summary": "Deposit",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ledger.AmountRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/users/withdraw": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["ledger"],
                "summary": "Withdraw",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ledger.AmountRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "422": {"description": "Insufficient funds", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/users/transfer": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["ledger"],
                "summary": "Transfer to another account by phone",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ledger.TransferRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "404": {"description": "Recipient not found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}},
                    "422": {"description": "Insufficient funds", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/users/history": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["ledger"],
                "summary": "Transaction history, newest first",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}}}
            }
        },
        "/api/employee/users": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["employee"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/employee/user/{id}": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["employee"],
                "summary": "Get user by ID",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/admin/create-employee": {
            "post": {
                "security": [{"Bearer": []}],
                "tags": ["admin"],
                "summary": "Create employee",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/admin.CreateEmployeeInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/common.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        },
        "/api/admin/employees": {
            "get": {
                "security": [{"Bearer": []}],
                "tags": ["admin"],
                "summary": "List employees",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}}}
            }
        },
        "/api/admin/employee/{id}": {
            "delete": {
                "security": [{"Bearer": []}],
                "tags": ["admin"],
                "summary": "Remove employee",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ProblemDetails"}}
                }
            }
        }
    },
    "definitions": {
        "auth.RegisterInput": {
            "type": "object",
            "required": ["name", "phone", "aadhaar", "accountType", "password"],
            "properties": {
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "aadhaar": {"type": "string"},
                "accountType": {"type": "string", "enum": ["savings", "current"]},
                "password": {"type": "string"}
            }
        },
        "auth.LoginInput": {
            "type": "object",
            "required": ["phone", "password"],
            "properties": {"phone": {"type": "string"}, "password": {"type": "string"}}
        },
        "admin.CreateEmployeeInput": {
            "type": "object",
            "required": ["name", "phone", "aadhaar", "password"],
            "properties": {
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "aadhaar": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ledger.AmountRequest": {
            "type": "object",
            "properties": {"amount": {"type": "number", "example": 500}}
        },
        "ledger.TransferRequest": {
            "type": "object",
            "required": ["recipientPhone"],
            "properties": {"recipientPhone": {"type": "string"}, "amount": {"type": "number", "example": 300}}
        },
        "common.Response": {
            "type": "object",
            "properties": {"status": {"type": "integer"}, "message": {"type": "string"}, "data": {}}
        },
        "common.ProblemDetails": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "instance": {"type": "string"},
                "errors": {}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Ledger API",
	Description:      "Multi-role banking ledger: users move money, employees inspect accounts, admins manage employees.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
