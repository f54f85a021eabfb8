// Package docs holds the OpenAPI description of the SMS API, registered with
// swag so echo-swagger can serve it. Regenerate with `swag init -g cmd/api/main.go`.
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
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.loginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/menu": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["menu"],
                "summary": "Menu of the authenticated user",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Section"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/menu-catalog": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["menu"],
                "summary": "Full navigation catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.MenuItem"}}}
                }
            }
        },
        "/roles/{id}/access-entries": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["menu"],
                "summary": "Access entries of a role",
                "parameters": [{"type": "integer", "description": "Role id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.AccessEntry"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/roles/{id}/menu": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["menu"],
                "summary": "Menu visible to a role",
                "parameters": [{"type": "integer", "description": "Role id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Section"}}}
                }
            }
        }
    },
    "definitions": {
        "domain.AccessEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "role_id": {"type": "integer"},
                "menu_item_id": {"type": "integer"},
                "state": {"type": "string", "enum": ["enabled", "disabled"]},
                "label": {"type": "string"}
            }
        },
        "domain.MenuItem": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "parent_id": {"type": "integer"},
                "kind": {"type": "string", "enum": ["section", "leaf"]},
                "label": {"type": "string"},
                "icon": {"type": "string"},
                "link_target": {"type": "string"},
                "status": {"type": "string", "enum": ["ACTIVO", "INACTIVO"]}
            }
        },
        "domain.Section": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "label": {"type": "string"},
                "icon": {"type": "string"},
                "leaves": {"type": "array", "items": {"$ref": "#/definitions/domain.VisibleLeaf"}}
            }
        },
        "domain.VisibleLeaf": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "label": {"type": "string"},
                "icon": {"type": "string"},
                "link_target": {"type": "string"},
                "view": {"type": "string"}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id_usuario": {"type": "integer"},
                "nombre": {"type": "string"},
                "username": {"type": "string"},
                "id_area": {"type": "integer"},
                "id_rol": {"type": "integer"},
                "rol": {"type": "string"},
                "estado": {"type": "string"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.User"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/sms",
	Schemes:          []string{},
	Title:            "SMS API",
	Description:      "Backend of the sectoral monitoring system: menus, catalogs, indicators and tracking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
