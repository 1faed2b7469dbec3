// Package docs holds the swagger document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@sandra.app"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/configs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "List config entries",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Config"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Create or update a config entry",
                "parameters": [
                    {"description": "Config payload", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SetConfigRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Config"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/configs/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["config"],
                "summary": "Get a config entry",
                "parameters": [
                    {"type": "string", "description": "Config ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Config"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "tags": ["config"],
                "summary": "Soft-delete a config entry",
                "parameters": [
                    {"type": "string", "description": "Config ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/features": {
            "get": {
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "Features enabled for this request",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/mail/template": {
            "post": {
                "description": "Renders the named template with data and delivers it from the fixed sender address.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["mail"],
                "summary": "Send a templated mail",
                "parameters": [
                    {"description": "Mail payload", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.TemplateMail"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.MailSendResult"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthClaims"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/sandra/token": {
            "post": {
                "description": "Signs a fresh assertion for calling the Sandra service. Nothing is cached.",
                "produces": ["application/json"],
                "tags": ["sandra"],
                "summary": "Issue a Sandra assertion",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "dto.AuthClaims": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "roles": {"type": "array", "items": {"type": "string"}},
                "sub": {"type": "string"},
                "exp": {"type": "integer"}
            }
        },
        "dto.MailSendResult": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "email": {"type": "string"},
                "status": {"type": "string"},
                "reject_reason": {"type": "string"},
                "queued_reason": {"type": "string"}
            }
        },
        "dto.SetConfigRequest": {
            "type": "object",
            "required": ["key"],
            "properties": {
                "key": {"type": "string", "maxLength": 255},
                "value": {"type": "string"}
            }
        },
        "dto.TemplateMail": {
            "type": "object",
            "required": ["subject", "template", "to"],
            "properties": {
                "to": {"type": "string"},
                "subject": {"type": "string"},
                "text": {"type": "string"},
                "template": {"type": "string"},
                "data": {"type": "object", "additionalProperties": true},
                "base_url": {"type": "string"}
            }
        },
        "model.Config": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "key": {"type": "string"},
                "value": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"},
                "deleted_at": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:4000",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Sandra Backend API",
	Description:      "Config, mail and Sandra helper endpoints.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
