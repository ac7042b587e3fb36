// Package docs holds the OpenAPI document served by the Swagger UI.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/handler.MessageResponse"}
                    }
                }
            }
        },
        "/users/setup": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Verify the bearer token with the identity provider and create or update the matching local user",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Set up the current user",
                "responses": {
                    "200": {
                        "description": "User set up",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/handler.Response"},
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {"$ref": "#/definitions/handler.SetupResponse"}
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Missing, malformed or rejected token",
                        "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}
                    },
                    "422": {
                        "description": "Identity could not be reconciled",
                        "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}
                    },
                    "500": {
                        "description": "Internal error",
                        "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}
                    },
                    "502": {
                        "description": "Identity provider error",
                        "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}
                    },
                    "503": {
                        "description": "Identity provider unreachable",
                        "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "550e8400-e29b-41d4-a716-446655440000"},
                "subject_id": {"type": "string", "example": "110169484474386276334"},
                "name": {"type": "string", "example": "Ann Example"},
                "email": {"type": "string", "example": "ann@example.com"},
                "picture_url": {"type": "string", "example": "https://lh3.googleusercontent.com/a/photo.jpg"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "handler.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "EMPTY_TOKEN"},
                "message": {"type": "string", "example": "token is missing"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.APIError"},
                "success": {"type": "boolean", "example": false}
            }
        },
        "handler.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "OK"}
            }
        },
        "handler.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "success": {"type": "boolean", "example": true}
            }
        },
        "handler.SetupResponse": {
            "type": "object",
            "properties": {
                "is_new_user": {"type": "boolean", "example": true},
                "user": {"$ref": "#/definitions/domain.User"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Google OAuth access token, as \"Bearer <token>\"",
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "idsync API",
	Description:      "Resolves Google bearer tokens to local user records.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
