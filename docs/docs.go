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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/subscriptions": {
            "post": {
                "security": [{"Bearer": []}],
                "description": "Enroll the caller in a meal plan and generate the delivery schedule",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Subscriptions"],
                "summary": "Create meal subscription",
                "parameters": [
                    {
                        "description": "Subscription request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.CreateSubscriptionRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/subscriptions/me": {
            "get": {
                "security": [{"Bearer": []}],
                "description": "Return the most recently created subscription of the caller in any status",
                "produces": ["application/json"],
                "tags": ["Subscriptions"],
                "summary": "Get my latest subscription",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/admin/subscriptions": {
            "get": {
                "security": [{"Bearer": []}],
                "description": "List meal subscriptions with owner details, optionally filtered by status or user",
                "produces": ["application/json"],
                "tags": ["Admin Subscriptions"],
                "summary": "List subscriptions",
                "parameters": [
                    {"enum": ["pending", "active", "scheduled", "paused", "cancelled", "completed"], "type": "string", "description": "Subscription status", "name": "status", "in": "query"},
                    {"type": "integer", "description": "Owner user ID", "name": "user_id", "in": "query"},
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Page size", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        },
        "/admin/subscriptions/{sid}/deliveries/{day_index}/deliver": {
            "post": {
                "security": [{"Bearer": []}],
                "description": "Mark the day at day_index (0-based) delivered and recalculate progress. Repeating the call is a no-op success.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin Subscriptions"],
                "summary": "Mark delivery as delivered",
                "parameters": [
                    {"type": "string", "description": "Subscription ID (msub_xxx)", "name": "sid", "in": "path", "required": true},
                    {"type": "integer", "description": "Zero-based delivery index", "name": "day_index", "in": "path", "required": true},
                    {"description": "Delivery notes", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/subscription.MarkDeliveredRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.APIResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/utils.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.CreateSubscriptionRequest": {
            "type": "object",
            "properties": {
                "plan": {"type": "string", "example": "weekly"},
                "payment_method": {"type": "string", "example": "cod"},
                "start_date": {"type": "string", "example": "2024-01-01"},
                "preferences": {"$ref": "#/definitions/handlers.PreferencesRequest"}
            }
        },
        "handlers.PreferencesRequest": {
            "type": "object",
            "properties": {
                "diet_type": {"type": "string", "example": "veg"},
                "spice_level": {"type": "string", "example": "medium"},
                "delivery_time": {"type": "string", "example": "lunch"}
            }
        },
        "subscription.MarkDeliveredRequest": {
            "type": "object",
            "properties": {
                "notes": {"type": "string", "example": "Left at the gate"}
            }
        },
        "utils.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"$ref": "#/definitions/utils.ErrorInfo"},
                "message": {"type": "string"}
            }
        },
        "utils.ErrorInfo": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "Bearer": {
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Meal Subscription API",
	Description:      "Meal subscription enrollment and delivery progress tracking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
