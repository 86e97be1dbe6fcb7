// Package docs holds the OpenAPI description served at /swagger/.
// Regenerate with: swag init -g cmd/app/main.go -o docs
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
        "/api/admin/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/ratelimit.LimitResponse"}}
                }
            }
        },
        "/api/admin/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log out",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SuccessResponse"}}
                }
            }
        },
        "/api/admin/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current admin",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/balance": {
            "get": {
                "produces": ["application/json"],
                "tags": ["balance"],
                "summary": "Get balance",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.BalanceResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["balance"],
                "summary": "Apply a bet or win",
                "parameters": [
                    {"description": "Amount and action (bet or win)", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.TransactionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.BalanceResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/transactions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["balance"],
                "summary": "Transaction history",
                "parameters": [
                    {"type": "integer", "description": "Max entries (default 20, max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HistoryResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/withdraw": {
            "post": {
                "description": "Limited to a few withdrawals per hour",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["balance"],
                "summary": "Withdraw funds",
                "parameters": [
                    {"description": "Amount to withdraw", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.WithdrawRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.BalanceResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/ratelimit.LimitResponse"}}
                }
            }
        },
        "/api/promotions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["promotions"],
                "summary": "List promotions",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Promotion"}}}
                }
            }
        },
        "/api/promotions/{id}/availability": {
            "get": {
                "produces": ["application/json"],
                "tags": ["promotions"],
                "summary": "Promotion availability",
                "parameters": [
                    {"type": "string", "description": "Promotion ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/promotion.Availability"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "description": "Returns OK if the service is running",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Returns OK if the service is ready to accept traffic (database connected)",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}
                }
            }
        },
        "/version": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Build version",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.VersionInfo"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Promotion": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "active": {"type": "boolean"},
                "timezone": {"type": "string"},
                "days_of_week": {"type": "array", "items": {"type": "integer"}},
                "daily_limit": {"type": "integer"},
                "created_at": {"type": "string"}
            }
        },
        "handler.BalanceResponse": {
            "type": "object",
            "properties": {
                "balance": {"type": "number"},
                "lastTransaction": {"$ref": "#/definitions/handler.TransactionResponse"}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.HistoryResponse": {
            "type": "object",
            "properties": {
                "transactions": {"type": "array", "items": {"$ref": "#/definitions/handler.TransactionResponse"}}
            }
        },
        "handler.LoginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string", "maxLength": 72},
                "username": {"type": "string", "maxLength": 64}
            }
        },
        "handler.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/handler.UserResponse"}
            }
        },
        "handler.SuccessResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handler.TransactionRequest": {
            "type": "object",
            "required": ["action", "amount"],
            "properties": {
                "action": {"type": "string", "enum": ["bet", "win"]},
                "amount": {"type": "number"}
            }
        },
        "handler.TransactionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string"},
                "amount": {"type": "number"},
                "balanceBefore": {"type": "number"},
                "balanceAfter": {"type": "number"},
                "createdAt": {"type": "string"}
            }
        },
        "handler.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "role": {"type": "string"},
                "balance": {"type": "number"}
            }
        },
        "handler.VersionInfo": {
            "type": "object",
            "properties": {
                "version": {"type": "string"},
                "go_version": {"type": "string"},
                "build_time": {"type": "string"},
                "git_commit": {"type": "string"}
            }
        },
        "handler.WithdrawRequest": {
            "type": "object",
            "required": ["amount"],
            "properties": {"amount": {"type": "number"}}
        },
        "promotion.Availability": {
            "type": "object",
            "properties": {
                "promotionId": {"type": "string"},
                "available": {"type": "boolean"},
                "canUse": {"type": "boolean"}
            }
        },
        "ratelimit.LimitError": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "code": {"type": "string"},
                "nextAttemptIn": {"type": "integer"},
                "strikes": {"type": "integer"}
            }
        },
        "ratelimit.LimitResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/ratelimit.LimitError"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "SpinHall API",
	Description:      "Balance, auth, promotion and real-time endpoints for the SpinHall slots backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
