// Package docs registers the OpenAPI document served under /swagger/*.
// Keep it in step with the swag annotations on the handlers.
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
        "/auth/login": {
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
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new player",
                "parameters": [
                    {
                        "description": "Registration details",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.registerRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/game/history": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Caller's statistics and recent sessions",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Maximum sessions (default 20, capped at 50)",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.historyResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/game/leaderboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Top sessions by score",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Maximum entries (default 50, capped at 100)",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.leaderboardResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/game/session": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["game"],
                "summary": "Submit a finished game session",
                "parameters": [
                    {
                        "description": "Session result",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.createSessionRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.createSessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.GameSession": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "duration": {"type": "integer"},
                "id": {"type": "string"},
                "score": {"type": "integer"},
                "userId": {"type": "string"},
                "waveReached": {"type": "integer"}
            }
        },
        "domain.PublicUser": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "domain.RankedEntry": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "duration": {"type": "integer"},
                "rank": {"type": "integer"},
                "score": {"type": "integer"},
                "username": {"type": "string"},
                "waveReached": {"type": "integer"}
            }
        },
        "domain.UserStats": {
            "type": "object",
            "properties": {
                "bestWave": {"type": "integer"},
                "highScore": {"type": "integer"},
                "totalGames": {"type": "integer"},
                "totalPlayTime": {"type": "integer"}
            }
        },
        "handler.authResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/domain.PublicUser"}
            }
        },
        "handler.createSessionRequest": {
            "type": "object",
            "required": ["duration", "score", "waveReached"],
            "properties": {
                "duration": {"type": "integer", "maximum": 86400, "minimum": 0},
                "score": {"type": "integer", "maximum": 1000000, "minimum": 0},
                "waveReached": {"type": "integer", "maximum": 1000, "minimum": 0}
            }
        },
        "handler.createSessionResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "session": {"$ref": "#/definitions/handler.sessionView"}
            }
        },
        "handler.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "handler.historyResponse": {
            "type": "object",
            "properties": {
                "history": {"type": "array", "items": {"$ref": "#/definitions/domain.GameSession"}},
                "stats": {"$ref": "#/definitions/domain.UserStats"}
            }
        },
        "handler.leaderboardResponse": {
            "type": "object",
            "properties": {
                "leaderboard": {"type": "array", "items": {"$ref": "#/definitions/domain.RankedEntry"}}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["email", "password", "username"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "username": {"type": "string", "maxLength": 30, "minLength": 3}
            }
        },
        "handler.sessionView": {
            "type": "object",
            "properties": {
                "createdAt": {"type": "string"},
                "duration": {"type": "integer"},
                "id": {"type": "string"},
                "score": {"type": "integer"},
                "waveReached": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT.",
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
	Title:            "Wavegame API",
	Description:      "Player accounts, validated game sessions and leaderboards for the wave game client.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
