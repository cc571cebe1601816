// Package docs provides API documentation
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "This service renders city map postcards with personalized messages.",
        "title": "Mapcard API",
        "contact": {},
        "version": "1.0"
    },
    "host": "{{.Host}}",
    "basePath": "/",
    "paths": {
        "/api/generate": {
            "post": {
                "description": "Geocodes the requested city, fetches its street network from OpenStreetMap and renders a two-pane postcard PNG",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["postcards"],
                "summary": "Generate a postcard",
                "parameters": [
                    {
                        "description": "Postcard request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/PostcardRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/GenerateResponse"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/ErrorResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/ErrorResponse"}
                    }
                }
            }
        },
        "/api/themes": {
            "get": {
                "description": "List every available color theme with a preview of its main colors",
                "produces": ["application/json"],
                "tags": ["postcards"],
                "summary": "List themes",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "themes": {
                                    "type": "array",
                                    "items": {"$ref": "#/definitions/ThemeSummary"}
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/ErrorResponse"}
                    }
                }
            }
        },
        "/postcards/{filename}": {
            "get": {
                "description": "Download a previously generated postcard",
                "produces": ["image/png"],
                "tags": ["postcards"],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Postcard filename",
                        "name": "filename",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "PNG image",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {"$ref": "#/definitions/ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "PostcardRequest": {
            "type": "object",
            "required": ["city", "country"],
            "properties": {
                "city": {"type": "string", "example": "Paris"},
                "country": {"type": "string", "example": "France"},
                "theme": {"type": "string", "example": "warm_beige"},
                "distance": {"type": "integer", "example": 8000},
                "message": {"type": "string", "example": "Wish you were here!"},
                "fast": {"type": "boolean", "example": true}
            }
        },
        "GenerateResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "filename": {"type": "string", "example": "paris_warm_beige_20250101_120000.png"},
                "url": {"type": "string", "example": "/static/postcards/paris_warm_beige_20250101_120000.png"}
            }
        },
        "ThemeSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "warm_beige"},
                "name": {"type": "string", "example": "Warm Beige"},
                "description": {"type": "string", "example": "Soft beige tones with warm road colors"},
                "colors": {"$ref": "#/definitions/ThemeColors"}
            }
        },
        "ThemeColors": {
            "type": "object",
            "properties": {
                "bg": {"type": "string", "example": "#F5F1E8"},
                "text": {"type": "string", "example": "#2B2B2B"},
                "water": {"type": "string", "example": "#A8C3BC"},
                "parks": {"type": "string", "example": "#E4E0D0"},
                "road_primary": {"type": "string", "example": "#3E3E3E"}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "", // This will be set from environment
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Mapcard API",
	Description:      "This service renders city map postcards with personalized messages.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
