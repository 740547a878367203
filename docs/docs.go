// Package docs registers the generated swagger spec.
// Code generated by swag; kept in sync with the handler annotations.
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
        "/actions": {
            "post": {
                "description": "Verifies Telegram initData, resolves the profile and runs one of the closed set of actions: create, update, delete (products) or stats (referrals).",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["webapp"],
                "summary": "Execute a Mini App action",
                "parameters": [
                    {
                        "description": "Action descriptor with initData",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.ActionRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Action result", "schema": {"type": "object"}},
                    "400": {"description": "Malformed body or unsupported action", "schema": {"type": "object"}},
                    "401": {"description": "Invalid initData", "schema": {"type": "object"}},
                    "403": {"description": "Premium subscription required", "schema": {"type": "object"}},
                    "404": {"description": "Profile or product not found", "schema": {"type": "object"}},
                    "500": {"description": "Internal server error", "schema": {"type": "object"}}
                }
            }
        }
    },
    "definitions": {
        "http.ActionRequest": {
            "type": "object",
            "properties": {
                "initData": {"type": "string"},
                "action": {"type": "string", "enum": ["create", "update", "delete", "stats"]},
                "productId": {"type": "string"},
                "product": {"$ref": "#/definitions/models.ProductInput"}
            }
        },
        "models.ProductInput": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "price": {"type": "number"},
                "currency": {"type": "string"},
                "media_url": {"type": "string"},
                "link": {"type": "string"}
            }
        }
    },
    "tags": [
        {
            "description": "Mini App actions - product management and referral statistics",
            "name": "webapp"
        }
    ]
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Mini App Market API",
	Description:      "Backend for the Telegram Mini App marketplace. Every action carries signed initData in the request body.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
