// Package api holds the swagger document served at /docs.
//
// The document is maintained by hand. It lists every route of the API with
// its path parameters and the error body, request and response bodies are
// described by the swag annotations on the handlers in
// internal/controllers/v1. Routes added there must be added here too,
// TestDocs in internal/router checks that the document is served.
package api

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
        "/": {
            "get": {"tags": ["General"], "summary": "API root", "responses": {"200": {"description": "OK"}}},
            "options": {"tags": ["General"], "summary": "Allowed HTTP verbs", "responses": {"204": {"description": "No Content"}}}
        },
        "/healthz": {
            "get": {"tags": ["General"], "summary": "Get health", "responses": {"204": {"description": "No Content"}, "503": {"description": "Service Unavailable"}}}
        },
        "/version": {
            "get": {"tags": ["General"], "summary": "API version", "responses": {"200": {"description": "OK"}}}
        },
        "/v1/workspaces/{workspaceId}/budgets": {
            "get": {"tags": ["Budgets"], "summary": "List budgets", "parameters": [{"$ref": "#/parameters/workspaceId"}], "responses": {"200": {"description": "OK"}, "400": {"$ref": "#/responses/error"}}},
            "post": {"tags": ["Budgets"], "summary": "Create budget", "parameters": [{"$ref": "#/parameters/workspaceId"}, {"$ref": "#/parameters/userId"}], "responses": {"201": {"description": "Created"}, "400": {"$ref": "#/responses/error"}, "409": {"$ref": "#/responses/error"}}}
        },
        "/v1/workspaces/{workspaceId}/budgets/active": {
            "get": {"tags": ["Budgets"], "summary": "List active budgets", "parameters": [{"$ref": "#/parameters/workspaceId"}], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/workspaces/{workspaceId}/budgets/archive-expired": {
            "post": {"tags": ["Budgets"], "summary": "Archive expired budgets", "parameters": [{"$ref": "#/parameters/workspaceId"}], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/workspaces/{workspaceId}/budgets/{id}": {
            "get": {"tags": ["Budgets"], "summary": "Get budget", "parameters": [{"$ref": "#/parameters/workspaceId"}, {"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "404": {"$ref": "#/responses/error"}}},
            "patch": {"tags": ["Budgets"], "summary": "Update budget", "parameters": [{"$ref": "#/parameters/workspaceId"}, {"$ref": "#/parameters/id"}, {"$ref": "#/parameters/userId"}], "responses": {"200": {"description": "OK"}, "403": {"$ref": "#/responses/error"}, "404": {"$ref": "#/responses/error"}}},
            "delete": {"tags": ["Budgets"], "summary": "Delete budget", "parameters": [{"$ref": "#/parameters/workspaceId"}, {"$ref": "#/parameters/id"}, {"$ref": "#/parameters/userId"}], "responses": {"204": {"description": "No Content"}, "403": {"$ref": "#/responses/error"}, "404": {"$ref": "#/responses/error"}}}
        },
        "/v1/workspaces/{workspaceId}/budgets/{id}/activate": {
            "post": {"tags": ["Budgets"], "summary": "Activate budget", "parameters": [{"$ref": "#/parameters/workspaceId"}, {"$ref": "#/parameters/id"}, {"$ref": "#/parameters/userId"}], "responses": {"200": {"description": "OK"}, "409": {"$ref": "#/responses/error"}}}
        },
        "/v1/workspaces/{workspaceId}/budgets/{id}/archive": {
            "post": {"tags": ["Budgets"], "summary": "Archive budget", "parameters": [{"$ref": "#/parameters/workspaceId"}, {"$ref": "#/parameters/id"}, {"$ref": "#/parameters/userId"}], "responses": {"200": {"description": "OK"}, "409": {"$ref": "#/responses/error"}}}
        },
        "/v1/workspaces/{workspaceId}/budgets/{id}/allocations": {
            "get": {"tags": ["Allocations"], "summary": "List allocations", "parameters": [{"$ref": "#/parameters/workspaceId"}, {"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Allocations"], "summary": "Create allocation", "parameters": [{"$ref": "#/parameters/workspaceId"}, {"$ref": "#/parameters/id"}, {"$ref": "#/parameters/userId"}], "responses": {"201": {"description": "Created"}, "400": {"$ref": "#/responses/error"}}}
        },
        "/v1/workspaces/{workspaceId}/allocations/{id}": {
            "get": {"tags": ["Allocations"], "summary": "Get allocation", "parameters": [{"$ref": "#/parameters/workspaceId"}, {"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["Allocations"], "summary": "Update allocation", "parameters": [{"$ref": "#/parameters/workspaceId"}, {"$ref": "#/parameters/id"}, {"$ref": "#/parameters/userId"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Allocations"], "summary": "Delete allocation", "parameters": [{"$ref": "#/parameters/workspaceId"}, {"$ref": "#/parameters/id"}, {"$ref": "#/parameters/userId"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/v1/workspaces/{workspaceId}/allocations/{id}/spent": {
            "post": {"tags": ["Allocations"], "summary": "Record spend", "parameters": [{"$ref": "#/parameters/workspaceId"}, {"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/workspaces/{workspaceId}/alerts": {
            "get": {"tags": ["Alerts"], "summary": "List alerts", "parameters": [{"$ref": "#/parameters/workspaceId"}], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/workspaces/{workspaceId}/alerts/unread": {
            "get": {"tags": ["Alerts"], "summary": "List unread alerts", "parameters": [{"$ref": "#/parameters/workspaceId"}], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/workspaces/{workspaceId}/alerts/{id}/read": {
            "post": {"tags": ["Alerts"], "summary": "Mark alert as read", "parameters": [{"$ref": "#/parameters/workspaceId"}, {"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/workspaces/{workspaceId}/alerts/{id}/notified": {
            "post": {"tags": ["Alerts"], "summary": "Mark alert as notified", "parameters": [{"$ref": "#/parameters/workspaceId"}, {"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "409": {"$ref": "#/responses/error"}}}
        },
        "/v1/workspaces/{workspaceId}/spending-limits": {
            "get": {"tags": ["Spending Limits"], "summary": "List spending limits", "parameters": [{"$ref": "#/parameters/workspaceId"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Spending Limits"], "summary": "Create spending limit", "parameters": [{"$ref": "#/parameters/workspaceId"}], "responses": {"201": {"description": "Created"}, "409": {"$ref": "#/responses/error"}}}
        },
        "/v1/workspaces/{workspaceId}/spending-limits/applicable": {
            "get": {"tags": ["Spending Limits"], "summary": "List applicable spending limits", "parameters": [{"$ref": "#/parameters/workspaceId"}], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/workspaces/{workspaceId}/spending-limits/validate": {
            "post": {"tags": ["Spending Limits"], "summary": "Validate expense", "parameters": [{"$ref": "#/parameters/workspaceId"}], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/workspaces/{workspaceId}/spending-limits/{id}": {
            "get": {"tags": ["Spending Limits"], "summary": "Get spending limit", "parameters": [{"$ref": "#/parameters/workspaceId"}, {"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["Spending Limits"], "summary": "Update spending limit", "parameters": [{"$ref": "#/parameters/workspaceId"}, {"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Spending Limits"], "summary": "Delete spending limit", "parameters": [{"$ref": "#/parameters/workspaceId"}, {"$ref": "#/parameters/id"}], "responses": {"204": {"description": "No Content"}}}
        },
        "/v1/workspaces/{workspaceId}/spending-limits/{id}/activate": {
            "post": {"tags": ["Spending Limits"], "summary": "Activate spending limit", "parameters": [{"$ref": "#/parameters/workspaceId"}, {"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "409": {"$ref": "#/responses/error"}}}
        },
        "/v1/workspaces/{workspaceId}/spending-limits/{id}/deactivate": {
            "post": {"tags": ["Spending Limits"], "summary": "Deactivate spending limit", "parameters": [{"$ref": "#/parameters/workspaceId"}, {"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "409": {"$ref": "#/responses/error"}}}
        }
    },
    "parameters": {
        "workspaceId": {"name": "workspaceId", "in": "path", "required": true, "type": "string", "description": "ID of the workspace"},
        "id": {"name": "id", "in": "path", "required": true, "type": "string", "description": "ID of the resource"},
        "userId": {"name": "X-User-ID", "in": "header", "required": true, "type": "string", "description": "ID of the calling user"}
    },
    "responses": {
        "error": {"description": "Error", "schema": {"$ref": "#/definitions/httperror.Error"}}
    },
    "definitions": {
        "httperror.Error": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "there is no budget with ID 8f4c66b3-8e1d-4e55-9b8b-7d2c1a4ef1b0"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "",
	Description:      "",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
