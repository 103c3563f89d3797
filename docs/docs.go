// Package docs registers the OpenAPI document served at /swagger.
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
        "/api/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.HealthResponse"}}
                }
            }
        },
        "/api/generate-itinerary": {
            "post": {
                "description": "Resolves the destination, gathers attractions, weather and photos, and returns a day-by-day plan. The day count is inclusive of both dates.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Itinerary"],
                "summary": "Generate a travel itinerary",
                "parameters": [
                    {"description": "Trip parameters", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.TripRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ItineraryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/api/chat": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Chat"],
                "summary": "Ask the travel assistant",
                "parameters": [
                    {"description": "Message and conversation", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.ChatRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ChatResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/api/attractions/{location}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Attractions"],
                "summary": "Search attractions",
                "parameters": [
                    {"type": "string", "description": "Free-text location", "name": "location", "in": "path", "required": true},
                    {"type": "integer", "description": "Maximum results (default 10)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.AttractionsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/api/images/{query}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Images"],
                "summary": "Search travel photos",
                "parameters": [
                    {"type": "string", "description": "Search keywords", "name": "query", "in": "path", "required": true},
                    {"type": "integer", "description": "Results per page (default 9)", "name": "per_page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ImagesResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/api/weather/{location}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Weather"],
                "summary": "Daily forecast",
                "parameters": [
                    {"type": "string", "description": "Place name or lat,lon", "name": "location", "in": "path", "required": true},
                    {"type": "integer", "description": "Forecast days (default 7)", "name": "days", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.WeatherResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/api/flights": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Travel"],
                "summary": "Search flight prices",
                "parameters": [
                    {"type": "string", "name": "origin", "in": "query", "required": true},
                    {"type": "string", "name": "destination", "in": "query", "required": true},
                    {"type": "string", "name": "departure_date", "in": "query", "required": true},
                    {"type": "string", "name": "return_date", "in": "query"},
                    {"type": "string", "name": "currency", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.FlightsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/api/hotels": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Travel"],
                "summary": "Search hotel prices",
                "parameters": [
                    {"type": "string", "name": "location", "in": "query", "required": true},
                    {"type": "string", "name": "check_in", "in": "query", "required": true},
                    {"type": "string", "name": "check_out", "in": "query", "required": true},
                    {"type": "string", "name": "currency", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.HotelsResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.TripRequest": {
            "type": "object",
            "properties": {
                "destination": {"type": "string", "example": "Paris, France"},
                "startDate": {"type": "string", "example": "2024-06-01"},
                "endDate": {"type": "string", "example": "2024-06-03"},
                "preferences": {"type": "string", "example": "museums and food"},
                "duration": {"type": "integer", "example": 3}
            }
        },
        "types.Activity": {
            "type": "object",
            "properties": {
                "time": {"type": "string"},
                "activity": {"type": "string"},
                "location": {"type": "string"},
                "duration": {"type": "string"},
                "image_search": {"type": "string"},
                "map_link": {"type": "string"},
                "image": {"type": "string"}
            }
        },
        "types.DayPlan": {
            "type": "object",
            "properties": {
                "day": {"type": "integer"},
                "date": {"type": "string"},
                "title": {"type": "string"},
                "activities": {"type": "array", "items": {"$ref": "#/definitions/types.Activity"}}
            }
        },
        "types.Itinerary": {
            "type": "object",
            "properties": {
                "destination": {"type": "string"},
                "days": {"type": "array", "items": {"$ref": "#/definitions/types.DayPlan"}}
            }
        },
        "types.Attraction": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "category": {"type": "string"},
                "position": {"type": "object", "properties": {"lat": {"type": "number"}, "lon": {"type": "number"}}},
                "address": {"type": "string"},
                "phone": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "types.PhotoAsset": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "url": {"type": "string"},
                "preview": {"type": "string"},
                "tags": {"type": "string"},
                "user": {"type": "string"}
            }
        },
        "types.WeatherDay": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "condition": {"type": "string"},
                "condition_icon": {"type": "string"},
                "max_temp_c": {"type": "integer"},
                "min_temp_c": {"type": "integer"},
                "chance_of_rain": {"type": "integer"}
            }
        },
        "types.ItineraryMetadata": {
            "type": "object",
            "properties": {
                "itinerary_id": {"type": "string"},
                "destination": {"type": "string"},
                "duration": {"type": "integer"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "generated_at": {"type": "string"},
                "source": {"type": "string", "enum": ["ai", "ai_repaired", "fallback"]},
                "repaired_days": {"type": "integer"}
            }
        },
        "types.ItineraryResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "itinerary": {"$ref": "#/definitions/types.Itinerary"},
                "attractions": {"type": "array", "items": {"$ref": "#/definitions/types.Attraction"}},
                "images": {"type": "array", "items": {"$ref": "#/definitions/types.PhotoAsset"}},
                "weather": {"type": "array", "items": {"$ref": "#/definitions/types.WeatherDay"}},
                "metadata": {"$ref": "#/definitions/types.ItineraryMetadata"}
            }
        },
        "types.AttractionsResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "attractions": {"type": "array", "items": {"$ref": "#/definitions/types.Attraction"}}
            }
        },
        "types.ImagesResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "images": {"type": "array", "items": {"$ref": "#/definitions/types.PhotoAsset"}}
            }
        },
        "types.WeatherResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "weather": {
                    "type": "object",
                    "properties": {
                        "location": {"type": "string"},
                        "region": {"type": "string"},
                        "country": {"type": "string"},
                        "forecast": {"type": "array", "items": {"$ref": "#/definitions/types.WeatherDay"}}
                    }
                }
            }
        },
        "types.FlightsResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "flights": {"type": "object"}}
        },
        "types.HotelsResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "hotels": {"type": "array", "items": {"type": "object"}}}
        },
        "types.ChatMessage": {
            "type": "object",
            "properties": {
                "role": {"type": "string", "enum": ["user", "assistant"]},
                "content": {"type": "string"}
            }
        },
        "types.ChatRequest": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "What should I see in Lisbon?"},
                "conversation": {"type": "array", "items": {"$ref": "#/definitions/types.ChatMessage"}}
            }
        },
        "types.ChatResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}}
        },
        "types.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "OK"},
                "message": {"type": "string", "example": "Travel Consultant API is running"}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "error": {"type": "string", "example": "Location not found"},
                "details": {"type": "string"},
                "request_id": {"type": "string"}
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
	Title:            "Travel Consultant API",
	Description:      "Itinerary generation and travel lookups backed by POI, weather, photo, flight and LLM providers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
