// Package docs holds the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
                "tags": ["auth"],
                "summary": "User login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Login successful", "schema": {"$ref": "#/definitions/dto.TokenResponse"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "429": {"description": "Too many login attempts", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Health check",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Healthy"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/dashboard/overview": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["dashboard"],
                "summary": "Dashboard overview",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Overview", "schema": {"$ref": "#/definitions/dto.DashboardOverviewResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/students": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["students"],
                "summary": "Search students",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Search term", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Students", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.StudentSummaryResponse"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["students"],
                "summary": "Create a student",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Student created"},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/students/bulk-upload": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["students"],
                "summary": "Bulk import students from CSV",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "file", "description": "CSV file", "name": "file", "in": "formData", "required": true},
                    {"enum": ["best_effort", "atomic"], "type": "string", "name": "mode", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Import finished"},
                    "400": {"description": "Malformed CSV or atomic import aborted"}
                }
            }
        },
        "/students/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["students"],
                "summary": "Get student by ID",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Student with vaccinations"},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["students"],
                "summary": "Update a student",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "Student updated"},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/students/{id}/vaccination": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["students"],
                "summary": "Record a vaccination",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.RecordVaccinationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Vaccination recorded"},
                    "400": {"description": "Invalid request or duplicate vaccination", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/drives": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["drives"],
                "summary": "List vaccination drives",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Drives", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.DriveResponse"}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["drives"],
                "summary": "Schedule a vaccination drive",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.DriveRequest"}}
                ],
                "responses": {
                    "201": {"description": "Drive created"},
                    "400": {"description": "Invalid data, date too soon or duplicate drive", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/drives/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["drives"],
                "summary": "Get drive by ID",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Drive", "schema": {"$ref": "#/definitions/dto.DriveResponse"}},
                    "404": {"description": "Drive not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["drives"],
                "summary": "Update a vaccination drive",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.DriveRequest"}}
                ],
                "responses": {
                    "200": {"description": "Drive updated"},
                    "400": {"description": "Invalid data, past drive or duplicate drive", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Drive not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/reports": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["reports"],
                "summary": "Paginated vaccination report",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "vaccine_name", "in": "query"},
                    {"type": "integer", "default": 1, "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Report page", "schema": {"$ref": "#/definitions/dto.ReportPageResponse"}}
                }
            }
        },
        "/reports/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["reports"],
                "summary": "Export the vaccination report",
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"enum": ["csv", "xlsx"], "type": "string", "default": "csv", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Report file", "schema": {"type": "file"}},
                    "400": {"description": "Unknown format", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.LoginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string", "example": "secret"},
                "username": {"type": "string", "example": "admin"}
            }
        },
        "dto.TokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "expires_in": {"type": "integer", "example": 3600},
                "token_type": {"type": "string", "example": "Bearer"}
            }
        },
        "dto.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "VAL_001"},
                "details": {},
                "field": {"type": "string"},
                "message": {"type": "string"},
                "severity": {"type": "string", "example": "ERROR"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/dto.ErrorDetail"},
                "success": {"type": "boolean", "example": false},
                "timestamp": {"type": "string"}
            }
        },
        "dto.CreateStudentRequest": {
            "type": "object",
            "required": ["grade", "name"],
            "properties": {
                "dob": {"type": "string", "example": "2014-06-01"},
                "drive_name": {"type": "string"},
                "grade": {"type": "string", "example": "5"},
                "name": {"type": "string", "example": "Asha"},
                "vaccinated": {"type": "boolean"},
                "vaccine_name": {"type": "string", "example": "Polio"}
            }
        },
        "dto.UpdateStudentRequest": {
            "type": "object",
            "required": ["grade", "name"],
            "properties": {
                "dob": {"type": "string", "example": "2014-06-01"},
                "grade": {"type": "string", "example": "6"},
                "name": {"type": "string", "example": "Asha"}
            }
        },
        "dto.RecordVaccinationRequest": {
            "type": "object",
            "required": ["vaccine_name"],
            "properties": {
                "drive_name": {"type": "string"},
                "vaccination_date": {"type": "string", "example": "2025-05-01"},
                "vaccine_name": {"type": "string", "example": "Polio"}
            }
        },
        "dto.StudentSummaryResponse": {
            "type": "object",
            "properties": {
                "dob": {"type": "string"},
                "grade": {"type": "string"},
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "vaccination_status": {"type": "string", "example": "Vaccinated"}
            }
        },
        "dto.DriveRequest": {
            "type": "object",
            "required": ["applicable_grades", "available_doses", "drive_date", "drive_name", "vaccine_name"],
            "properties": {
                "applicable_grades": {"type": "string", "example": "5,6"},
                "available_doses": {"type": "integer", "minimum": 0, "example": 100},
                "drive_date": {"type": "string", "example": "2025-07-01"},
                "drive_name": {"type": "string", "example": "Flu Shot 2025"},
                "vaccine_name": {"type": "string", "example": "Flu"}
            }
        },
        "dto.DriveResponse": {
            "type": "object",
            "properties": {
                "applicable_grades": {"type": "string"},
                "available_doses": {"type": "integer"},
                "created_at": {"type": "string"},
                "drive_date": {"type": "string"},
                "drive_name": {"type": "string"},
                "id": {"type": "integer"},
                "updated_at": {"type": "string"},
                "vaccine_name": {"type": "string"}
            }
        },
        "dto.DashboardOverviewResponse": {
            "type": "object",
            "properties": {
                "total_students": {"type": "integer"},
                "upcoming_drives": {"type": "array", "items": {"$ref": "#/definitions/dto.DriveResponse"}},
                "vaccinated_students": {"type": "integer"},
                "vaccination_percentage": {"type": "number"}
            }
        },
        "dto.ReportRowResponse": {
            "type": "object",
            "properties": {
                "drive_name": {"type": "string"},
                "student_class": {"type": "string"},
                "student_id": {"type": "integer"},
                "student_name": {"type": "string"},
                "vaccinated": {"type": "boolean"},
                "vaccination_date": {"type": "string"},
                "vaccine_name": {"type": "string"}
            }
        },
        "dto.ReportPageResponse": {
            "type": "object",
            "properties": {
                "current_page": {"type": "integer"},
                "data": {"type": "array", "items": {"$ref": "#/definitions/dto.ReportRowResponse"}},
                "limit": {"type": "integer"},
                "total_pages": {"type": "integer"},
                "total_records": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "School Vaccination Portal API",
	Description:      "Tracks students, vaccination drives and vaccination records for a school coordinator.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
