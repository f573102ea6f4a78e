package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus Services API",
        "description": "Classroom booking, faculty and tuition fee services",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Classrooms", "description": "Classroom roster and booking"},
        {"name": "Faculties", "description": "Faculty registry and certificates"},
        {"name": "Articles", "description": "Faculty news articles"},
        {"name": "TuitionFees", "description": "Tuition fee schedules and payment"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/classrooms": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "List classrooms of a faculty",
                "parameters": [
                    {"name": "faculty_id", "in": "query", "type": "integer", "required": true},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Classroom"}}},
                    "400": {"description": "Missing faculty_id", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/classrooms/schedules": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "List classrooms with their schedules",
                "parameters": [
                    {"name": "faculty_id", "in": "query", "type": "integer", "required": true},
                    {"name": "course_edition_id", "in": "query", "type": "string", "required": false}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Missing faculty_id", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/classrooms/{id}": {
            "patch": {
                "tags": ["Classrooms"],
                "summary": "Toggle classroom availability",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateClassroomRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Classroom"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/classrooms/{id}/schedules": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "List reservations of one classroom",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Schedule"}}},
                    "404": {"description": "Classroom not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/classrooms/{id}/book": {
            "post": {
                "tags": ["Classrooms"],
                "summary": "Book a classroom for a course slot",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateScheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Schedule"}},
                    "400": {"description": "Slot occupied or invalid interval", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Classroom not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/faculties": {
            "get": {
                "tags": ["Faculties"],
                "summary": "List faculties",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Faculty"}}}
                }
            },
            "post": {
                "tags": ["Faculties"],
                "summary": "Create faculty",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateFacultyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Faculty"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/faculties/{id}": {
            "get": {
                "tags": ["Faculties"],
                "summary": "Get faculty by id",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Faculty"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "delete": {
                "tags": ["Faculties"],
                "summary": "Archive faculty",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Archived"},
                    "400": {"description": "Already archived", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/certificates": {
            "post": {
                "tags": ["Faculties"],
                "summary": "Issue a faculty certificate PDF",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCertificateRequest"}}
                ],
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "PDF document"},
                    "404": {"description": "Faculty not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/articles": {
            "get": {
                "tags": ["Articles"],
                "summary": "List articles",
                "parameters": [
                    {"name": "faculty_id", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Article"}}}
                }
            },
            "post": {
                "tags": ["Articles"],
                "summary": "Publish article",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateArticleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Article"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/articles/{id}": {
            "get": {
                "tags": ["Articles"],
                "summary": "Get article by id",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Article"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "delete": {
                "tags": ["Articles"],
                "summary": "Delete article",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/tuition-fees": {
            "get": {
                "tags": ["TuitionFees"],
                "summary": "List tuition fees of a student",
                "parameters": [
                    {"name": "student_id", "in": "query", "type": "integer", "required": true},
                    {"name": "degree_id", "in": "query", "type": "integer"},
                    {"name": "is_paid", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/TuitionFee"}}},
                    "400": {"description": "Missing student_id", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "post": {
                "tags": ["TuitionFees"],
                "summary": "Open the fee schedule for an enrollment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTuitionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "array", "items": {"$ref": "#/definitions/TuitionFee"}}},
                    "404": {"description": "Degree not found", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "503": {"description": "Pricing service unavailable", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/tuition-fees/{id}": {
            "get": {
                "tags": ["TuitionFees"],
                "summary": "Get tuition fee by id",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TuitionFee"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/tuition-fees/{id}/pay": {
            "post": {
                "tags": ["TuitionFees"],
                "summary": "Settle a tuition fee",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TuitionFee"}},
                    "400": {"description": "Already paid", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/tuition-fees/{id}/receipt": {
            "get": {
                "tags": ["TuitionFees"],
                "summary": "Download the payment receipt PDF",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "PDF document"},
                    "400": {"description": "Fee not paid yet", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "Classroom": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "is_available": {"type": "boolean"},
                "faculty_id": {"type": "integer"},
                "seats": {"type": "integer"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "Schedule": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "classroom_id": {"type": "string"},
                "course_edition_id": {"type": "string"},
                "kind": {"type": "string", "enum": ["CLASS", "EXAM"]},
                "start": {"type": "string", "format": "date-time"},
                "end": {"type": "string", "format": "date-time"}
            }
        },
        "CreateScheduleRequest": {
            "type": "object",
            "properties": {
                "course_edition_id": {"type": "string"},
                "kind": {"type": "string", "enum": ["CLASS", "EXAM"]},
                "start": {"type": "string", "format": "date-time"},
                "end": {"type": "string", "format": "date-time"}
            },
            "required": ["course_edition_id", "kind", "start", "end"]
        },
        "UpdateClassroomRequest": {
            "type": "object",
            "properties": {
                "is_available": {"type": "boolean"}
            },
            "required": ["is_available"]
        },
        "Faculty": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "is_active": {"type": "boolean"},
                "location": {"$ref": "#/definitions/Location"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "Location": {
            "type": "object",
            "properties": {
                "city": {"type": "string"},
                "country": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"}
            }
        },
        "CreateFacultyRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "location": {"$ref": "#/definitions/Location"}
            },
            "required": ["name"]
        },
        "CreateCertificateRequest": {
            "type": "object",
            "properties": {
                "faculty_id": {"type": "string"},
                "student_name": {"type": "string"}
            },
            "required": ["faculty_id", "student_name"]
        },
        "Article": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "faculty_id": {"type": "string"},
                "title": {"type": "string"},
                "content": {"type": "string"},
                "author": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "CreateArticleRequest": {
            "type": "object",
            "properties": {
                "faculty_id": {"type": "string"},
                "title": {"type": "string"},
                "content": {"type": "string"},
                "author": {"type": "string"}
            },
            "required": ["faculty_id", "title", "content", "author"]
        },
        "TuitionFee": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "degree_id": {"type": "integer"},
                "student_id": {"type": "integer"},
                "amount": {"type": "string", "example": "250.00"},
                "deadline": {"type": "string", "format": "date"},
                "is_paid": {"type": "boolean"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "CreateTuitionRequest": {
            "type": "object",
            "properties": {
                "degree_id": {"type": "integer"},
                "student_id": {"type": "integer"},
                "payment_plan": {"type": "string", "enum": ["MONTHLY", "ANNUAL"]}
            },
            "required": ["degree_id", "student_id", "payment_plan"]
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "details": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
