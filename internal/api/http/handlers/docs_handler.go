package handlers

import "github.com/gofiber/fiber/v2"

// DocsHandler serves the API description. The document is static and public,
// so no identity is required to fetch it.
type DocsHandler struct {
	serviceName string
	version     string
}

// NewDocsHandler returns a new handler instance.
func NewDocsHandler(serviceName, version string) *DocsHandler {
	return &DocsHandler{serviceName: serviceName, version: version}
}

// OpenAPI handles GET /docs/openapi.json.
func (h *DocsHandler) OpenAPI(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"openapi": "3.0.3",
		"info": fiber.Map{
			"title":   h.serviceName,
			"version": h.version,
		},
		"paths": fiber.Map{
			"/auth/login": fiber.Map{
				"post": fiber.Map{"summary": "Authenticate and receive a bearer token"},
			},
			"/api/employees": fiber.Map{
				"get":  fiber.Map{"summary": "List employees with task counts (admin)"},
				"post": fiber.Map{"summary": "Create an employee (admin)"},
			},
			"/api/employees/{id}": fiber.Map{
				"put":    fiber.Map{"summary": "Update an employee (admin)"},
				"delete": fiber.Map{"summary": "Delete an employee (admin)"},
			},
			"/api/employees/{id}/password": fiber.Map{
				"put": fiber.Map{"summary": "Update an employee password (admin)"},
			},
			"/api/tasks": fiber.Map{
				"get":  fiber.Map{"summary": "List tasks"},
				"post": fiber.Map{"summary": "Create a task"},
			},
			"/api/tasks/user/{employeeId}": fiber.Map{
				"get": fiber.Map{"summary": "List tasks assigned to an employee"},
			},
			"/api/tasks/{id}": fiber.Map{
				"put":    fiber.Map{"summary": "Update a task"},
				"delete": fiber.Map{"summary": "Delete a task"},
			},
		},
		"components": fiber.Map{
			"securitySchemes": fiber.Map{
				"bearerAuth": fiber.Map{
					"type":         "http",
					"scheme":       "bearer",
					"bearerFormat": "JWT",
				},
			},
		},
	})
}
