package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin RoleType = "admin"
)

// Vaccination status labels shown in search results
const (
	StatusVaccinated    = "Vaccinated"
	StatusNotVaccinated = "Not Vaccinated"
)
