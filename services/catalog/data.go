package catalog

import "reservo/models"

// Demo catalog used until a tenant provisions real data.
var defaultServices = []models.Service{
	{ID: "1", Name: "Masaje Relajante", Description: "60 minutos de relajación", DurationMinutes: 60, Price: 45000, Active: true},
	{ID: "2", Name: "Consulta Dermatológica", Description: "Evaluación con especialista", DurationMinutes: 30, Price: 35000, Active: true},
	{ID: "3", Name: "Limpieza Facial", Description: "Tratamiento facial completo", DurationMinutes: 45, Price: 28000, Active: true},
	{ID: "4", Name: "Yoga Personal", Description: "Sesión personalizada 1:1", DurationMinutes: 60, Price: 32000, Active: true},
}

var defaultProviders = []models.Provider{
	{ID: "p1", Name: "Dra. Ana López", Bio: "Especialista en medicina general", Timezone: "America/Santiago", Active: true, ServiceIDs: []string{"1", "2"}},
	{ID: "p2", Name: "Carlos Ruiz", Bio: "Masajista terapéutico", Timezone: "America/Santiago", Active: true, ServiceIDs: []string{"1"}},
	{ID: "p3", Name: "Laura M.", Bio: "Instructora de Yoga", Timezone: "America/Santiago", Active: true, ServiceIDs: []string{"4"}},
}
