package workflow

import (
	"strings"

	"github.com/chris/tailorshop-ledger/pkg/models"
)

type route struct {
	stage    models.Stage
	category models.GarmentCategory
}

var allCategories = []models.GarmentCategory{models.CategoryShirt, models.CategoryPant, models.CategoryCoat}

// routes maps the stage a unit enters, and its garment category, to the
// role that works it.
var routes = func() map[route]models.Role {
	m := make(map[route]models.Role)
	uniform := map[models.Stage]models.Role{
		models.StageMeasurement: models.RoleMeasurement,
		models.StageCutting:     models.RoleCutting,
		models.StageFinishing:   models.RoleFinishing,
		models.StagePress:       models.RolePress,
		models.StageReady:       models.RoleDelivery,
	}
	for stage, role := range uniform {
		for _, c := range allCategories {
			m[route{stage, c}] = role
		}
	}
	m[route{models.StageSewing, models.CategoryShirt}] = models.RoleShirtMaker
	m[route{models.StageSewing, models.CategoryPant}] = models.RolePantMaker
	m[route{models.StageSewing, models.CategoryCoat}] = models.RoleCoatMaker
	return m
}()

// RoleFor returns the role that works a unit of category c in stage s.
func RoleFor(s models.Stage, c models.GarmentCategory) (models.Role, bool) {
	role, ok := routes[route{s, c}]
	return role, ok
}

// garmentCategories classifies garment type names. Keys are lower case.
var garmentCategories = map[string]models.GarmentCategory{
	"shirt":    models.CategoryShirt,
	"kurta":    models.CategoryShirt,
	"safari":   models.CategoryShirt,
	"pant":     models.CategoryPant,
	"trouser":  models.CategoryPant,
	"jeans":    models.CategoryPant,
	"pyjama":   models.CategoryPant,
	"coat":     models.CategoryCoat,
	"blazer":   models.CategoryCoat,
	"jacket":   models.CategoryCoat,
	"suit":     models.CategoryCoat,
	"sherwani": models.CategoryCoat,
	"jodhpuri": models.CategoryCoat,
}

// CategoryOf classifies a garment type by exact, case-insensitive name.
func CategoryOf(garmentType string) (models.GarmentCategory, bool) {
	c, ok := garmentCategories[strings.ToLower(strings.TrimSpace(garmentType))]
	return c, ok
}
