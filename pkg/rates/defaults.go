package rates

import (
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/shopspring/decimal"
)

func fixed(id, garment string, role models.Role, normal, medium, regular, vip int64) models.Rate {
	return models.Rate{
		Id:          id,
		GarmentType: garment,
		Role:        role,
		Normal:      decimal.NewFromInt(normal),
		Medium:      decimal.NewFromInt(medium),
		Regular:     decimal.NewFromInt(regular),
		VIP:         decimal.NewFromInt(vip),
		RateType:    models.RateFixed,
	}
}

// Defaults is the starter rate table seeded into an empty store.
func Defaults() []models.Rate {
	delivery := fixed("9", "", models.RoleDelivery, 5, 7, 10, 15)
	delivery.RateType = models.RatePercentage

	return []models.Rate{
		fixed("1", "Shirt", models.RoleMeasurement, 30, 40, 50, 70),
		fixed("2", "Shirt", models.RoleCutting, 50, 60, 80, 100),
		fixed("3", "Shirt", models.RoleShirtMaker, 200, 250, 300, 450),
		fixed("4", "Pant", models.RoleMeasurement, 30, 40, 50, 70),
		fixed("5", "Pant", models.RoleCutting, 50, 60, 80, 100),
		fixed("6", "Pant", models.RolePantMaker, 200, 250, 300, 450),
		fixed("7", "", models.RoleFinishing, 10, 15, 20, 30),
		fixed("8", "", models.RolePress, 15, 20, 25, 40),
		delivery,
	}
}
