package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type seedService struct {
	name, description, price string
}

var demoServices = []seedService{
	{"Corte de Cabelo", "Estilo personalizado com as últimas tendências.", "60.00"},
	{"Barba", "Modelagem completa para destacar sua masculinidade.", "40.00"},
	{"Pézinho", "Acabamento perfeito para um visual renovado.", "35.00"},
	{"Sobrancelha", "Expressão acentuada com modelagem precisa.", "20.00"},
}

var demoShops = []struct {
	name, address string
}{
	{"Barbearia Vintage", "Rua da Barbearia, 123"},
	{"Corte & Estilo", "Avenida dos Cortes, 456"},
	{"Barba & Navalha", "Praça da Navalha, 789"},
}

// Seed fills an empty catalog with demo barbershops and services. It is a
// no-op once any barbershop exists.
func Seed(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Barbershop{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range demoShops {
			shop := models.Barbershop{
				ID:      uuid.NewString(),
				Name:    s.name,
				Address: s.address,
				Phones:  []string{"(11) 98204-5108"},
			}

			for _, svc := range demoServices {
				shop.Services = append(shop.Services, models.Service{
					ID:          uuid.NewString(),
					Name:        svc.name,
					Description: svc.description,
					Price:       decimal.RequireFromString(svc.price),
				})
			}

			if err := tx.Create(&shop).Error; err != nil {
				return fmt.Errorf("seed %s: %w", s.name, err)
			}
		}
		return nil
	})
}
