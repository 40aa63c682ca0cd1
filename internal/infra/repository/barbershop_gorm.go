package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/barbershop"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

type BarbershopGormRepository struct {
	db *gorm.DB
}

func NewBarbershopGormRepository(db *gorm.DB) *BarbershopGormRepository {
	return &BarbershopGormRepository{db: db}
}

func (r *BarbershopGormRepository) List(
	ctx context.Context,
	order domain.Order,
) ([]models.Barbershop, error) {

	direction := "ASC"
	if order == domain.OrderNameDesc {
		direction = "DESC"
	}

	var shops []models.Barbershop
	if err := r.db.WithContext(ctx).
		Order("name " + direction).
		Order("id ASC").
		Find(&shops).Error; err != nil {
		return nil, fmt.Errorf("list barbershops: %w", err)
	}
	return shops, nil
}

func (r *BarbershopGormRepository) Search(
	ctx context.Context,
	in domain.SearchInput,
) ([]models.Barbershop, error) {

	title := strings.TrimSpace(in.Title)
	service := strings.TrimSpace(in.Service)

	q := r.db.WithContext(ctx).Model(&models.Barbershop{})

	switch {
	case title != "" && service != "":
		q = q.Where(
			"LOWER(name) LIKE ? OR EXISTS (SELECT 1 FROM services s WHERE s.barbershop_id = barbershops.id AND LOWER(s.name) LIKE ?)",
			containsPattern(title), containsPattern(service),
		)
	case title != "":
		q = q.Where("LOWER(name) LIKE ?", containsPattern(title))
	case service != "":
		q = q.Where(
			"EXISTS (SELECT 1 FROM services s WHERE s.barbershop_id = barbershops.id AND LOWER(s.name) LIKE ?)",
			containsPattern(service),
		)
	}

	var shops []models.Barbershop
	if err := q.Order("name ASC").Find(&shops).Error; err != nil {
		return nil, fmt.Errorf("search barbershops: %w", err)
	}
	return shops, nil
}

// likeEscaper escapes LIKE wildcards with backslash, postgres' default
// escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern is a lower-cased substring pattern that matches s literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

func (r *BarbershopGormRepository) GetWithServices(
	ctx context.Context,
	id string,
) (*models.Barbershop, error) {

	if !validators.IsUUID(id) {
		return nil, domain.ErrBarbershopNotFound
	}

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).
		Preload("Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Where("id = ?", id).
		First(&shop).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBarbershopNotFound
		}
		return nil, fmt.Errorf("get barbershop: %w", err)
	}
	return &shop, nil
}

var _ domain.Repository = (*BarbershopGormRepository)(nil)
