package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrPlanNotFound is returned when no plan has the requested name
var ErrPlanNotFound = errors.New("plan not found")

// PlanModel is the database row of a saved plan
type PlanModel struct {
	Name      string `gorm:"primaryKey"`
	Settings  string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (PlanModel) TableName() string {
	return "plans"
}

// SavedPlan is a named settings string
type SavedPlan struct {
	Name      string
	Settings  string
	UpdatedAt time.Time
}

// GormPlanRepository stores plans using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GORM plan repository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// Save creates or replaces the plan called name
func (r *GormPlanRepository) Save(ctx context.Context, name, settings string) error {
	if name == "" {
		return errors.New("plan name must not be empty")
	}

	model := PlanModel{Name: name, Settings: settings}
	var existing PlanModel
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	switch {
	case err == nil:
		model.CreatedAt = existing.CreatedAt
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("failed to look up plan: %w", err)
	}

	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}

// FindByName retrieves a plan by name
func (r *GormPlanRepository) FindByName(ctx context.Context, name string) (*SavedPlan, error) {
	var model PlanModel
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, name)
		}
		return nil, fmt.Errorf("failed to find plan: %w", result.Error)
	}
	return modelToPlan(&model), nil
}

// ListAll retrieves every plan ordered by name
func (r *GormPlanRepository) ListAll(ctx context.Context) ([]*SavedPlan, error) {
	var models []PlanModel
	if err := r.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	plans := make([]*SavedPlan, 0, len(models))
	for i := range models {
		plans = append(plans, modelToPlan(&models[i]))
	}
	return plans, nil
}

// Delete removes the plan called name
func (r *GormPlanRepository) Delete(ctx context.Context, name string) error {
	result := r.db.WithContext(ctx).Where("name = ?", name).Delete(&PlanModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete plan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrPlanNotFound, name)
	}
	return nil
}

func modelToPlan(m *PlanModel) *SavedPlan {
	return &SavedPlan{Name: m.Name, Settings: m.Settings, UpdatedAt: m.UpdatedAt}
}
