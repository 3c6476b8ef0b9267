package factory

import (
	"github.com/napolitain/factory-planner/internal/models"
)

// Building returns the building that will run recipe, or nil when the
// recipe needs no building.
func (s *Specification) Building(recipe *models.Recipe) *models.Building {
	switch {
	case !recipe.HasBuilding():
		return nil
	case recipe.IsExtraction():
		return s.minerSettings[recipe].Miner
	case recipe.Category == models.CategoryCrafting:
		return s.categoryBuilding(recipe.Category, s.assembler)
	case recipe.Category == models.CategorySmelting:
		return s.categoryBuilding(recipe.Category, s.smelter)
	default:
		return s.buildings[recipe.Category][0]
	}
}

// categoryBuilding returns the building of the category matching preferred's
// key, falling back to the first building registered for the category.
func (s *Specification) categoryBuilding(category string, preferred *models.Building) *models.Building {
	candidates := s.buildings[category]
	if preferred != nil {
		for _, b := range candidates {
			if b.Key == preferred.Key {
				return b
			}
		}
	}
	return candidates[0]
}

// Belt returns the default belt used for belt counts
func (s *Specification) Belt() *models.Belt {
	return s.belt
}

// Assembler returns the default crafting building
func (s *Specification) Assembler() *models.Building {
	return s.assembler
}

// Smelter returns the default smelting building
func (s *Specification) Smelter() *models.Building {
	return s.smelter
}

// SetBelt selects the default belt
func (s *Specification) SetBelt(key string) error {
	belt, ok := s.data.Belts[key]
	if !ok {
		return ErrUnknownBelt
	}
	s.belt = belt
	return nil
}

// SetAssembler selects the default crafting building
func (s *Specification) SetAssembler(key string) error {
	b, ok := s.data.Assemblers[key]
	if !ok {
		return ErrUnknownBuilding
	}
	s.assembler = b
	return nil
}

// SetSmelter selects the default smelting building
func (s *Specification) SetSmelter(key string) error {
	b, ok := s.data.Smelters[key]
	if !ok {
		return ErrUnknownBuilding
	}
	s.smelter = b
	return nil
}
