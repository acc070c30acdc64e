package repository

import "github.com/jhoicas/Restaurante-api/internal/domain/entity"

// BranchRepository define el puerto de persistencia para Branch (DIP).
// GetByName busca por nombre normalizado (sin mayúsculas ni acentos), porque
// los clientes históricos direccionan la sucursal por su nombre visible.
type BranchRepository interface {
	Create(branch *entity.Branch) error
	GetByID(id string) (*entity.Branch, error)
	GetByName(name string) (*entity.Branch, error)
	List(limit, offset int) ([]*entity.Branch, error)
	Update(branch *entity.Branch) error
	Delete(id string) error
}
