package services

import (
	"stockledger/internal/domain"
	"stockledger/internal/repos"
)

// CatalogService owns Product and Location identity and naming. The ledger
// only ever holds weak references into it; deletes cascade in the repos.
type CatalogService struct {
	Products  *repos.ProductRepo
	Locations *repos.LocationRepo
}

func NewCatalogService(products *repos.ProductRepo, locations *repos.LocationRepo) *CatalogService {
	return &CatalogService{Products: products, Locations: locations}
}

func (s *CatalogService) CreateProduct(id, name string) (domain.Product, error) {
	return s.Products.Create(id, name)
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	return s.Products.Get(id)
}

func (s *CatalogService) RenameProduct(id, newName string) error {
	return s.Products.Rename(id, newName)
}

// DeleteProduct removes the product and its movements; returns the number
// of cascaded ledger rows.
func (s *CatalogService) DeleteProduct(id string) (int64, error) {
	return s.Products.Delete(id)
}

func (s *CatalogService) ListProducts() ([]domain.Product, error) {
	return s.Products.List()
}

func (s *CatalogService) CreateLocation(id, name string) (domain.Location, error) {
	return s.Locations.Create(id, name)
}

func (s *CatalogService) GetLocation(id string) (domain.Location, error) {
	return s.Locations.Get(id)
}

func (s *CatalogService) RenameLocation(id, newName string) error {
	return s.Locations.Rename(id, newName)
}

// DeleteLocation removes the location and every movement touching it as
// either endpoint; returns the number of cascaded ledger rows.
func (s *CatalogService) DeleteLocation(id string) (int64, error) {
	return s.Locations.Delete(id)
}

func (s *CatalogService) ListLocations() ([]domain.Location, error) {
	return s.Locations.List()
}
