// Package productrepo provides data transfer objects and mapping functions for product persistence.
// A product row owns its BOM lines; line order is preserved through an explicit position column.
package productrepo

import (
	"mes/internal/core/domain/model/kernel"
	"mes/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure for persisting products with
// their bills of materials.
type ProductDTO struct {
	ID       uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Name     string       `gorm:"type:varchar(255);not null"`
	Code     string       `gorm:"type:varchar(64);not null;uniqueIndex"`
	Unit     string       `gorm:"type:varchar(64);not null"`
	BOMLines []BOMLineDTO `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// BOMLineDTO represents one line of a product's bill of materials.
type BOMLineDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index"`
	MaterialID uuid.UUID `gorm:"type:uuid;not null"`
	QtyPerUnit float64   `gorm:"not null"`
	Position   int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for BOM lines.
func (BOMLineDTO) TableName() string {
	return "bom_lines"
}

// fromDomain converts a product domain aggregate to its database representation.
func fromDomain(aggregate *product.Product) ProductDTO {
	productID := aggregate.ID().Bytes()

	lines := make([]BOMLineDTO, 0, len(aggregate.BOMLines()))
	for i, line := range aggregate.BOMLines() {
		lines = append(lines, BOMLineDTO{
			ProductID:  productID,
			MaterialID: line.MaterialID().Bytes(),
			QtyPerUnit: line.QtyPerUnit(),
			Position:   i,
		})
	}

	return ProductDTO{
		ID:       productID,
		Name:     aggregate.Name(),
		Code:     aggregate.Code(),
		Unit:     aggregate.Unit(),
		BOMLines: lines,
	}
}

// toDomain converts a database DTO to a product domain aggregate.
// BOM lines must already be sorted by position.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]product.BOMLine, 0, len(dto.BOMLines))
	for _, lineDto := range dto.BOMLines {
		materialID, lineErr := kernel.UUIDFromBytes(lineDto.MaterialID[:])
		if lineErr != nil {
			return nil, lineErr
		}

		line, lineErr := product.NewBOMLine(materialID, lineDto.QtyPerUnit)
		if lineErr != nil {
			return nil, lineErr
		}

		lines = append(lines, line)
	}

	return product.RestoreProduct(id, dto.Name, dto.Code, dto.Unit, lines)
}
