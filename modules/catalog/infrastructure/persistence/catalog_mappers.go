package persistence

import (
	"github.com/medinsure/underwriting-admin/modules/catalog/domain/channel"
	"github.com/medinsure/underwriting-admin/modules/catalog/domain/company"
	"github.com/medinsure/underwriting-admin/modules/catalog/domain/product"
	"github.com/medinsure/underwriting-admin/modules/catalog/infrastructure/persistence/models"
)

func toDomainChannel(row *models.Channel) *channel.Channel {
	return &channel.Channel{
		ID:          row.ID,
		Code:        row.Code,
		Name:        row.Name,
		Description: row.Description,
		Status:      channel.Status(row.Status),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func toDomainCompany(row *models.Company) *company.Company {
	return &company.Company{
		ID:          row.ID,
		Code:        row.Code,
		Name:        row.Name,
		Description: row.Description,
		Contact:     row.Contact,
		Phone:       row.Phone,
		Address:     row.Address,
		Remark:      row.Remark,
		Status:      company.Status(row.Status),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func toDomainProduct(row *models.Product) *product.Product {
	return &product.Product{
		ID:        row.ID,
		Code:      row.Code,
		Name:      row.Name,
		TypeCode:  row.TypeCode,
		CompanyID: row.CompanyID,
		ChannelID: row.ChannelID,
		RuleID:    row.RuleID,
		Status:    product.Status(row.Status),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
