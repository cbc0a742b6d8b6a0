// Package model holds the GORM table mappings.
package model

// All lists every model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&UserModel{},
		&CategoryModel{},
		&ProductModel{},
		&ReviewModel{},
		&SessionModel{},
		&OrderModel{},
		&OrderItemModel{},
	}
}
