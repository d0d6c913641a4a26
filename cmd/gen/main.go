package main

import (
	"pulse/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.TransactionModel{},
		model.CustomerModel{},
		model.ProductModel{},
		model.SupplierModel{},
		model.AlertModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
